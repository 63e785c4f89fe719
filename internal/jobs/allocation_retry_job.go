package jobs

import (
	"context"
	"errors"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// AllocationRetryJob re-runs allocation for orders whose previous pass
// received no stock at all. Runs every minute; new receipts or released
// cancellations may have freed quantity since the failure.
type AllocationRetryJob struct {
	uowFactory ports.UnitOfWorkFactory
	handler    commands.AllocateOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAllocationRetryJob creates a job that retries failed allocations.
func NewAllocationRetryJob(
	uowFactory ports.UnitOfWorkFactory,
	handler commands.AllocateOrderCommandHandler,
	logger *slog.Logger,
) *AllocationRetryJob {
	return &AllocationRetryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "allocation_retry_job"),
	}
}

// Start begins the retry job to run every minute.
func (j *AllocationRetryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Allocation retry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Allocation retry job started (running every minute)")
	return nil
}

// Stop stops the retry job.
func (j *AllocationRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Allocation retry job stopped")
}

func (j *AllocationRetryJob) run(ctx context.Context) error {
	failed, err := j.uowFactory.Create().OrderRepository().
		GetAllInStatus(ctx, order.AllocationFailed, allocationBatchLimit)
	if err != nil {
		return err
	}

	for _, aggregate := range failed {
		cmd, cmdErr := commands.NewAllocateOrderCommand(aggregate.ID())
		if cmdErr != nil {
			return cmdErr
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			if errors.Is(handleErr, errs.ErrInvalidStateTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Allocation retry failed",
				"orderId", aggregate.ID().String(), "error", handleErr)
		}
	}

	return nil
}
