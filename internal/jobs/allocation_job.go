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

// allocationBatchLimit caps how many orders one job tick picks up so a
// backlog cannot stall the scheduler.
const allocationBatchLimit = 20

// AllocationJob runs the allocation pass over newly submitted orders.
// Runs every five seconds and processes oldest orders first.
type AllocationJob struct {
	uowFactory ports.UnitOfWorkFactory
	handler    commands.AllocateOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAllocationJob creates a job that allocates stock for new orders.
func NewAllocationJob(
	uowFactory ports.UnitOfWorkFactory,
	handler commands.AllocateOrderCommandHandler,
	logger *slog.Logger,
) *AllocationJob {
	return &AllocationJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "allocation_job"),
	}
}

// Start begins the allocation job to run every five seconds.
func (j *AllocationJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Allocation job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Allocation job started (running every 5 seconds)")
	return nil
}

// Stop stops the allocation job.
func (j *AllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Allocation job stopped")
}

func (j *AllocationJob) run(ctx context.Context) error {
	pending, err := j.uowFactory.Create().OrderRepository().
		GetAllInStatus(ctx, order.New, allocationBatchLimit)
	if err != nil {
		return err
	}

	for _, aggregate := range pending {
		cmd, cmdErr := commands.NewAllocateOrderCommand(aggregate.ID())
		if cmdErr != nil {
			return cmdErr
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A state-transition error means the order moved on between
			// the scan and the allocation run; someone else got to it.
			if errors.Is(handleErr, errs.ErrInvalidStateTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Order allocation failed",
				"orderId", aggregate.ID().String(), "error", handleErr)
		}
	}

	return nil
}
