package jobs

import (
	"fmt"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	allocationJob      *AllocationJob
	allocationRetryJob *AllocationRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the allocation handler as dependency to wire up job execution.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	allocateHandler commands.AllocateOrderCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		allocationJob:      NewAllocationJob(uowFactory, allocateHandler, logger),
		allocationRetryJob: NewAllocationRetryJob(uowFactory, allocateHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.allocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start allocation job: %w", err)
	}

	if err := jm.allocationRetryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.allocationJob.Stop()
		return fmt.Errorf("failed to start allocation retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.allocationRetryJob.Stop()
	jm.allocationJob.Stop()
}
