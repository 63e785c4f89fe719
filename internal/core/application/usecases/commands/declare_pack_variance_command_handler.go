package commands

import (
	"context"
)

// DeclarePackVarianceCommandHandler closes one under-packed pack instruction
// with its discrepancy declared. The packed quantity stands; only the line's
// outcome changes, letting the task label and complete with the shortage on
// record.
type DeclarePackVarianceCommandHandler struct {
	uowFactory PackUoWFactory
}

// NewDeclarePackVarianceCommandHandler creates a handler for variance
// declarations.
func NewDeclarePackVarianceCommandHandler(uowFactory PackUoWFactory) DeclarePackVarianceCommandHandler {
	return DeclarePackVarianceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the variance declaration.
func (h *DeclarePackVarianceCommandHandler) Handle(ctx context.Context, cmd DeclarePackVarianceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.PackTaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.CloseLineWithVariance(cmd.LineID()); err != nil {
		return err
	}
	if err = uow.PackTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
