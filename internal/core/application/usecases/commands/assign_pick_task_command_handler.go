package commands

import (
	"context"
)

// AssignPickTaskCommandHandler hands a pending pick task to a picker. The
// task starts when the picker confirms their first pick.
type AssignPickTaskCommandHandler struct {
	uowFactory PickUoWFactory
}

// NewAssignPickTaskCommandHandler creates a handler for pick task assignment.
func NewAssignPickTaskCommandHandler(uowFactory PickUoWFactory) AssignPickTaskCommandHandler {
	return AssignPickTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h *AssignPickTaskCommandHandler) Handle(ctx context.Context, cmd AssignPickTaskCommand) error {
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

	task, err := uow.PickTaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.Assign(cmd.Assignee()); err != nil {
		return err
	}
	if err = uow.PickTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
