package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"
)

// OpenCartonCommandHandler opens a new carton on a pack task. Opening the
// first carton on a pending task starts the task for the given packer.
type OpenCartonCommandHandler struct {
	uowFactory PackUoWFactory
}

// NewOpenCartonCommandHandler creates a handler for opening cartons.
func NewOpenCartonCommandHandler(uowFactory PackUoWFactory) OpenCartonCommandHandler {
	return OpenCartonCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open-carton command and returns the carton identifier.
func (h *OpenCartonCommandHandler) Handle(ctx context.Context, cmd OpenCartonCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.PackTaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if task.Status() == packing.Pending {
		if err = task.Start(cmd.Assignee(), time.Now().UTC()); err != nil {
			return kernel.UUID{}, err
		}
	}

	carton, err := task.OpenCarton(
		kernel.NewUUID(),
		cmd.LengthCm(), cmd.WidthCm(), cmd.HeightCm(), cmd.TareWeightKg(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.PackTaskRepository().Update(ctx, task); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return carton.ID(), nil
}
