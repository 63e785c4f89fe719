package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"
)

// GeneratePackTaskCommandHandler opens packing-station work for a picked
// order: one pack instruction per order line with picked quantity, and the
// order advances to Packing in the same transaction.
type GeneratePackTaskCommandHandler struct {
	uowFactory PackUoWFactory
}

// NewGeneratePackTaskCommandHandler creates a handler for pack task
// generation.
func NewGeneratePackTaskCommandHandler(uowFactory PackUoWFactory) GeneratePackTaskCommandHandler {
	return GeneratePackTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pack task generation command and returns the created
// task identifier.
func (h *GeneratePackTaskCommandHandler) Handle(
	ctx context.Context,
	cmd GeneratePackTaskCommand,
) (kernel.UUID, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = aggregate.StartPacking(); err != nil {
		return kernel.UUID{}, err
	}

	var lines []*packing.TaskLine
	for _, orderLine := range aggregate.Lines() {
		if orderLine.QuantityPicked() == 0 {
			continue
		}
		line, lineErr := packing.NewTaskLine(
			kernel.NewUUID(), orderLine.ID(), orderLine.ProductID(), orderLine.QuantityPicked(),
		)
		if lineErr != nil {
			return kernel.UUID{}, lineErr
		}
		lines = append(lines, line)
	}

	task, err := packing.NewPackTask(
		kernel.NewUUID(), aggregate.TenantID(), aggregate.WarehouseID(), aggregate.ID(),
		lines, time.Now().UTC(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.PackTaskRepository().Add(ctx, task); err != nil {
		return kernel.UUID{}, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return task.ID(), nil
}
