package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/picking"
)

// GeneratePickTasksCommandHandler turns fully allocated orders into pick
// work. Each order's live reservations become pick instructions carrying the
// reservation's lot snapshot; the task sequences them by location code.
// SINGLE produces one task per order, BATCH one task across all of them.
// Every covered order advances to Picking in the same transaction.
type GeneratePickTasksCommandHandler struct {
	uowFactory PickUoWFactory
}

// NewGeneratePickTasksCommandHandler creates a handler for pick task
// generation.
func NewGeneratePickTasksCommandHandler(uowFactory PickUoWFactory) GeneratePickTasksCommandHandler {
	return GeneratePickTasksCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pick task generation command and returns the created
// task identifiers.
func (h *GeneratePickTasksCommandHandler) Handle(
	ctx context.Context,
	cmd GeneratePickTasksCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	var batchLines []*picking.TaskLine
	var taskIDs []kernel.UUID
	var tenantID, warehouseID kernel.UUID

	for _, orderID := range cmd.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		lines, err := h.buildTaskLines(ctx, uow, aggregate)
		if err != nil {
			return nil, err
		}

		if err = aggregate.StartPicking(); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		tenantID, warehouseID = aggregate.TenantID(), aggregate.WarehouseID()

		if cmd.TaskType() == picking.TaskTypeBatch {
			batchLines = append(batchLines, lines...)
			continue
		}

		task, err := picking.NewPickTask(
			kernel.NewUUID(), aggregate.TenantID(), aggregate.WarehouseID(),
			picking.TaskTypeSingle, lines, now,
		)
		if err != nil {
			return nil, err
		}
		if err = uow.PickTaskRepository().Add(ctx, task); err != nil {
			return nil, err
		}
		taskIDs = append(taskIDs, task.ID())
	}

	if cmd.TaskType() == picking.TaskTypeBatch {
		task, err := picking.NewPickTask(
			kernel.NewUUID(), tenantID, warehouseID,
			picking.TaskTypeBatch, batchLines, now,
		)
		if err != nil {
			return nil, err
		}
		if err = uow.PickTaskRepository().Add(ctx, task); err != nil {
			return nil, err
		}
		taskIDs = append(taskIDs, task.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return taskIDs, nil
}

// buildTaskLines converts an order's live reservations into pick
// instructions, resolving each reservation back to its order line.
func (h *GeneratePickTasksCommandHandler) buildTaskLines(
	ctx context.Context,
	uow PickUoW,
	aggregate *order.Order,
) ([]*picking.TaskLine, error) {
	live, err := uow.AllocationRepository().GetLiveByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	lines := make([]*picking.TaskLine, 0, len(live))
	for _, record := range live {
		orderLine, err := aggregate.Line(record.OrderLineID())
		if err != nil {
			return nil, err
		}

		line, err := picking.NewTaskLine(
			kernel.NewUUID(), aggregate.ID(), record.OrderLineID(), record.ID(),
			orderLine.ProductID(),
			record.LocationCode(), record.LPN(), record.BatchNumber(),
			record.Quantity(),
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
