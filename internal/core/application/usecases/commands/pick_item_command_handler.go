package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/picking"
)

// PickItemCommandHandler confirms one pick. The confirmation commits the
// ledger depletion immediately: the picked quantity leaves both the
// allocated and on-hand buckets in the same transaction that records the
// pick on the task and the order line. A fully picked instruction finalizes
// its reservation.
//
// The picker's first confirmation on an assigned task starts the task.
type PickItemCommandHandler struct {
	uowFactory PickUoWFactory
}

// NewPickItemCommandHandler creates a handler for pick confirmations.
func NewPickItemCommandHandler(uowFactory PickUoWFactory) PickItemCommandHandler {
	return PickItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pick confirmation.
func (h *PickItemCommandHandler) Handle(ctx context.Context, cmd PickItemCommand) error {
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

	now := time.Now().UTC()
	if task.Status() == picking.Assigned {
		if err = task.Start(now); err != nil {
			return err
		}
	}

	if err = task.RecordPick(cmd.LineID(), cmd.Quantity(), now); err != nil {
		return err
	}

	taskLine, err := task.Line(cmd.LineID())
	if err != nil {
		return err
	}

	record, err := uow.AllocationRepository().Get(ctx, taskLine.AllocationID())
	if err != nil {
		return err
	}
	if err = uow.InventoryRepository().CommitDepletion(ctx, record.InventoryID(), cmd.Quantity()); err != nil {
		return err
	}
	if taskLine.Status() == picking.LinePicked {
		if err = record.MarkPicked(taskLine.QuantityPicked()); err != nil {
			return err
		}
		if err = uow.AllocationRepository().Update(ctx, record); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, taskLine.OrderID())
	if err != nil {
		return err
	}
	orderLine, err := aggregate.Line(taskLine.OrderLineID())
	if err != nil {
		return err
	}
	if err = orderLine.RecordPick(cmd.Quantity()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.PickTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
