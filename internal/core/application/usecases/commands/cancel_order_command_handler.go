package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order anywhere before carrier handoff.
// Live reservations are released back to the ledger, minus whatever picking
// already physically removed; open pick and pack tasks are abandoned. All of
// it commits atomically with the status change.
type CancelOrderCommandHandler struct {
	uowFactory CancelUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory CancelUoWFactory,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.Cancel(cmd.Reason(), now); err != nil {
		return err
	}

	pickTasks, err := uow.PickTaskRepository().GetActiveByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	pickedByAllocation := pickedQuantities(pickTasks)
	for _, task := range pickTasks {
		if err = task.Cancel(); err != nil {
			return err
		}
		if err = uow.PickTaskRepository().Update(ctx, task); err != nil {
			return err
		}
	}

	if err = h.releaseUnpicked(ctx, uow, aggregate, pickedByAllocation); err != nil {
		return err
	}

	packTask, err := uow.PackTaskRepository().GetActiveByOrder(ctx, aggregate.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if packTask != nil {
		if err = packTask.Cancel(); err != nil {
			return err
		}
		if err = uow.PackTaskRepository().Update(ctx, packTask); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventOrderCancelled, map[string]any{
		"reason": cmd.Reason(),
	})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, event)
	return nil
}

// releaseUnpicked returns each live reservation's unpicked remainder to the
// ledger. Quantity picking already depleted left both the reservation and
// the ledger's allocated bucket at pick time and must not come back.
func (h *CancelOrderCommandHandler) releaseUnpicked(
	ctx context.Context,
	uow CancelUoW,
	aggregate *order.Order,
	pickedByAllocation map[kernel.UUID]int,
) error {
	live, err := uow.AllocationRepository().GetLiveByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, record := range live {
		remainder := record.Quantity() - pickedByAllocation[record.ID()]
		if remainder > 0 {
			if err = uow.InventoryRepository().Release(ctx, record.InventoryID(), remainder); err != nil {
				return err
			}
		}
		if err = record.Cancel(); err != nil {
			return err
		}
		if err = uow.AllocationRepository().Update(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// pickedQuantities sums the picked quantity per allocation across tasks.
func pickedQuantities(tasks []*picking.PickTask) map[kernel.UUID]int {
	picked := make(map[kernel.UUID]int)
	for _, task := range tasks {
		for _, line := range task.Lines() {
			if line.QuantityPicked() > 0 {
				picked[line.AllocationID()] += line.QuantityPicked()
			}
		}
	}
	return picked
}
