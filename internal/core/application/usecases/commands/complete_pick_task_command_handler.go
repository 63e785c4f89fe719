package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/core/ports"
)

// CompletePickTaskCommandHandler closes a pick task. Short-picked
// instructions release their unpicked reservation remainder back to the
// ledger and the shortfall lands on the order line as backordered quantity.
// Every order fully covered by the task advances to Picked.
type CompletePickTaskCommandHandler struct {
	uowFactory PickUoWFactory
	publisher  ports.EventPublisher
}

// NewCompletePickTaskCommandHandler creates a handler for pick task
// completion.
func NewCompletePickTaskCommandHandler(
	uowFactory PickUoWFactory,
	publisher ports.EventPublisher,
) CompletePickTaskCommandHandler {
	return CompletePickTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the pick task completion.
func (h *CompletePickTaskCommandHandler) Handle(ctx context.Context, cmd CompletePickTaskCommand) error {
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
	if err = task.Complete(now); err != nil {
		return err
	}

	if err = h.settleShortfalls(ctx, uow, task); err != nil {
		return err
	}
	if err = uow.PickTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	events, err := h.advanceOrders(ctx, uow, task)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, events...)
	return nil
}

// settleShortfalls releases the unpicked remainder of every short line's
// reservation and finalizes each reservation at the picked quantity.
// Completion guarantees every line was picked against, so each live
// reservation has quantity to finalize.
func (h *CompletePickTaskCommandHandler) settleShortfalls(
	ctx context.Context,
	uow PickUoW,
	task *picking.PickTask,
) error {
	for _, line := range task.Lines() {
		record, err := uow.AllocationRepository().Get(ctx, line.AllocationID())
		if err != nil {
			return err
		}
		if !record.IsLive() {
			continue
		}

		if shortfall := line.Shortfall(); shortfall > 0 {
			if err = uow.InventoryRepository().Release(ctx, record.InventoryID(), shortfall); err != nil {
				return err
			}
		}

		if err = record.MarkPicked(line.QuantityPicked()); err != nil {
			return err
		}
		if err = uow.AllocationRepository().Update(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// advanceOrders closes each covered order's picking stage: shortfalls move
// to backordered, the order becomes Picked, and a pick-completed event is
// recorded for post-commit publication.
func (h *CompletePickTaskCommandHandler) advanceOrders(
	ctx context.Context,
	uow PickUoW,
	task *picking.PickTask,
) ([]*order.Event, error) {
	orderRepo := uow.OrderRepository()

	shortfallByOrderLine := make(map[kernel.UUID]int)
	for _, line := range task.Lines() {
		if line.Shortfall() > 0 {
			shortfallByOrderLine[line.OrderLineID()] += line.Shortfall()
		}
	}

	var events []*order.Event
	for _, orderID := range task.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		for _, orderLine := range aggregate.Lines() {
			if shortfallByOrderLine[orderLine.ID()] > 0 {
				orderLine.ClosePickShortfall()
			}
		}

		if err = aggregate.CompletePicking(); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventPickCompleted, map[string]any{
			"taskId":           task.ID().String(),
			"unitsPicked":      aggregate.UnitsPicked(),
			"unitsBackordered": aggregate.UnitsBackordered(),
		})
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
