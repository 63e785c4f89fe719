package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// CompletePackTaskCommandHandler closes a labelled pack task and advances
// the order to Packed. The task itself refuses completion while any picked
// quantity sits outside a carton or the label is missing.
type CompletePackTaskCommandHandler struct {
	uowFactory PackUoWFactory
	publisher  ports.EventPublisher
}

// NewCompletePackTaskCommandHandler creates a handler for pack task
// completion.
func NewCompletePackTaskCommandHandler(
	uowFactory PackUoWFactory,
	publisher ports.EventPublisher,
) CompletePackTaskCommandHandler {
	return CompletePackTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the pack task completion.
func (h *CompletePackTaskCommandHandler) Handle(ctx context.Context, cmd CompletePackTaskCommand) error {
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

	if err = task.Complete(time.Now().UTC()); err != nil {
		return err
	}
	if err = uow.PackTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, task.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.CompletePacking(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventPackCompleted, map[string]any{
		"taskId":      task.ID().String(),
		"cartonCount": len(task.Cartons()),
		"weightKg":    task.TotalWeightKg().String(),
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
