package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// DeallocateOrderCommandHandler releases every live reservation an order
// holds, returns the quantity to the ledger's available bucket and resets
// the order to New. Valid before picking starts; later stages cancel via
// the cancellation flow instead.
type DeallocateOrderCommandHandler struct {
	uowFactory AllocationUoWFactory
	publisher  ports.EventPublisher
}

// NewDeallocateOrderCommandHandler creates a handler for deallocation.
func NewDeallocateOrderCommandHandler(
	uowFactory AllocationUoWFactory,
	publisher ports.EventPublisher,
) DeallocateOrderCommandHandler {
	return DeallocateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the deallocation command.
func (h *DeallocateOrderCommandHandler) Handle(ctx context.Context, cmd DeallocateOrderCommand) error {
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

	// ResetAllocation validates the status transition, so run it first to
	// fail fast before any ledger movement.
	if err = aggregate.ResetAllocation(); err != nil {
		return err
	}

	released, err := releaseLiveAllocations(ctx, uow, aggregate)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventOrderDeallocate, map[string]any{
		"unitsReleased": released,
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

// releaseLiveAllocations cancels each live reservation of the order and
// returns its full quantity to the ledger. Shared by deallocation and
// cancellation before picking has consumed anything.
func releaseLiveAllocations(
	ctx context.Context,
	uow interface {
		InventoryRepoFactory
		AllocationRepoFactory
	},
	aggregate *order.Order,
) (int, error) {
	live, err := uow.AllocationRepository().GetLiveByOrder(ctx, aggregate.ID())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, record := range live {
		if err = uow.InventoryRepository().Release(ctx, record.InventoryID(), record.Quantity()); err != nil {
			return 0, err
		}
		if err = record.Cancel(); err != nil {
			return 0, err
		}
		if err = uow.AllocationRepository().Update(ctx, record); err != nil {
			return 0, err
		}
		released += record.Quantity()
	}
	return released, nil
}
