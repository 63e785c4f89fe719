package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// AllocateOrderCommandHandler runs the allocation pass for one order: rank
// candidate stock per line by the effective policy, reserve greedily with
// guarded ledger updates, write allocation records with lot snapshots, and
// roll the per-line outcomes up into the order status.
//
// A reservation that loses the race to a concurrent transaction (the guarded
// update matches no row) is skipped, not fatal: the planner's view was stale
// and the remainder simply stays unallocated for the retry job.
type AllocateOrderCommandHandler struct {
	uowFactory AllocationUoWFactory
	planner    services.AllocationPlanner
	publisher  ports.EventPublisher
}

// NewAllocateOrderCommandHandler creates a handler for allocation runs.
func NewAllocateOrderCommandHandler(
	uowFactory AllocationUoWFactory,
	planner services.AllocationPlanner,
	publisher ports.EventPublisher,
) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		publisher:  publisher,
	}
}

// Handle processes the allocation command for one order.
func (h *AllocateOrderCommandHandler) Handle(ctx context.Context, cmd AllocateOrderCommand) error {
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

	if !aggregate.CanAllocate() {
		return errs.NewInvalidStateTransitionError(
			"order", aggregate.Status().String(), order.Allocated.String())
	}
	if err = aggregate.PrepareReallocation(); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, line := range aggregate.Lines() {
		if err = h.allocateLine(ctx, uow, aggregate, line, now); err != nil {
			return err
		}
	}

	if err = aggregate.CompleteAllocation(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventOrderAllocated, map[string]any{
		"status":           aggregate.Status().String(),
		"unitsAllocated":   aggregate.UnitsAllocated(),
		"unitsBackordered": aggregate.UnitsBackordered(),
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

func (h *AllocateOrderCommandHandler) allocateLine(
	ctx context.Context,
	uow AllocationUoW,
	aggregate *order.Order,
	line *order.Line,
	now time.Time,
) error {
	safetyBufferDays := 0
	product, err := uow.ProductRepository().Get(ctx, line.ProductID())
	if err == nil {
		safetyBufferDays = product.SafetyBufferDays()
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	candidates, err := uow.InventoryRepository().GetCandidatesForProduct(
		ctx, aggregate.TenantID(), aggregate.WarehouseID(), line.ProductID(),
	)
	if err != nil {
		return err
	}

	plan, err := h.planner.PlanLine(line, aggregate.Policy(), candidates, safetyBufferDays, now)
	if err != nil {
		return err
	}

	allocated := 0
	for _, reservation := range plan.Reservations {
		err = uow.InventoryRepository().Reserve(ctx, reservation.Inventory.ID(), reservation.Quantity)
		if errors.Is(err, errs.ErrInsufficientQuantity) {
			// Lost the row to a concurrent allocation; the retry job
			// covers the remainder.
			continue
		}
		if err != nil {
			return err
		}

		record, allocErr := allocation.NewAllocation(
			kernel.NewUUID(), aggregate.ID(), line.ID(), reservation.Inventory.ID(),
			reservation.Quantity,
			reservation.Inventory.BatchNumber(),
			reservation.Inventory.ExpiryDate(),
			reservation.Inventory.LPN(),
			reservation.Inventory.LocationCode(),
			now,
		)
		if allocErr != nil {
			return allocErr
		}
		if allocErr = uow.AllocationRepository().Add(ctx, record); allocErr != nil {
			return allocErr
		}
		allocated += reservation.Quantity
	}

	return line.FinishAllocation(allocated)
}
