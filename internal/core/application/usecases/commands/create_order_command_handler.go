package commands

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// CreateOrderCommandHandler registers new outbound orders. The order enters
// the pipeline in New status; the allocation job picks it up on its next run.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle persists the new order with its lines and appends the submission
// event, all in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, requested := range cmd.Lines() {
		line, err := order.NewLine(
			kernel.NewUUID(), requested.ProductID, requested.Quantity, requested.PolicyOverride,
		)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.TenantID(), cmd.WarehouseID(),
		cmd.OrderNumber(), cmd.Policy(), cmd.Priority(), lines,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventOrderSubmitted, map[string]any{
		"orderNumber":  aggregate.OrderNumber(),
		"unitsOrdered": aggregate.UnitsOrdered(),
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
