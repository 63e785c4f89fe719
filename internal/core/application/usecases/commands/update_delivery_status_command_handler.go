package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler applies a carrier tracking update to
// the shipment and, on a terminal disposition, to the order itself. Carrier
// webhooks retry, so a rejected transition (stale or duplicate update)
// surfaces as InvalidStateTransition for the caller to drop.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for carrier
// tracking updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the tracking update.
func (h *UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) error {
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

	shipmentRepo := uow.ShipmentRepository()
	record, err := shipmentRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	if err = record.UpdateStatus(cmd.Status(), cmd.Reason(), cmd.OccurredAt()); err != nil {
		return err
	}
	if err = shipmentRepo.Update(ctx, record); err != nil {
		return err
	}

	events, err := h.advanceOrder(ctx, uow, record, cmd)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, events...)
	return nil
}

// advanceOrder mirrors the shipment disposition onto the order. Only
// Delivered moves the order status; Failed and Returned stay on the
// shipment but still leave a trace in the order event trail.
func (h *UpdateDeliveryStatusCommandHandler) advanceOrder(
	ctx context.Context,
	uow ShipmentUoW,
	record *shipment.Shipment,
	cmd UpdateDeliveryStatusCommand,
) ([]*order.Event, error) {
	var eventType order.EventType
	switch cmd.Status() {
	case shipment.Delivered:
		eventType = order.EventOrderDelivered
	case shipment.Failed:
		eventType = order.EventDeliveryFailed
	case shipment.Returned:
		eventType = order.EventOrderReturned
	default:
		return nil, nil
	}

	orderRepo := uow.OrderRepository()

	if cmd.Status() == shipment.Delivered {
		aggregate, err := orderRepo.Get(ctx, record.OrderID())
		if err != nil {
			return nil, err
		}
		if err = aggregate.MarkDelivered(cmd.OccurredAt()); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
	}

	payload := map[string]any{
		"shipmentId":     record.ID().String(),
		"trackingNumber": record.TrackingNumber(),
		"status":         record.Status().String(),
	}
	if cmd.Status() == shipment.Failed {
		payload["reason"] = cmd.Reason()
	}

	event, err := recordEvent(ctx, orderRepo, record.OrderID(), eventType, payload)
	if err != nil {
		return nil, err
	}

	return []*order.Event{event}, nil
}
