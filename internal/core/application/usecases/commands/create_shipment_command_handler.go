package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
)

// CreateShipmentCommandHandler records the carrier handoff of a packed
// order: the shipment gets the completed pack task's label, weight and
// carton count, the order moves to Shipped, and the shipped event goes out
// after commit.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateShipmentCommandHandler creates a handler for carrier handoff.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the shipment creation command and returns the shipment
// identifier.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
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

	task, err := uow.PackTaskRepository().GetCompletedByOrder(ctx, aggregate.ID())
	if err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now().UTC()
	if err = aggregate.Ship(cmd.CarrierCode(), cmd.ServiceLevel(), task.TrackingNumber(), now); err != nil {
		return kernel.UUID{}, err
	}

	lines, err := h.lineageLines(ctx, uow, aggregate)
	if err != nil {
		return kernel.UUID{}, err
	}

	record, err := shipment.NewShipment(
		kernel.NewUUID(), aggregate.TenantID(), aggregate.WarehouseID(), aggregate.ID(),
		cmd.CarrierCode(), cmd.ServiceLevel(), task.TrackingNumber(), task.LabelURL(),
		task.TotalWeightKg(), len(task.Cartons()),
		lines, now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ShipmentRepository().Add(ctx, record); err != nil {
		return kernel.UUID{}, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	event, err := recordEvent(ctx, orderRepo, aggregate.ID(), order.EventOrderShipped, map[string]any{
		"shipmentId":     record.ID().String(),
		"trackingNumber": record.TrackingNumber(),
		"carrierCode":    record.CarrierCode(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	publishCommitted(ctx, h.publisher, event)
	return record.ID(), nil
}

// lineageLines builds the shipment lines from the order's picked
// reservations, carrying each one's batch, expiry and LPN snapshot. An order
// line packed short of its picked quantity ships less than was picked, so
// quantities are capped at the line's shipped amount, oldest reservation
// first.
func (h *CreateShipmentCommandHandler) lineageLines(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *order.Order,
) ([]shipment.Line, error) {
	productByLine := make(map[kernel.UUID]kernel.UUID, len(aggregate.Lines()))
	remaining := make(map[kernel.UUID]int, len(aggregate.Lines()))
	for _, orderLine := range aggregate.Lines() {
		productByLine[orderLine.ID()] = orderLine.ProductID()
		remaining[orderLine.ID()] = orderLine.QuantityShipped()
	}

	picked, err := uow.AllocationRepository().GetPickedByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	var lines []shipment.Line
	for _, record := range picked {
		quantity := record.Quantity()
		if left := remaining[record.OrderLineID()]; quantity > left {
			quantity = left
		}
		if quantity == 0 {
			continue
		}
		remaining[record.OrderLineID()] -= quantity
		lines = append(lines, shipment.Line{
			OrderLineID: record.OrderLineID(),
			ProductID:   productByLine[record.OrderLineID()],
			Quantity:    quantity,
			BatchNumber: record.BatchNumber(),
			ExpiryDate:  record.ExpiryDate(),
			LPN:         record.LPN(),
		})
	}
	return lines, nil
}
