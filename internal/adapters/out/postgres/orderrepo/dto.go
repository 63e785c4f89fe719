// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows for the
// order, its lines and its append-only event trail.
package orderrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status so the allocation jobs can find work cheaply.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index"`

	OrderNumber      string `gorm:"index"`
	Policy           string
	Priority         int
	Status           int `gorm:"index"`
	StatusBeforeHold *int

	CarrierCode    string
	ServiceLevel   string
	TrackingNumber string

	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order line row.
type LineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`

	QuantityOrdered     int
	QuantityAllocated   int
	QuantityBackordered int
	QuantityPicked      int
	QuantityPacked      int
	QuantityShipped     int

	Status         int
	PolicyOverride *string
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// EventDTO represents one append-only audit event row.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	EventType  string
	Payload    string `gorm:"type:text"`
	OccurredAt time.Time
}

// TableName specifies the database table name for order events.
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, []LineDTO) {
	var statusBeforeHold *int
	if prev := aggregate.StatusBeforeHold(); prev != nil {
		raw := int(*prev)
		statusBeforeHold = &raw
	}

	dto := OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		TenantID:           aggregate.TenantID().Bytes(),
		WarehouseID:        aggregate.WarehouseID().Bytes(),
		OrderNumber:        aggregate.OrderNumber(),
		Policy:             aggregate.Policy().String(),
		Priority:           aggregate.Priority(),
		Status:             int(aggregate.Status()),
		StatusBeforeHold:   statusBeforeHold,
		CarrierCode:        aggregate.CarrierCode(),
		ServiceLevel:       aggregate.ServiceLevel(),
		TrackingNumber:     aggregate.TrackingNumber(),
		ShippedAt:          aggregate.ShippedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
		CancelledAt:        aggregate.CancelledAt(),
		CancellationReason: aggregate.CancellationReason(),
	}

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(aggregate.ID(), line))
	}

	return dto, lines
}

func lineFromDomain(orderID kernel.UUID, line *order.Line) LineDTO {
	var policyOverride *string
	if override := line.PolicyOverride(); override != nil {
		raw := override.String()
		policyOverride = &raw
	}

	return LineDTO{
		ID:                  line.ID().Bytes(),
		OrderID:             orderID.Bytes(),
		ProductID:           line.ProductID().Bytes(),
		QuantityOrdered:     line.QuantityOrdered(),
		QuantityAllocated:   line.QuantityAllocated(),
		QuantityBackordered: line.QuantityBackordered(),
		QuantityPicked:      line.QuantityPicked(),
		QuantityPacked:      line.QuantityPacked(),
		QuantityShipped:     line.QuantityShipped(),
		Status:              int(line.Status()),
		PolicyOverride:      policyOverride,
	}
}

// toDomain converts database rows to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO, lineDTOs []LineDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	policy, err := order.PolicyFromString(dto.Policy)
	if err != nil {
		return nil, err
	}

	var statusBeforeHold *order.Status
	if dto.StatusBeforeHold != nil {
		prev := order.Status(*dto.StatusBeforeHold)
		statusBeforeHold = &prev
	}

	lines := make([]*order.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id, tenantID, warehouseID,
		dto.OrderNumber,
		policy,
		dto.Priority,
		order.Status(dto.Status),
		statusBeforeHold,
		dto.CarrierCode, dto.ServiceLevel, dto.TrackingNumber,
		dto.ShippedAt, dto.DeliveredAt, dto.CancelledAt,
		dto.CancellationReason,
		lines,
	)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var policyOverride *order.Policy
	if dto.PolicyOverride != nil {
		policy, policyErr := order.PolicyFromString(*dto.PolicyOverride)
		if policyErr != nil {
			return nil, policyErr
		}
		policyOverride = &policy
	}

	return order.RestoreLine(
		id, productID,
		dto.QuantityOrdered, dto.QuantityAllocated, dto.QuantityBackordered,
		dto.QuantityPicked, dto.QuantityPacked, dto.QuantityShipped,
		order.LineStatus(dto.Status),
		policyOverride,
	)
}

func eventFromDomain(event *order.Event) EventDTO {
	return EventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		EventType:  string(event.Type()),
		Payload:    event.Payload(),
		OccurredAt: event.OccurredAt(),
	}
}

func eventToDomain(dto EventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreEvent(id, orderID, order.EventType(dto.EventType), dto.Payload, dto.OccurredAt)
}
