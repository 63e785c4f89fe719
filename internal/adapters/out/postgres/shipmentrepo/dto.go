// Package shipmentrepo persists shipments and their shipped lines. The
// tracking number carries a unique index because carrier webhooks look
// shipments up by it.
package shipmentrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents one shipment row.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`

	CarrierCode    string
	ServiceLevel   string
	TrackingNumber string `gorm:"uniqueIndex"`
	LabelURL       string

	WeightKg    decimal.Decimal `gorm:"type:numeric"`
	CartonCount int

	Status int `gorm:"index"`

	ShippedAt     time.Time
	DeliveredAt   *time.Time
	LastUpdatedAt time.Time

	FailureReason string
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentLineDTO represents the shipped quantity of one picked reservation
// with its batch/expiry/LPN lineage snapshot. An order line shipped from two
// lots yields two rows, so the row carries its own key.
type ShipmentLineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	OrderLineID uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	Quantity    int

	BatchNumber string
	ExpiryDate  *time.Time
	LPN         string

	Position int
}

// TableName specifies the database table name for shipment lines.
func (ShipmentLineDTO) TableName() string {
	return "shipment_lines"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) (ShipmentDTO, []ShipmentLineDTO) {
	dto := ShipmentDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		WarehouseID:    aggregate.WarehouseID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		CarrierCode:    aggregate.CarrierCode(),
		ServiceLevel:   aggregate.ServiceLevel(),
		TrackingNumber: aggregate.TrackingNumber(),
		LabelURL:       aggregate.LabelURL(),
		WeightKg:       aggregate.WeightKg(),
		CartonCount:    aggregate.CartonCount(),
		Status:         int(aggregate.Status()),
		ShippedAt:      aggregate.ShippedAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
		LastUpdatedAt:  aggregate.LastUpdatedAt(),
		FailureReason:  aggregate.FailureReason(),
	}

	lines := make([]ShipmentLineDTO, 0, len(aggregate.Lines()))
	for position, line := range aggregate.Lines() {
		lines = append(lines, ShipmentLineDTO{
			ID:          uuid.New(),
			ShipmentID:  aggregate.ID().Bytes(),
			OrderLineID: line.OrderLineID.Bytes(),
			ProductID:   line.ProductID.Bytes(),
			Quantity:    line.Quantity,
			BatchNumber: line.BatchNumber,
			ExpiryDate:  line.ExpiryDate,
			LPN:         line.LPN,
			Position:    position,
		})
	}

	return dto, lines
}

// toDomain converts database rows to a shipment aggregate.
func toDomain(dto ShipmentDTO, lineDTOs []ShipmentLineDTO) (*shipment.Shipment, error) {
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
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]shipment.Line, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return shipment.RestoreShipment(
		id, tenantID, warehouseID, orderID,
		dto.CarrierCode, dto.ServiceLevel, dto.TrackingNumber, dto.LabelURL,
		dto.WeightKg,
		dto.CartonCount,
		shipment.Status(dto.Status),
		lines,
		dto.ShippedAt,
		dto.DeliveredAt,
		dto.LastUpdatedAt,
		dto.FailureReason,
	)
}

func lineToDomain(dto ShipmentLineDTO) (shipment.Line, error) {
	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return shipment.Line{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return shipment.Line{}, err
	}

	return shipment.Line{
		OrderLineID: orderLineID,
		ProductID:   productID,
		Quantity:    dto.Quantity,
		BatchNumber: dto.BatchNumber,
		ExpiryDate:  dto.ExpiryDate,
		LPN:         dto.LPN,
	}, nil
}
