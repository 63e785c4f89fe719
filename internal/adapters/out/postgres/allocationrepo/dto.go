// Package allocationrepo persists reservations: the links between order
// lines and the ledger rows backing them, with the lot snapshot taken at
// reservation time.
package allocationrepo

import (
	"time"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AllocationDTO represents one reservation row.
type AllocationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	OrderLineID uuid.UUID `gorm:"type:uuid;index"`
	InventoryID uuid.UUID `gorm:"type:uuid;index"`

	Quantity int

	BatchNumber  string
	ExpiryDate   *time.Time
	LPN          string `gorm:"column:lpn"`
	LocationCode string

	Status    int `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for reservations.
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts an allocation aggregate to its database representation.
func fromDomain(aggregate *allocation.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		OrderLineID:  aggregate.OrderLineID().Bytes(),
		InventoryID:  aggregate.InventoryID().Bytes(),
		Quantity:     aggregate.Quantity(),
		BatchNumber:  aggregate.BatchNumber(),
		ExpiryDate:   aggregate.ExpiryDate(),
		LPN:          aggregate.LPN(),
		LocationCode: aggregate.LocationCode(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
	}
}

// toDomain converts a database row to an allocation aggregate.
func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return nil, err
	}
	inventoryID, err := kernel.UUIDFromBytes(dto.InventoryID[:])
	if err != nil {
		return nil, err
	}

	return allocation.RestoreAllocation(
		id, orderID, orderLineID, inventoryID,
		dto.Quantity,
		dto.BatchNumber,
		dto.ExpiryDate,
		dto.LPN, dto.LocationCode,
		allocation.Status(dto.Status),
		dto.CreatedAt,
	)
}
