// Package inventoryrepo persists the stock ledger. The quantity mutations
// are implemented as guarded single-statement updates: each UPDATE carries
// its precondition in the WHERE clause, so concurrent transactions can never
// drive a quantity negative regardless of interleaving.
package inventoryrepo

import (
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryDTO represents one ledger row: a quantity of one product on one
// license plate in one location.
type InventoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index:idx_inventory_product"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index:idx_inventory_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;index:idx_inventory_product"`

	LocationCode string
	LPN          string `gorm:"column:lpn"`
	BatchNumber  string
	ExpiryDate   *time.Time
	ReceivedAt   time.Time

	Status int

	QuantityOnHand    int
	QuantityAvailable int
	QuantityAllocated int

	Version int64
}

// TableName specifies the database table name for ledger rows.
func (InventoryDTO) TableName() string {
	return "inventory"
}

// fromDomain converts a ledger aggregate to its database representation.
func fromDomain(aggregate *inventory.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:                aggregate.ID().Bytes(),
		TenantID:          aggregate.TenantID().Bytes(),
		WarehouseID:       aggregate.WarehouseID().Bytes(),
		ProductID:         aggregate.ProductID().Bytes(),
		LocationCode:      aggregate.LocationCode(),
		LPN:               aggregate.LPN(),
		BatchNumber:       aggregate.BatchNumber(),
		ExpiryDate:        aggregate.ExpiryDate(),
		ReceivedAt:        aggregate.ReceivedAt(),
		Status:            int(aggregate.Status()),
		QuantityOnHand:    aggregate.QuantityOnHand(),
		QuantityAvailable: aggregate.QuantityAvailable(),
		QuantityAllocated: aggregate.QuantityAllocated(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database row to a ledger aggregate. RestoreInventory
// re-checks the ledger invariant, so a corrupted row surfaces here instead
// of propagating into allocation decisions.
func toDomain(dto InventoryDTO) (*inventory.Inventory, error) {
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
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreInventory(
		id, tenantID, warehouseID, productID,
		dto.LocationCode, dto.LPN, dto.BatchNumber,
		dto.ExpiryDate,
		dto.ReceivedAt,
		inventory.Status(dto.Status),
		dto.QuantityOnHand, dto.QuantityAvailable, dto.QuantityAllocated,
		dto.Version,
	)
}
