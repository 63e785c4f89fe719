package ports

import (
	"context"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
)

// AllocationRepository defines the persistence contract for reservations.
type AllocationRepository interface {
	// Add persists a new allocation.
	Add(ctx context.Context, aggregate *allocation.Allocation) error

	// Update persists changes to an existing allocation.
	Update(ctx context.Context, aggregate *allocation.Allocation) error

	// Get retrieves an allocation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error)

	// GetLiveByOrder retrieves an order's live reservations.
	GetLiveByOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error)

	// GetPickedByOrder retrieves an order's picked reservations, the
	// lineage source for its shipment lines.
	GetPickedByOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error)
}
