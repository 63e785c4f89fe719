package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"
)

// PackTaskRepository defines the persistence contract for pack tasks.
type PackTaskRepository interface {
	// Add persists a new pack task with its lines and cartons.
	Add(ctx context.Context, aggregate *packing.PackTask) error

	// Update persists changes to an existing pack task, its lines and
	// cartons.
	Update(ctx context.Context, aggregate *packing.PackTask) error

	// Get retrieves a pack task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*packing.PackTask, error)

	// GetActiveByOrder retrieves the not-yet-completed pack task for an
	// order, if one exists.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*packing.PackTask, error)

	// GetCompletedByOrder retrieves the completed pack task for an order.
	// Shipment creation reads the label and weight from it.
	GetCompletedByOrder(ctx context.Context, orderID kernel.UUID) (*packing.PackTask, error)
}
