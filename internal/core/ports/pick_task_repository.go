package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/picking"
)

// PickTaskRepository defines the persistence contract for pick tasks.
type PickTaskRepository interface {
	// Add persists a new pick task with its lines.
	Add(ctx context.Context, aggregate *picking.PickTask) error

	// Update persists changes to an existing pick task and its lines.
	Update(ctx context.Context, aggregate *picking.PickTask) error

	// Get retrieves a pick task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*picking.PickTask, error)

	// GetActiveByOrder retrieves the not-yet-completed pick tasks that
	// cover an order. Used when cancelling or holding an order mid-pick.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.PickTask, error)
}
