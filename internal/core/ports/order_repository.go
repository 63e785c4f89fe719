// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the event publisher and
// the carrier gateway. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its lines.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves orders currently in the given status,
	// oldest first. Used by the allocation jobs to find work.
	GetAllInStatus(ctx context.Context, status order.Status, limit int) ([]*order.Order, error)

	// AddEvent appends an audit event to the order's event trail.
	AddEvent(ctx context.Context, event *order.Event) error

	// GetEvents retrieves an order's audit trail, oldest first.
	GetEvents(ctx context.Context, orderID kernel.UUID) ([]*order.Event, error)
}
