package ports

import (
	"context"

	"warehouse/internal/core/domain/model/order"
)

// EventPublisher publishes order lifecycle events to the message broker
// after the owning transaction commits. Delivery is at-least-once;
// consumers deduplicate on the event ID.
type EventPublisher interface {
	// Publish sends one order event. A failure must not roll back the
	// already-committed business transaction; callers log and move on.
	Publish(ctx context.Context, event *order.Event) error
}
