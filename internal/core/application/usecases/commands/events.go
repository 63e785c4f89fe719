package commands

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// recordEvent appends an audit event to the order's trail inside the current
// transaction and returns it for post-commit publication.
func recordEvent(
	ctx context.Context,
	repo ports.OrderRepository,
	orderID kernel.UUID,
	eventType order.EventType,
	payload any,
) (*order.Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	event, err := order.NewEvent(kernel.NewUUID(), orderID, eventType, string(body), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := repo.AddEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// publishCommitted sends recorded events to the broker after the transaction
// committed. The events already sit in the order's durable trail, so a broker
// hiccup loses nothing; delivery stays at-least-once.
func publishCommitted(ctx context.Context, publisher ports.EventPublisher, events ...*order.Event) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		if event == nil {
			continue
		}
		_ = publisher.Publish(ctx, event)
	}
}
