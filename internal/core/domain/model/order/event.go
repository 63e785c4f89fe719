package order

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// EventType identifies the pipeline transition an audit event records.
type EventType string

const (
	EventOrderSubmitted  EventType = "order.submitted"
	EventOrderAllocated  EventType = "order.allocated"
	EventOrderDeallocate EventType = "order.deallocated"
	EventPickCompleted   EventType = "order.pick_completed"
	EventPackCompleted   EventType = "order.pack_completed"
	EventOrderShipped    EventType = "order.shipped"
	EventOrderDelivered  EventType = "order.delivered"
	EventDeliveryFailed  EventType = "order.delivery_failed"
	EventOrderReturned   EventType = "order.returned"
	EventOrderCancelled  EventType = "order.cancelled"
	EventOrderHeld       EventType = "order.held"
	EventOrderReleased   EventType = "order.released"
)

// Validate checks that the event type is one of the defined transitions.
func (t EventType) Validate() error {
	switch t {
	case EventOrderSubmitted, EventOrderAllocated, EventOrderDeallocate,
		EventPickCompleted, EventPackCompleted, EventOrderShipped,
		EventOrderDelivered, EventDeliveryFailed, EventOrderReturned,
		EventOrderCancelled, EventOrderHeld, EventOrderReleased:
		return nil
	default:
		return errs.NewValueIsInvalidError("event type")
	}
}

// Event is one append-only audit log entry for a meaningful order transition.
// Events are never mutated or deleted; the trail is purely additive.
type Event struct {
	id         kernel.UUID
	orderID    kernel.UUID
	eventType  EventType
	payload    string
	occurredAt time.Time

	isConstructed bool
}

// NewEvent creates an audit event for the given order transition.
// The payload is an opaque, already-serialized detail blob (usually JSON).
func NewEvent(id, orderID kernel.UUID, eventType EventType, payload string, occurredAt time.Time) (*Event, error) {
	e := &Event{
		payload:       payload,
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setEventType(eventType),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEvent reconstructs an Event from persistence.
func RestoreEvent(id, orderID kernel.UUID, eventType EventType, payload string, occurredAt time.Time) (*Event, error) {
	return NewEvent(id, orderID, eventType, payload, occurredAt)
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Type returns the transition the event records.
func (e *Event) Type() EventType {
	return e.eventType
}

// Payload returns the serialized detail blob.
func (e *Event) Payload() string {
	return e.payload
}

// OccurredAt returns when the transition happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Event) setEventType(eventType EventType) error {
	if err := eventType.Validate(); err != nil {
		return err
	}
	e.eventType = eventType
	return nil
}
