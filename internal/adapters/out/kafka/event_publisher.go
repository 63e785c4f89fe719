// Package kafka publishes order lifecycle events to a Kafka topic using
// franz-go. Events are keyed by order ID so consumers see each order's
// events in commit order.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/model/order"

	"github.com/twmb/franz-go/pkg/kgo"
)

// eventEnvelope is the wire format of one published event. The detail blob
// is carried verbatim from the order's audit trail.
type eventEnvelope struct {
	EventID    string          `json:"eventId"`
	OrderID    string          `json:"orderId"`
	EventType  string          `json:"eventType"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// EventPublisher sends order events to a single Kafka topic.
type EventPublisher struct {
	client *kgo.Client
	topic  string
}

// NewEventPublisher creates a Kafka-backed event publisher. The client waits
// for all in-sync replicas to acknowledge each record.
func NewEventPublisher(brokers []string, topic string) (*EventPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("warehouse"),
	)
	if err != nil {
		return nil, err
	}

	return &EventPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends one order event, keyed by order ID.
func (p *EventPublisher) Publish(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(eventEnvelope{
		EventID:    event.ID().String(),
		OrderID:    event.OrderID().String(),
		EventType:  string(event.Type()),
		Payload:    json.RawMessage(event.Payload()),
		OccurredAt: event.OccurredAt(),
	})
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrderID().String()),
		Value: value,
	}

	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes buffered records and closes the client.
func (p *EventPublisher) Close() {
	p.client.Close()
}
