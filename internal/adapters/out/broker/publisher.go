// Package broker publishes committed domain events to Kafka, keyed by
// aggregate id so that every event of one intake or item lands on the same
// partition in order.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewPublisher creates a producer for topic.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return newPublisher(writer, logger)
}

func newPublisher(writer messageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: writer, logger: logger.With(zap.String("component", "event_publisher"))}
}

// Envelope is the message value.
type Envelope struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

type statusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Event   string `json:"event"`
}

type movementRecordedPayload struct {
	OrderID    string `json:"order_id"`
	MovementID string `json:"movement_id"`
	Type       string `json:"type"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Status     string `json:"status"`
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write %d events to kafka: %w", len(msgs), err)
	}

	p.logger.Debug("published domain events", zap.Int("count", len(msgs)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(event kernel.DomainEvent) (kafka.Message, error) {
	value, err := json.Marshal(Envelope{
		Name:        event.Name(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload(event),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s: %w", event.Name(), err)
	}

	return kafka.Message{
		Key:     []byte(event.AggregateID().String()),
		Value:   value,
		Time:    event.OccurredAt(),
		Headers: []kafka.Header{{Key: "event", Value: []byte(event.Name())}},
	}, nil
}

func payload(event kernel.DomainEvent) any {
	switch e := event.(type) {
	case intake.StatusChanged:
		return statusChangedPayload{
			OrderID: e.OrderID,
			From:    e.From.String(),
			To:      e.To.String(),
			Event:   e.Event.String(),
		}
	case inventory.MovementRecorded:
		p := movementRecordedPayload{
			OrderID:    e.OrderID,
			MovementID: e.MovementID.String(),
			Type:       e.Type.String(),
			Status:     e.Status.String(),
		}
		if e.From != kernel.UnknownLocation {
			p.From = e.From.String()
		}
		if e.To != kernel.UnknownLocation {
			p.To = e.To.String()
		}
		return p
	default:
		return event
	}
}
