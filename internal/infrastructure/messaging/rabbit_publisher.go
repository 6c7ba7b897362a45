package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-ddd/internal/domain/event"
	"github.com/danuartha/go-commerce-ddd/pkg/helpers"
)

// Envelope is the wire shape for domain events on the broker. Data carries
// the event payload; consumers dispatch on EventType.
type Envelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      event.DomainEvent `json:"data"`
}

// RabbitEventPublisher adapts the RabbitMQ helper to the domain Publisher
// contract. Messages are durable JSON on a single domain-events queue.
type RabbitEventPublisher struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewRabbitEventPublisher(pub *helpers.RabbitPublisher, logger *logrus.Logger) *RabbitEventPublisher {
	return &RabbitEventPublisher{Pub: pub, Logger: logger}
}

func (p *RabbitEventPublisher) Publish(ctx context.Context, e event.DomainEvent) error {
	env := Envelope{
		EventID:   uuid.NewString(),
		EventType: e.EventName(),
		Timestamp: time.Now().UTC(),
		Data:      e,
	}
	if err := p.Pub.PublishJSON(ctx, env); err != nil {
		if p.Logger != nil {
			p.Logger.WithError(err).WithField("event_type", env.EventType).Error("publish domain event failed")
		}
		return err
	}
	return nil
}

func (p *RabbitEventPublisher) PublishBatch(ctx context.Context, events []event.DomainEvent) error {
	for _, e := range events {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

var _ event.Publisher = (*RabbitEventPublisher)(nil)
