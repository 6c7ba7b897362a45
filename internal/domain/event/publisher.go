package event

import "context"

// Publisher is the transport contract the services depend on. The concrete
// broker lives in infrastructure.
type Publisher interface {
	Publish(ctx context.Context, e DomainEvent) error
	PublishBatch(ctx context.Context, events []DomainEvent) error
}
