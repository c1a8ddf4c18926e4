package ports

import (
	"context"

	"custody/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events after the owning transaction commits.
// Delivery is at-most-once: a failed publish is reported but never rolls back
// the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
