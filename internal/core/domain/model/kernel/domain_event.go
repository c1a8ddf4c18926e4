package kernel

import "time"

// DomainEvent is a fact raised by an aggregate. Events are collected on the
// aggregate and published after the unit of work commits.
type DomainEvent interface {
	// Name is the routing key, e.g. "intake.status_changed".
	Name() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// Aggregate is implemented by every aggregate root a repository tracks.
type Aggregate interface {
	ID() UUID
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
