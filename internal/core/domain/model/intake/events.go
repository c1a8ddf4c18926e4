package intake

import (
	"time"

	"custody/internal/core/domain/model/kernel"
)

// StatusChanged is raised on every applied transition.
type StatusChanged struct {
	IntakeID kernel.UUID
	OrderID  string
	From     Status
	To       Status
	Event    Event
	At       time.Time
}

func (e StatusChanged) Name() string             { return "intake.status_changed" }
func (e StatusChanged) AggregateID() kernel.UUID { return e.IntakeID }
func (e StatusChanged) OccurredAt() time.Time    { return e.At }
