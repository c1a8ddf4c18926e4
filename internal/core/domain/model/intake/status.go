package intake

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Status is the custody state of an intake record.
type Status int

const (
	Unknown Status = iota
	Pending
	Assigned
	PickedUp
	QCReview
	PendingQC
	ServiceStation
	Showroom
	Warehouse
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:        "pending",
		Assigned:       "assigned",
		PickedUp:       "picked_up",
		QCReview:       "qc_review",
		PendingQC:      "pending_qc",
		ServiceStation: "service_station",
		Showroom:       "showroom",
		Warehouse:      "warehouse",
		Rejected:       "reject",
	}
}

// ParseStatus maps a persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid intake status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid intake status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether a QC decision has been applied.
func (s Status) IsTerminal() bool {
	switch s {
	case ServiceStation, Showroom, Warehouse, Rejected:
		return true
	default:
		return false
	}
}

// Event drives a status transition.
type Event int

const (
	UnknownEvent Event = iota
	EventAssign
	EventCompletePickup
	EventOpenReview
	EventRouteServiceStation
	EventRouteShowroom
	EventRouteWarehouse
	EventReject
)

func (e Event) String() string {
	switch e {
	case EventAssign:
		return "assign"
	case EventCompletePickup:
		return "complete_pickup"
	case EventOpenReview:
		return "open_review"
	case EventRouteServiceStation:
		return "route_service_station"
	case EventRouteShowroom:
		return "route_showroom"
	case EventRouteWarehouse:
		return "route_warehouse"
	case EventReject:
		return "reject"
	default:
		return "unknown"
	}
}

type transitionKey struct {
	from  Status
	event Event
}

var decisionTransitions = map[Event]Status{
	EventRouteServiceStation: ServiceStation,
	EventRouteShowroom:       Showroom,
	EventRouteWarehouse:      Warehouse,
	EventReject:              Rejected,
}

// transitions is the complete state machine. Anything not listed is illegal.
var transitions = func() map[transitionKey]Status {
	t := map[transitionKey]Status{
		{Pending, EventAssign}:          Assigned,
		{Assigned, EventAssign}:         Assigned,
		{Assigned, EventCompletePickup}: PickedUp,
		{PickedUp, EventOpenReview}:     QCReview,
	}
	for event, to := range decisionTransitions {
		t[transitionKey{QCReview, event}] = to
		t[transitionKey{PendingQC, event}] = to
	}
	return t
}()

// Next returns the status reached by applying event, or false if the
// transition is not allowed from s.
func (s Status) Next(event Event) (Status, bool) {
	next, ok := transitions[transitionKey{s, event}]
	return next, ok
}

// SourceType tells how the device entered custody.
type SourceType int

const (
	UnknownSource SourceType = iota
	SourcePickup
	SourceShowroomWalkIn
)

func (t SourceType) String() string {
	switch t {
	case SourcePickup:
		return "pickup"
	case SourceShowroomWalkIn:
		return "showroom_walkin"
	default:
		return "unknown"
	}
}

func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "pickup":
		return SourcePickup, nil
	case "showroom_walkin":
		return SourceShowroomWalkIn, nil
	default:
		return UnknownSource, errs.NewValueIsInvalidErrorWithCause("source type", fmt.Errorf("%q is not a valid source type", s))
	}
}
