package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/pkg/errs"
)

// Decision is the routing outcome of quality review.
type Decision int

const (
	UnknownDecision Decision = iota
	DecisionServiceStation
	DecisionShowroom
	DecisionWarehouse
	DecisionReject
)

func getDecisionStrings() map[Decision]string {
	return map[Decision]string{
		DecisionServiceStation: "service_station",
		DecisionShowroom:       "showroom",
		DecisionWarehouse:      "warehouse",
		DecisionReject:         "reject",
	}
}

func ParseDecision(s string) (Decision, error) {
	for d, name := range getDecisionStrings() {
		if name == s {
			return d, nil
		}
	}
	return UnknownDecision, errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not a valid decision", s))
}

func (d Decision) String() string {
	if s, ok := getDecisionStrings()[d]; ok {
		return s
	}
	return "unknown"
}

func (d Decision) Validate() error {
	if _, ok := getDecisionStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

// Location returns where the device is stocked; false for a rejection.
func (d Decision) Location() (kernel.Location, bool) {
	switch d {
	case DecisionServiceStation:
		return kernel.ServiceStation, true
	case DecisionShowroom:
		return kernel.Showroom, true
	case DecisionWarehouse:
		return kernel.Warehouse, true
	default:
		return kernel.UnknownLocation, false
	}
}

func (d Decision) event() Event {
	switch d {
	case DecisionServiceStation:
		return EventRouteServiceStation
	case DecisionShowroom:
		return EventRouteShowroom
	case DecisionWarehouse:
		return EventRouteWarehouse
	case DecisionReject:
		return EventReject
	default:
		return UnknownEvent
	}
}

// QCDecision is created exactly once per intake record and never mutated.
type QCDecision struct {
	id               kernel.UUID
	intakeID         kernel.UUID
	orderID          orderid.OrderID
	decision         Decision
	targetShowroomID string
	reviewerID       string
	notes            string
	decidedAt        time.Time
}

// DecisionInput is what a reviewer submits.
type DecisionInput struct {
	Decision         Decision
	TargetShowroomID string
	ReviewerID       string
	Notes            string
}

func NewQCDecision(id kernel.UUID, record *Record, in DecisionInput, now time.Time) (*QCDecision, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	d := &QCDecision{
		intakeID:  record.ID(),
		orderID:   record.OrderID(),
		notes:     strings.TrimSpace(in.Notes),
		decidedAt: now,
	}

	if err := errors.Join(
		d.setID(id),
		d.setDecision(in.Decision, in.TargetShowroomID),
		d.setReviewer(in.ReviewerID),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func RestoreQCDecision(
	id, intakeID kernel.UUID,
	orderID orderid.OrderID,
	decision Decision,
	targetShowroomID, reviewerID, notes string,
	decidedAt time.Time,
) *QCDecision {
	return &QCDecision{
		id:               id,
		intakeID:         intakeID,
		orderID:          orderID,
		decision:         decision,
		targetShowroomID: targetShowroomID,
		reviewerID:       reviewerID,
		notes:            notes,
		decidedAt:        decidedAt,
	}
}

func (d *QCDecision) ID() kernel.UUID          { return d.id }
func (d *QCDecision) IntakeID() kernel.UUID    { return d.intakeID }
func (d *QCDecision) OrderID() orderid.OrderID { return d.orderID }
func (d *QCDecision) Decision() Decision       { return d.decision }
func (d *QCDecision) TargetShowroomID() string { return d.targetShowroomID }
func (d *QCDecision) ReviewerID() string       { return d.reviewerID }
func (d *QCDecision) Notes() string            { return d.notes }
func (d *QCDecision) DecidedAt() time.Time     { return d.decidedAt }

func (d *QCDecision) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *QCDecision) setDecision(decision Decision, showroomID string) error {
	if err := decision.Validate(); err != nil {
		return err
	}
	showroomID = strings.TrimSpace(showroomID)
	switch {
	case decision == DecisionShowroom && showroomID == "":
		return errs.NewValueIsRequiredErrorWithCause("target showroom id", errors.New("showroom decisions must name a showroom"))
	case decision != DecisionShowroom && showroomID != "":
		return errs.NewValueIsInvalidErrorWithCause("target showroom id", fmt.Errorf("%s decisions do not name a showroom", decision))
	}
	d.decision = decision
	d.targetShowroomID = showroomID
	return nil
}

func (d *QCDecision) setReviewer(reviewerID string) error {
	if strings.TrimSpace(reviewerID) == "" {
		return errs.NewValueIsRequiredError("reviewer id")
	}
	d.reviewerID = strings.TrimSpace(reviewerID)
	return nil
}
