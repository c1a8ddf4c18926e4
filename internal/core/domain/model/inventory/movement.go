package inventory

import (
	"fmt"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
)

// MovementType classifies a ledger entry.
type MovementType int

const (
	UnknownMovement MovementType = iota
	StockIn
	Transfer
	StockOut
)

func (t MovementType) String() string {
	switch t {
	case StockIn:
		return "stock_in"
	case Transfer:
		return "transfer"
	case StockOut:
		return "stock_out"
	default:
		return "unknown"
	}
}

func ParseMovementType(s string) (MovementType, error) {
	switch s {
	case "stock_in":
		return StockIn, nil
	case "transfer":
		return Transfer, nil
	case "stock_out":
		return StockOut, nil
	default:
		return UnknownMovement, errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%q is not a valid movement type", s))
	}
}

// Movement is one immutable entry of an item's custody log. From is
// UnknownLocation for stock-in and To is UnknownLocation for stock-out.
// Outcome is set on stock-out only. Seq orders movements that share a
// timestamp.
type Movement struct {
	id           kernel.UUID
	itemID       kernel.UUID
	seq          int
	kind         MovementType
	from         kernel.Location
	to           kernel.Location
	toShowroomID string
	outcome      Status
	reason       string
	performedBy  string
	notes        string
	at           time.Time
}

// MovementParams carries persisted movement fields.
type MovementParams struct {
	ID           kernel.UUID
	ItemID       kernel.UUID
	Seq          int
	Type         MovementType
	From         kernel.Location
	To           kernel.Location
	ToShowroomID string
	Outcome      Status
	Reason       string
	PerformedBy  string
	Notes        string
	At           time.Time
}

// RestoreMovement rebuilds a persisted movement.
func RestoreMovement(p MovementParams) *Movement {
	return &Movement{
		id:           p.ID,
		itemID:       p.ItemID,
		seq:          p.Seq,
		kind:         p.Type,
		from:         p.From,
		to:           p.To,
		toShowroomID: p.ToShowroomID,
		outcome:      p.Outcome,
		reason:       p.Reason,
		performedBy:  p.PerformedBy,
		notes:        p.Notes,
		at:           p.At,
	}
}

func (m *Movement) ID() kernel.UUID       { return m.id }
func (m *Movement) ItemID() kernel.UUID   { return m.itemID }
func (m *Movement) Seq() int              { return m.seq }
func (m *Movement) Type() MovementType    { return m.kind }
func (m *Movement) From() kernel.Location { return m.from }
func (m *Movement) To() kernel.Location   { return m.to }
func (m *Movement) ToShowroomID() string  { return m.toShowroomID }
func (m *Movement) Outcome() Status       { return m.outcome }
func (m *Movement) Reason() string        { return m.reason }
func (m *Movement) PerformedBy() string   { return m.performedBy }
func (m *Movement) Notes() string         { return m.notes }
func (m *Movement) At() time.Time         { return m.at }

// MovementRecorded is raised for every movement appended to the ledger.
type MovementRecorded struct {
	ItemID     kernel.UUID
	OrderID    string
	MovementID kernel.UUID
	Type       MovementType
	From       kernel.Location
	To         kernel.Location
	Status     Status
	At         time.Time
}

func (e MovementRecorded) Name() string             { return "ledger.stock_movement_recorded" }
func (e MovementRecorded) AggregateID() kernel.UUID { return e.ItemID }
func (e MovementRecorded) OccurredAt() time.Time    { return e.At }
