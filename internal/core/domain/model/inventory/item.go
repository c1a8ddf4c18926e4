package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("inventory item must be created via PlaceInStock")

// Item is the durable custody record for one physical unit.
type Item struct {
	id           kernel.UUID
	intakeID     kernel.UUID
	orderID      orderid.OrderID
	serialNumber string
	agreedPrice  int64
	snapshot     Snapshot
	createdAt    time.Time

	// lastSeq is the sequence of the newest movement in the log.
	lastSeq int
	version int

	uncommitted []*Movement
	events      []kernel.DomainEvent
	guard       guard.ConstructorGuard
}

// PlaceInStock creates the inventory item for an intake record that reached a
// non-reject terminal state, with its stock_in movement. The verification is
// optional and only contributes the serial number.
func PlaceInStock(
	id kernel.UUID,
	record *intake.Record,
	verification *intake.Verification,
	decision *intake.QCDecision,
	now time.Time,
) (*Item, error) {
	if err := errors.Join(id.Validate(), record.Validate()); err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, errs.NewValueIsRequiredError("qc decision")
	}
	if !decision.IntakeID().IsEqual(record.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("qc decision",
			fmt.Errorf("belongs to intake %s, not %s", decision.IntakeID(), record.ID()))
	}
	location, ok := decision.Decision().Location()
	if !ok {
		return nil, errs.NewIllegalStateError("intake", record.ID().String(), record.Status().String(), "stock in")
	}
	if record.Status().String() != decision.Decision().String() {
		return nil, errs.NewIllegalStateError("intake", record.ID().String(), record.Status().String(), "stock in as "+decision.Decision().String())
	}

	item := &Item{
		id:          id,
		intakeID:    record.ID(),
		orderID:     record.OrderID(),
		agreedPrice: record.Price(),
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}
	if verification != nil {
		item.serialNumber = verification.SerialNumber()
	}

	stockIn := &Movement{
		kind:         StockIn,
		from:         kernel.UnknownLocation,
		to:           location,
		toShowroomID: decision.TargetShowroomID(),
		reason:       "qc decision: " + decision.Decision().String(),
		performedBy:  decision.ReviewerID(),
		notes:        decision.Notes(),
	}
	if err := item.record(stockIn, now); err != nil {
		return nil, err
	}
	return item, nil
}

// ItemParams carries persisted item fields.
type ItemParams struct {
	ID           kernel.UUID
	IntakeID     kernel.UUID
	OrderID      orderid.OrderID
	SerialNumber string
	AgreedPrice  int64
	Snapshot     Snapshot
	CreatedAt    time.Time
	LastSeq      int
	Version      int
}

func RestoreItem(p ItemParams) (*Item, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Snapshot.Status.Validate()); err != nil {
		return nil, err
	}
	return &Item{
		id:           p.ID,
		intakeID:     p.IntakeID,
		orderID:      p.OrderID,
		serialNumber: p.SerialNumber,
		agreedPrice:  p.AgreedPrice,
		snapshot:     p.Snapshot,
		createdAt:    p.CreatedAt,
		lastSeq:      p.LastSeq,
		version:      p.Version,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID           { return i.id }
func (i *Item) IntakeID() kernel.UUID     { return i.intakeID }
func (i *Item) OrderID() orderid.OrderID  { return i.orderID }
func (i *Item) SerialNumber() string      { return i.serialNumber }
func (i *Item) AgreedPrice() int64        { return i.agreedPrice }
func (i *Item) Snapshot() Snapshot        { return i.snapshot }
func (i *Item) Location() kernel.Location { return i.snapshot.Location }
func (i *Item) ShowroomID() string        { return i.snapshot.ShowroomID }
func (i *Item) Status() Status            { return i.snapshot.Status }
func (i *Item) StockInDate() time.Time    { return i.snapshot.StockInDate }
func (i *Item) CreatedAt() time.Time      { return i.createdAt }
func (i *Item) LastSeq() int              { return i.lastSeq }
func (i *Item) Version() int              { return i.version }

func (i *Item) IncrementVersion() {
	i.version++
}

// UncommittedMovements returns movements recorded since the item was loaded.
func (i *Item) UncommittedMovements() []*Movement {
	return append([]*Movement(nil), i.uncommitted...)
}

// MarkMovementsCommitted is called by the repository once the movements and
// the snapshot are durable together.
func (i *Item) MarkMovementsCommitted() {
	i.uncommitted = nil
}

func (i *Item) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), i.events...)
}

func (i *Item) ClearDomainEvents() {
	i.events = nil
}

// Transfer moves an in-stock item to another location. Moving to a showroom
// requires a showroom id.
func (i *Item) Transfer(to kernel.Location, toShowroomID, reason, performedBy string, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	toShowroomID = strings.TrimSpace(toShowroomID)
	if to.RequiresShowroomID() && toShowroomID == "" {
		return errs.NewValueIsRequiredError("target showroom id")
	}
	if !to.RequiresShowroomID() {
		toShowroomID = ""
	}
	if i.snapshot.Status == InStock && to == i.snapshot.Location && toShowroomID == i.snapshot.ShowroomID {
		return errs.NewValueIsInvalidErrorWithCause("target location", fmt.Errorf("item is already at %s", to))
	}
	return i.record(&Movement{kind: Transfer, from: i.snapshot.Location, to: to, toShowroomID: toShowroomID,
		reason: reason, performedBy: performedBy}, now)
}

// StockOut takes an in-stock item out of custody, ending as Sold or Returned.
// After this the item accepts no further movements.
func (i *Item) StockOut(outcome Status, reason, performedBy string, now time.Time) error {
	if err := validateStockOutOutcome(outcome); err != nil {
		return err
	}
	return i.record(&Movement{kind: StockOut, from: i.snapshot.Location, to: kernel.UnknownLocation,
		outcome: outcome, reason: reason, performedBy: performedBy}, now)
}

// AgingDays is the number of whole days since stock-in, or since creation when
// no stock-in date is known. It is never stored.
func (i *Item) AgingDays(now time.Time) int {
	return AgingDays(i.snapshot.StockInDate, i.createdAt, now)
}

// record stamps a drafted movement with its identity, applies it to the
// snapshot and queues it for persistence.
func (i *Item) record(m *Movement, now time.Time) error {
	var errList []error
	if strings.TrimSpace(m.reason) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("reason"))
	}
	if strings.TrimSpace(m.performedBy) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("performed by"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	m.id = kernel.NewUUID()
	m.itemID = i.id
	m.seq = i.lastSeq + 1
	m.reason = strings.TrimSpace(m.reason)
	m.performedBy = strings.TrimSpace(m.performedBy)
	m.notes = strings.TrimSpace(m.notes)
	m.at = now

	next, err := project(i.snapshot, m)
	if err != nil {
		return err
	}

	i.snapshot = next
	i.lastSeq = m.seq
	i.uncommitted = append(i.uncommitted, m)
	i.events = append(i.events, MovementRecorded{
		ItemID:     i.id,
		OrderID:    i.orderID.String(),
		MovementID: m.id,
		Type:       m.kind,
		From:       m.from,
		To:         m.to,
		Status:     next.Status,
		At:         now,
	})
	return nil
}
