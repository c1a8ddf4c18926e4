package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned for a Record that bypassed its constructors.
var ErrRecordIsNotConstructed = errors.New("intake record must be created via NewPickupRecord or NewWalkInRecord")

// Customer holds contact details. They are opaque to custody logic.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Details describe the submitted device.
type Details struct {
	ProductName string
	Price       int64
	Customer    Customer
}

// Record is the aggregate root for one customer device submission. Terminal
// records are kept for audit and never deleted.
type Record struct {
	id          kernel.UUID
	orderID     orderid.OrderID
	sourceType  SourceType
	status      Status
	productName string
	price       int64
	customer    Customer
	agentID     string
	createdAt   time.Time
	updatedAt   time.Time

	// version is the optimistic lock checked by the repository on update.
	version int

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewPickupRecord creates a pickup request in the pending state.
func NewPickupRecord(id kernel.UUID, orderID orderid.OrderID, details Details, now time.Time) (*Record, error) {
	r := &Record{
		sourceType: SourcePickup,
		status:     Pending,
		customer:   details.Customer,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setProductName(details.ProductName),
		r.setPrice(details.Price, false),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWalkInRecord creates a showroom walk-in directly in pending_qc together
// with its verification. The walk-in price is the agreed price and must be set.
func NewWalkInRecord(
	id, verificationID kernel.UUID,
	orderID orderid.OrderID,
	details Details,
	capture Capture,
	now time.Time,
) (*Record, *Verification, error) {
	r := &Record{
		sourceType: SourceShowroomWalkIn,
		status:     PendingQC,
		customer:   details.Customer,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	verification, verr := NewVerification(verificationID, id, SourceShowroomWalkIn, capture, now)
	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setProductName(details.ProductName),
		r.setPrice(details.Price, true),
		verr,
	); err != nil {
		return nil, nil, err
	}
	return r, verification, nil
}

// RestoreParams carries persisted state back into a Record.
type RestoreParams struct {
	ID          kernel.UUID
	OrderID     orderid.OrderID
	SourceType  SourceType
	Status      Status
	ProductName string
	Price       int64
	Customer    Customer
	AgentID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int
}

// RestoreRecord rebuilds a persisted record. Only structural checks are made.
func RestoreRecord(p RestoreParams) (*Record, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	return &Record{
		id:          p.ID,
		orderID:     p.OrderID,
		sourceType:  p.SourceType,
		status:      p.Status,
		productName: p.ProductName,
		price:       p.Price,
		customer:    p.Customer,
		agentID:     p.AgentID,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		version:     p.Version,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() kernel.UUID          { return r.id }
func (r *Record) OrderID() orderid.OrderID { return r.orderID }
func (r *Record) SourceType() SourceType   { return r.sourceType }
func (r *Record) Status() Status           { return r.status }
func (r *Record) ProductName() string      { return r.productName }
func (r *Record) Price() int64             { return r.price }
func (r *Record) Customer() Customer       { return r.customer }
func (r *Record) AgentID() string          { return r.agentID }
func (r *Record) CreatedAt() time.Time     { return r.createdAt }
func (r *Record) UpdatedAt() time.Time     { return r.updatedAt }
func (r *Record) Version() int             { return r.version }

// IncrementVersion is called by the repository after a successful write.
func (r *Record) IncrementVersion() {
	r.version++
}

func (r *Record) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), r.events...)
}

func (r *Record) ClearDomainEvents() {
	r.events = nil
}

// AssignAgent assigns (or reassigns) the field agent for a pickup.
func (r *Record) AssignAgent(agentID string, now time.Time) error {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return errs.NewValueIsRequiredError("agent id")
	}
	if err := r.apply(EventAssign, now); err != nil {
		return err
	}
	r.agentID = agentID
	return nil
}

// CompletePickup records that the agent captured a valid verification on site.
// The verification must belong to this record.
func (r *Record) CompletePickup(v *Verification, now time.Time) error {
	if v == nil {
		return errs.NewValueIsRequiredError("verification")
	}
	if !v.IntakeID().IsEqual(r.id) {
		return errs.NewValueIsInvalidErrorWithCause("verification",
			fmt.Errorf("belongs to intake %s, not %s", v.IntakeID(), r.id))
	}
	return r.apply(EventCompletePickup, now)
}

// OpenReview moves a picked-up record into QC review.
func (r *Record) OpenReview(now time.Time) error {
	return r.apply(EventOpenReview, now)
}

// Decide applies a QC decision. A record that already reached a terminal
// state rejects every further decision.
func (r *Record) Decide(d *QCDecision, now time.Time) error {
	if d == nil {
		return errs.NewValueIsRequiredError("qc decision")
	}
	if !d.IntakeID().IsEqual(r.id) {
		return errs.NewValueIsInvalidErrorWithCause("qc decision",
			fmt.Errorf("belongs to intake %s, not %s", d.IntakeID(), r.id))
	}
	return r.apply(d.Decision().event(), now)
}

func (r *Record) apply(event Event, now time.Time) error {
	next, ok := r.status.Next(event)
	if !ok {
		return errs.NewIllegalStateError("intake", r.id.String(), r.status.String(), event.String())
	}

	r.events = append(r.events, StatusChanged{
		IntakeID: r.id,
		OrderID:  r.orderID.String(),
		From:     r.status,
		To:       next,
		Event:    event,
		At:       now,
	})
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID orderid.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	r.productName = strings.TrimSpace(name)
	return nil
}

func (r *Record) setPrice(price int64, agreed bool) error {
	if agreed && price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("agreed price", fmt.Errorf("%d is not greater than 0", price))
	}
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price))
	}
	r.price = price
	return nil
}
