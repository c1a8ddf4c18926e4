package queries

import (
	"errors"
	"time"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrGetItemHistoryQueryIsNotConstructed = errors.New(
		"GetItemHistoryQuery must be created via NewGetItemHistoryQuery constructor",
	)
)

// GetItemHistoryQuery returns an item's movement log together with the
// snapshot rebuilt from it.
type GetItemHistoryQuery struct {
	itemID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetItemHistoryQuery(itemID kernel.UUID) (GetItemHistoryQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("inventory item id", err)
	}
	return GetItemHistoryQuery{itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetItemHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetItemHistoryQueryIsNotConstructed)
}

func (q GetItemHistoryQuery) ItemID() kernel.UUID { return q.itemID }

type MovementView struct {
	ID           kernel.UUID
	Seq          int
	Type         inventory.MovementType
	From         kernel.Location
	To           kernel.Location
	ToShowroomID string
	Outcome      inventory.Status
	Reason       string
	PerformedBy  string
	Notes        string
	At           time.Time
}

// GetItemHistoryQueryResponse carries the stored snapshot and the replayed
// one. Consistent is false when they differ, which means a write was
// interrupted and the repair job has not run yet.
type GetItemHistoryQueryResponse struct {
	ItemID     kernel.UUID
	OrderID    string
	Stored     inventory.Snapshot
	Replayed   inventory.Snapshot
	Consistent bool
	Movements  []MovementView
}
