package inventory

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
)

// Snapshot is the current custody state of an item as implied by its log.
type Snapshot struct {
	Location    kernel.Location
	ShowroomID  string
	Status      Status
	StockInDate time.Time
}

var errNoMovements = errors.New("ledger has no movements")

// project folds one movement into a snapshot. It is the only place where
// custody state changes, for live writes and for replay alike.
func project(s Snapshot, m *Movement) (Snapshot, error) {
	switch m.kind {
	case StockIn:
		if s.Status != Unknown {
			return s, errs.NewIllegalStateError("inventory item", m.itemID.String(), s.Status.String(), "stock in")
		}
		if err := m.to.Validate(); err != nil {
			return s, err
		}
		return Snapshot{Location: m.to, ShowroomID: m.toShowroomID, Status: InStock, StockInDate: m.at}, nil

	case Transfer:
		if s.Status != InStock {
			return s, errs.NewIllegalStateError("inventory item", m.itemID.String(), s.Status.String(), "transfer")
		}
		if m.from != s.Location {
			return s, errs.NewValueIsInvalidErrorWithCause("from location",
				fmt.Errorf("movement starts at %s but item is at %s", m.from, s.Location))
		}
		if err := m.to.Validate(); err != nil {
			return s, err
		}
		s.Location = m.to
		s.ShowroomID = m.toShowroomID
		return s, nil

	case StockOut:
		if s.Status != InStock {
			return s, errs.NewIllegalStateError("inventory item", m.itemID.String(), s.Status.String(), "stock out")
		}
		if err := validateStockOutOutcome(m.outcome); err != nil {
			return s, err
		}
		s.Status = m.outcome
		return s, nil

	default:
		return s, errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%d is not a valid movement type", m.kind))
	}
}

// SortMovements orders a log by timestamp, then by per-item sequence.
func SortMovements(movements []*Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		if !movements[i].at.Equal(movements[j].at) {
			return movements[i].at.Before(movements[j].at)
		}
		return movements[i].seq < movements[j].seq
	})
}

// Replay rebuilds the snapshot from an item's full movement log.
func Replay(movements []*Movement) (Snapshot, error) {
	if len(movements) == 0 {
		return Snapshot{}, errNoMovements
	}
	ordered := append([]*Movement(nil), movements...)
	SortMovements(ordered)

	var s Snapshot
	for _, m := range ordered {
		next, err := project(s, m)
		if err != nil {
			return s, fmt.Errorf("replay movement %d (%s): %w", m.seq, m.kind, err)
		}
		s = next
	}
	return s, nil
}
