package queries_test

import (
	"testing"
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.Aggregate) {}

// stocked places a walk-in in stock at the given time.
func stocked(t *testing.T, seq int64, decision intake.Decision, showroomID string, at time.Time) *inventory.Item {
	t.Helper()
	orderID, err := orderid.New("TN", "37", "DSLR", seq)
	require.NoError(t, err)

	r, _, err := intake.NewWalkInRecord(kernel.NewUUID(), kernel.NewUUID(), orderID,
		intake.Details{ProductName: "Sony A7 III", Price: 91000},
		intake.Capture{PhotoRefs: []string{"a", "b", "c"}, IDProofRef: "id", SerialNumber: "SN-" + orderID.String(), CapturedBy: "staff-1"},
		at)
	require.NoError(t, err)
	d, err := intake.NewQCDecision(kernel.NewUUID(), r, intake.DecisionInput{
		Decision:         decision,
		TargetShowroomID: showroomID,
		ReviewerID:       "qc-1",
	}, at)
	require.NoError(t, err)
	require.NoError(t, r.Decide(d, at))

	item, err := inventory.PlaceInStock(kernel.NewUUID(), r, nil, d, at)
	require.NoError(t, err)
	return item
}
