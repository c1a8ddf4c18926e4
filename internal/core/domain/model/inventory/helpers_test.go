package inventory_test

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

// decidedWalkIn returns a walk-in record already routed by decision.
func decidedWalkIn(t *testing.T, decision intake.Decision, showroomID string) (*intake.Record, *intake.Verification, *intake.QCDecision) {
	t.Helper()

	oid, err := orderid.New("KA", "01", "IPNE", 1002)
	require.NoError(t, err)

	record, verification, err := intake.NewWalkInRecord(kernel.NewUUID(), kernel.NewUUID(), oid,
		intake.Details{ProductName: "iPhone 13", Price: 31000},
		intake.Capture{
			PhotoRefs:    []string{"p1", "p2", "p3"},
			IDProofRef:   "id",
			SerialNumber: "F2LXK0",
			CapturedBy:   "staff-3",
		}, now)
	require.NoError(t, err)

	qc, err := intake.NewQCDecision(kernel.NewUUID(), record, intake.DecisionInput{
		Decision:         decision,
		TargetShowroomID: showroomID,
		ReviewerID:       "qc-1",
	}, now)
	require.NoError(t, err)
	require.NoError(t, record.Decide(qc, now))

	return record, verification, qc
}

func stockedItem(t *testing.T) *inventory.Item {
	t.Helper()
	record, verification, qc := decidedWalkIn(t, intake.DecisionWarehouse, "")
	item, err := inventory.PlaceInStock(kernel.NewUUID(), record, verification, qc, now)
	require.NoError(t, err)
	return item
}

func assertReplayMatches(t *testing.T, item *inventory.Item, log []*inventory.Movement) {
	t.Helper()
	replayed, err := inventory.Replay(log)
	require.NoError(t, err)
	require.Equal(t, item.Snapshot(), replayed)
}
