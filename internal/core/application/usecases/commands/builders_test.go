package commands_test

import (
	"testing"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"

	"github.com/stretchr/testify/require"
)

func issuedID(t *testing.T) orderid.OrderID {
	t.Helper()
	id, err := orderid.New("TN", "37", "DSLR", 1001)
	require.NoError(t, err)
	return id
}

func details() intake.Details {
	return intake.Details{ProductName: "Canon EOS 90D", Price: 42000, Customer: intake.Customer{Name: "Priya"}}
}

func capture() intake.Capture {
	return intake.Capture{
		PhotoRefs:    []string{"p1", "p2", "p3"},
		IDProofRef:   "id-proof",
		SerialNumber: "SN-1",
		CapturedBy:   "agent-7",
	}
}

func pendingPickup(t *testing.T) *intake.Record {
	t.Helper()
	r, err := intake.NewPickupRecord(kernel.NewUUID(), issuedID(t), details(), now)
	require.NoError(t, err)
	return r
}

func assignedPickup(t *testing.T) *intake.Record {
	t.Helper()
	r := pendingPickup(t)
	require.NoError(t, r.AssignAgent("agent-7", now))
	return r
}

func pickedUp(t *testing.T) (*intake.Record, *intake.Verification) {
	t.Helper()
	r := assignedPickup(t)
	v, err := intake.NewVerification(kernel.NewUUID(), r.ID(), intake.SourcePickup, capture(), now)
	require.NoError(t, err)
	require.NoError(t, r.CompletePickup(v, now))
	return r, v
}

func inReview(t *testing.T) (*intake.Record, *intake.Verification) {
	t.Helper()
	r, v := pickedUp(t)
	require.NoError(t, r.OpenReview(now))
	return r, v
}

func walkIn(t *testing.T) *intake.Record {
	t.Helper()
	r, _, err := intake.NewWalkInRecord(kernel.NewUUID(), kernel.NewUUID(), issuedID(t), details(), capture(), now)
	require.NoError(t, err)
	return r
}

func inStockItem(t *testing.T) *inventory.Item {
	t.Helper()
	r := walkIn(t)
	d, err := intake.NewQCDecision(kernel.NewUUID(), r, intake.DecisionInput{
		Decision:   intake.DecisionWarehouse,
		ReviewerID: "qc-1",
	}, now)
	require.NoError(t, err)
	require.NoError(t, r.Decide(d, now))

	item, err := inventory.PlaceInStock(kernel.NewUUID(), r, nil, d, now)
	require.NoError(t, err)
	item.MarkMovementsCommitted()
	item.ClearDomainEvents()
	return item
}
