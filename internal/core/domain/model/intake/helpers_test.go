package intake_test

import (
	"testing"
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func validCapture() intake.Capture {
	return intake.Capture{
		PhotoRefs:    []string{"blob://front", "blob://back", "blob://side"},
		IDProofRef:   "blob://aadhaar",
		SerialNumber: "SN-12345",
		CapturedBy:   "agent-7",
	}
}

func validDetails() intake.Details {
	return intake.Details{
		ProductName: "Canon EOS 90D",
		Price:       42000,
		Customer:    intake.Customer{Name: "Priya", Phone: "+91 98400 00000", Address: "Coimbatore"},
	}
}

func mustOrderID(t *testing.T, seq int64) orderid.OrderID {
	t.Helper()
	id, err := orderid.New("TN", "37", "DSLR", seq)
	require.NoError(t, err)
	return id
}

func newPickup(t *testing.T) *intake.Record {
	t.Helper()
	r, err := intake.NewPickupRecord(kernel.NewUUID(), mustOrderID(t, 1001), validDetails(), now)
	require.NoError(t, err)
	return r
}

// pickupInReview walks a pickup record to qc_review.
func pickupInReview(t *testing.T) *intake.Record {
	t.Helper()
	r := newPickup(t)
	require.NoError(t, r.AssignAgent("agent-7", now))
	v, err := intake.NewVerification(kernel.NewUUID(), r.ID(), intake.SourcePickup, validCapture(), now)
	require.NoError(t, err)
	require.NoError(t, r.CompletePickup(v, now))
	require.NoError(t, r.OpenReview(now))
	return r
}
