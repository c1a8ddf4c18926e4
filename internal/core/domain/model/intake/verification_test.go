package intake_test

import (
	"testing"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerification(t *testing.T) {
	intakeID := kernel.NewUUID()

	t.Run("accepts three photos, an id proof and a serial", func(t *testing.T) {
		v, err := intake.NewVerification(kernel.NewUUID(), intakeID, intake.SourcePickup, validCapture(), now)

		require.NoError(t, err)
		assert.Len(t, v.PhotoRefs(), 3)
		assert.Equal(t, "SN-12345", v.SerialNumber())
		assert.True(t, v.IntakeID().IsEqual(intakeID))
	})

	t.Run("two photos fail before anything is created", func(t *testing.T) {
		c := validCapture()
		c.PhotoRefs = c.PhotoRefs[:2]

		v, err := intake.NewVerification(kernel.NewUUID(), intakeID, intake.SourcePickup, c, now)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, v)
		assert.Contains(t, err.Error(), "device photos")
	})

	t.Run("blank photo refs do not count", func(t *testing.T) {
		c := validCapture()
		c.PhotoRefs = []string{"blob://a", " ", "blob://b", ""}

		_, err := intake.NewVerification(kernel.NewUUID(), intakeID, intake.SourcePickup, c, now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("reports every missing field", func(t *testing.T) {
		_, err := intake.NewVerification(kernel.NewUUID(), intakeID, intake.SourcePickup, intake.Capture{}, now)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "device photos")
		assert.Contains(t, err.Error(), "id proof")
		assert.Contains(t, err.Error(), "serial number")
		assert.Contains(t, err.Error(), "captured by")
	})

	t.Run("walk-ins may omit the serial number", func(t *testing.T) {
		c := validCapture()
		c.SerialNumber = ""

		_, err := intake.NewVerification(kernel.NewUUID(), intakeID, intake.SourceShowroomWalkIn, c, now)
		require.NoError(t, err)
	})
}

func TestVerification_AppendNote(t *testing.T) {
	c := validCapture()
	c.Notes = "screen scratched"
	v, err := intake.NewVerification(kernel.NewUUID(), kernel.NewUUID(), intake.SourcePickup, c, now)
	require.NoError(t, err)

	require.NoError(t, v.AppendNote("battery health 87%"))
	require.ErrorIs(t, v.AppendNote("  "), errs.ErrValueIsRequired)

	assert.Equal(t, []string{"screen scratched", "battery health 87%"}, v.Notes())
}
