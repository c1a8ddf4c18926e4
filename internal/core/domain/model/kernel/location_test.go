package kernel_test

import (
	"testing"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_StringAndParse(t *testing.T) {
	testCases := []struct {
		location kernel.Location
		name     string
	}{
		{kernel.ServiceStation, "service_station"},
		{kernel.Showroom, "showroom"},
		{kernel.Warehouse, "warehouse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.location.String())

			parsed, err := kernel.ParseLocation(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.location, parsed)
			require.NoError(t, parsed.Validate())
		})
	}
}

func TestLocation_Invalid(t *testing.T) {
	t.Run("unknown location fails validation", func(t *testing.T) {
		err := kernel.UnknownLocation.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "unknown", kernel.UnknownLocation.String())
	})

	t.Run("unknown name fails parsing", func(t *testing.T) {
		_, err := kernel.ParseLocation("garage")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"garage" is not a known location`)
	})
}

func TestLocation_RequiresShowroomID(t *testing.T) {
	assert.True(t, kernel.Showroom.RequiresShowroomID())
	assert.False(t, kernel.Warehouse.RequiresShowroomID())
	assert.False(t, kernel.ServiceStation.RequiresShowroomID())
}
