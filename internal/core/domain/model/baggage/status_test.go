package baggage_test

import (
	"testing"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected baggage.Status
	}{
		{"CHECKED_IN", baggage.CheckedIn},
		{"SECURITY_CLEARED", baggage.SecurityCleared},
		{"LOADED", baggage.Loaded},
		{"IN_FLIGHT", baggage.InFlight},
		{"ARRIVED", baggage.Arrived},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, err := baggage.ParseStatus(tt.code)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.code, status.String())
		})
	}

	t.Run("should reject lower-case codes", func(t *testing.T) {
		_, err := baggage.ParseStatus("arrived")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		status, err := baggage.ParseStatus("LOST")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, baggage.Unknown, status)
	})

	t.Run("should require a code", func(t *testing.T) {
		_, err := baggage.ParseStatus("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStatus_Display(t *testing.T) {
	assert.Equal(t, "Checked In", baggage.CheckedIn.Display())
	assert.Equal(t, "Security Cleared", baggage.SecurityCleared.Display())
	assert.Equal(t, "Loaded", baggage.Loaded.Display())
	assert.Equal(t, "In-Flight", baggage.InFlight.Display())
	assert.Equal(t, "Arrived", baggage.Arrived.Display())
	assert.Equal(t, "Unknown", baggage.Unknown.Display())
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range baggage.AllStatuses() {
		require.NoError(t, s.Validate())
	}
	require.Error(t, baggage.Unknown.Validate())
	require.Error(t, baggage.Status(42).Validate())
	assert.Equal(t, "UNKNOWN", baggage.Status(42).String())
}

func TestStatus_Precedes(t *testing.T) {
	all := baggage.AllStatuses()
	require.Len(t, all, 5)

	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Precedes(all[i]))
		assert.False(t, all[i].Precedes(all[i-1]))
	}
	assert.False(t, baggage.Loaded.Precedes(baggage.Loaded))
}
