package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	for _, alias := range []string{"", "  ", "today", "tomorrow", "mañana"} {
		got, err := ParseISODate(alias)
		require.NoError(t, err, alias)
		assert.Nil(t, got, alias)
	}

	got, err := ParseISODate("2026-09-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *got)

	for _, bad := range []string{"15/09/2026", "2026-9-1", "ayer", "2026-13-40"} {
		_, err := ParseISODate(bad)
		assert.ErrorIs(t, err, ErrInvalidRequest, bad)
	}
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 1, ClampDays(-3))
	assert.Equal(t, 1, ClampDays(0))
	assert.Equal(t, 1, ClampDays(1))
	assert.Equal(t, 7, ClampDays(7))
	assert.Equal(t, 14, ClampDays(14))
	assert.Equal(t, 14, ClampDays(100))
}

func TestTripPrefsValidate(t *testing.T) {
	assert.NoError(t, (&TripPrefs{Location: "Cusco", Days: 3}).Validate())
	assert.NoError(t, (&TripPrefs{Location: "Cusco", StartDate: "tomorrow"}).Validate())

	assert.ErrorIs(t, (&TripPrefs{}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&TripPrefs{Location: "   "}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&TripPrefs{Location: "Cusco", StartDate: "pronto"}).Validate(), ErrInvalidRequest)
}
