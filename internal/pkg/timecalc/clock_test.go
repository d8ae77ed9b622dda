package timecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "07:00", "7:05", "23:59", "19:30"}
	invalid := []string{"", "24:00", "12:60", "12", "aa:bb", "12:5", "07:00:00"}

	for _, s := range valid {
		assert.True(t, IsValidClock(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidClock(s), "expected %q to be invalid", s)
	}
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "07:00", NormalizeClock("07:00:00"))
	assert.Equal(t, "07:05", NormalizeClock("7:05"))
	assert.Equal(t, "16:45", NormalizeClock(" 16:45 "))
	assert.Equal(t, "nope", NormalizeClock("nope"))
}

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, m)

	_, err = ToMinutes("25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "07:05", FromMinutes(425))
	assert.Equal(t, "23:59", FromMinutes(1439))
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		s := FromMinutes(m)
		got, err := ToMinutes(s)
		require.NoError(t, err)
		require.Equal(t, m, got)
		require.Equal(t, s, FromMinutes(got))
	}
}
