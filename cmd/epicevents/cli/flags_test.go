package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeFlag(t *testing.T) {
	got, err := parseTimeFlag("2024-06-04 13:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 13, 0, 0, 0, time.Local), got)

	got, err = parseTimeFlag("2024-06-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.Local), got)

	_, err = parseTimeFlag("2024-06-04T13:00:00Z")
	assert.NoError(t, err)

	_, err = parseTimeFlag("next tuesday")
	assert.Error(t, err)
}

func TestOptionalFlagsDistinguishUnsetFromZero(t *testing.T) {
	fs := newFlagSet("update-event")
	attendees := fs.Int("attendees", 0, "")
	location := fs.String("location", "", "")
	require.NoError(t, fs.Parse([]string{"--attendees", "0"}))

	// Explicitly set to zero: supplied, value 0.
	got := optionalInt(fs, "attendees", attendees)
	require.NotNil(t, got)
	assert.Zero(t, *got)

	// Never set: not supplied.
	assert.Nil(t, optionalString(fs, "location", location))
}

func TestOptionalTime(t *testing.T) {
	fs := newFlagSet("update-event")
	start := fs.String("date-start", "", "")
	require.NoError(t, fs.Parse([]string{"--date-start", "2024-06-04 13:00"}))

	got, err := optionalTime(fs, "date-start", start)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 6, 4, 13, 0, 0, 0, time.Local), *got)

	fs = newFlagSet("update-event")
	start = fs.String("date-start", "", "")
	require.NoError(t, fs.Parse(nil))
	got, err = optionalTime(fs, "date-start", start)
	require.NoError(t, err)
	assert.Nil(t, got)

	fs = newFlagSet("update-event")
	start = fs.String("date-start", "", "")
	require.NoError(t, fs.Parse([]string{"--date-start", "whenever"}))
	_, err = optionalTime(fs, "date-start", start)
	assert.Error(t, err)
}
