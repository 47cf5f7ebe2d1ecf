package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	require.NoError(t, Init("America/Sao_Paulo"))

	got, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-03-15", FormatDate(got))

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestDayBoundaries(t *testing.T) {
	require.NoError(t, Init("America/Sao_Paulo"))

	// 01:30 UTC on the 16th is still the 15th in Sao Paulo.
	instant := time.Date(2024, 3, 16, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC), StartOfDayUTC(instant))
	assert.Equal(t, time.Date(2024, 3, 16, 2, 59, 59, 999999999, time.UTC), EndOfDayUTC(instant))
}

func TestInit_UnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus_Mons"))
}

func TestCalendarDate(t *testing.T) {
	require.NoError(t, Init("America/Sao_Paulo"))

	instant := time.Date(2024, 3, 16, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), CalendarDate(instant))

	got, err := ParseCalendarDate(" 2024-03-15 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", FormatCalendarDate(got))

	_, err = ParseCalendarDate("2024-13-01")
	assert.Error(t, err)
}
