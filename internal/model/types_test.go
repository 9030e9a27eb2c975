package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowContains(t *testing.T) {
	w := Window{Open: "08:00", Close: "16:00"}

	assert.True(t, w.Contains("08:00"), "open bound is inclusive")
	assert.True(t, w.Contains("12:30"))
	assert.True(t, w.Contains("15:59"))
	assert.False(t, w.Contains("16:00"), "close bound is exclusive")
	assert.False(t, w.Contains("07:59"))
	assert.False(t, w.Contains("23:00"))
}

func TestWeeklyWindowsClosedDay(t *testing.T) {
	windows := WeeklyWindows{
		"Monday": {Open: "08:00", Close: "16:00"},
	}

	_, open := windows["Tuesday"]
	assert.False(t, open)
}

func TestWeekdayName(t *testing.T) {
	weekday, err := WeekdayName("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "Monday", weekday)

	weekday, err = WeekdayName("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, "Sunday", weekday)

	_, err = WeekdayName("02-03-2026")
	assert.Error(t, err)
}

func TestAddDays(t *testing.T) {
	date, err := AddDays("2026-03-02", 7)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", date)

	// Month rollover.
	date, err = AddDays("2026-02-26", 3)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", date)

	_, err = AddDays("not-a-date", 1)
	assert.Error(t, err)
}
