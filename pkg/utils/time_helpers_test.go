package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(base, base))
	assert.Equal(t, 1, DaysBetween(base, base.Add(time.Hour)), "partial days round up")
	assert.Equal(t, 1, DaysBetween(base, base.Add(24*time.Hour)))
	assert.Equal(t, 2, DaysBetween(base, base.Add(25*time.Hour)))
	assert.Equal(t, 365, DaysBetween(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetweenSymmetric(t *testing.T) {
	a := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	b := a.Add(30 * time.Hour)

	assert.Equal(t, DaysBetween(a, b), DaysBetween(b, a))
}

func TestHoursBetween(t *testing.T) {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.InDelta(t, 1.5, HoursBetween(base, base.Add(90*time.Minute)), 1e-9)
	assert.InDelta(t, 1.5, HoursBetween(base.Add(90*time.Minute), base), 1e-9)
	assert.InDelta(t, 0, HoursBetween(base, base), 1e-9)
}

func TestMonthsBetween(t *testing.T) {
	a := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	b := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, MonthsBetween(a, b), "day of month is ignored")
	assert.Equal(t, -2, MonthsBetween(b, a))
	assert.Equal(t, 0, MonthsBetween(a, a))
	assert.Equal(t, 3, MonthsBetween(
		time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 6, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, night.Add(time.Second)), "midnight starts a new day")
	assert.False(t, SameCalendarDay(morning, morning.AddDate(0, 1, 0)), "same day of a different month")
}
