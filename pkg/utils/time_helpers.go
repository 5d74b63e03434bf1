package utils

import (
	"math"
	"time"
)

// DaysBetween returns the distance between two instants in whole days,
// rounded up. Symmetric in argument order.
func DaysBetween(a, b time.Time) int {
	diff := math.Abs(float64(b.UnixMilli() - a.UnixMilli()))
	return int(math.Ceil(diff / float64(24*time.Hour/time.Millisecond)))
}

// HoursBetween returns the distance between two instants in hours,
// fractional part retained. Symmetric in argument order.
func HoursBetween(a, b time.Time) float64 {
	diff := math.Abs(float64(b.UnixMilli() - a.UnixMilli()))
	return diff / float64(time.Hour/time.Millisecond)
}

// MonthsBetween returns the calendar-month delta between a and b,
// ignoring day-of-month. Negative when b precedes a.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// SameCalendarDay reports whether two instants fall on the same
// year/month/day.
func SameCalendarDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
