package usecases

import (
	"fmt"
	"time"
)

// formatBRL renders an amount the way notifications show it
func formatBRL(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// calendarDay returns the date of t as seen in loc, expressed as UTC midnight
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// startOfDay returns midnight of t's calendar day in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b in loc; negative when b is earlier
func daysBetween(a, b time.Time, loc *time.Location) int {
	return int(calendarDay(b, loc).Sub(calendarDay(a, loc)).Hours() / 24)
}

func normalizeMonths(months, fallback int) int {
	if months <= 0 {
		months = fallback
	}
	if months <= 0 {
		months = 1
	}
	return months
}
