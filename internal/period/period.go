// Package period provides calendar-month helpers shared by the dashboard
// calculator and the automatic alert generator.
package period

import "time"

// MonthStart returns midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthWindow returns the half-open interval covering t's calendar month:
// [first-of-month 00:00:00, first-of-next-month 00:00:00).
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t)
	return start, start.AddDate(0, 1, 0)
}
