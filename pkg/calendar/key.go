package calendar

import (
	"fmt"
	"time"
)

// PhotoKey addresses one photo in the manifest: a month key plus the
// 1-based position in that month's photo list. Keys backed by a real
// calendar date carry the date and use the day of month as ordinal.
// Override keys address photos in months that have no such date — the
// perpetual February 29th of a non-leap source year — and carry a zero
// Date with Override set.
type PhotoKey struct {
	MonthKey string
	Ordinal  int
	Date     Date
	Override bool
}

// KeyForDate returns the calendar-backed photo key for a date.
func KeyForDate(d Date) PhotoKey {
	return PhotoKey{MonthKey: d.MonthKey(), Ordinal: d.day, Date: d}
}

// KeyForMonthDay returns an override key addressing the day-th photo of
// a month directly, without a backing calendar date.
func KeyForMonthDay(year int, month time.Month, day int) PhotoKey {
	return PhotoKey{MonthKey: MonthKey(year, month), Ordinal: day, Override: true}
}

// String formats the key as "202602:14" for error reporting.
func (k PhotoKey) String() string {
	return fmt.Sprintf("%s:%02d", k.MonthKey, k.Ordinal)
}
