package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrInvalidDate is returned by [NewDate] and the grid builders when
	// year, month, and day do not form a real calendar date. Components
	// are never clamped into range.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidMonthKey is returned by [ParseMonthKey] for keys that are
	// not six digits or that name a month outside January..December.
	ErrInvalidMonthKey = errors.New("invalid month key")
)

// Date is a validated immutable calendar date. The zero value is the
// "no date" marker carried by override photo keys; construct real dates
// with [NewDate].
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date after checking that the components form a real
// calendar date in year 1 or later.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 {
		return Date{}, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, int(month))
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.year }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month, 1-based.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero "no date" value.
func (d Date) IsZero() bool { return d == Date{} }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// AddDays returns the date n days after d. Negative n walks backwards.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return o.Before(d) }

// MonthKey returns the manifest key of the date's month ("202601").
func (d Date) MonthKey() string { return MonthKey(d.year, d.month) }

// String returns the ISO form "2026-01-05".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// DaysInMonth returns the length of a month, accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthKey formats year and month as the six digit key "YYYYMM" used by
// photo manifests and month data files.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d%02d", year, int(month))
}

// ParseMonthKey splits a six digit "YYYYMM" key into year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	if len(key) != 6 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
		}
	}
	year, _ := strconv.Atoi(key[:4])
	m, _ := strconv.Atoi(key[4:])
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	return year, time.Month(m), nil
}
