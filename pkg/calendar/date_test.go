package calendar

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, year int, month time.Month, day int) Date {
	t.Helper()
	d, err := NewDate(year, month, day)
	if err != nil {
		t.Fatalf("NewDate(%d, %d, %d): %v", year, month, day, err)
	}
	return d
}

func TestNewDate(t *testing.T) {
	tests := []struct {
		year    int
		month   int
		day     int
		wantErr bool
	}{
		{2026, 1, 1, false},
		{2026, 12, 31, false},
		{2026, 2, 28, false},
		{2026, 2, 29, true}, // 2026 is not a leap year
		{2028, 2, 29, false},
		{2026, 4, 31, true},
		{2026, 0, 1, true},
		{2026, 13, 1, true},
		{0, 1, 1, true},
		{2026, 6, 0, true},
	}

	for _, tt := range tests {
		_, err := NewDate(tt.year, time.Month(tt.month), tt.day)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewDate(%d, %d, %d) error = %v, wantErr %v",
				tt.year, tt.month, tt.day, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NewDate(%d, %d, %d) error should wrap ErrInvalidDate: %v",
				tt.year, tt.month, tt.day, err)
		}
	}
}

func TestDateAccessors(t *testing.T) {
	d := mustDate(t, 2026, time.January, 5)

	if d.Year() != 2026 || d.Month() != time.January || d.Day() != 5 {
		t.Errorf("accessors = %d/%v/%d", d.Year(), d.Month(), d.Day())
	}
	if got := d.String(); got != "2026-01-05" {
		t.Errorf("String() = %q", got)
	}
	if got := d.Weekday(); got != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", got)
	}
	if got := d.MonthKey(); got != "202601" {
		t.Errorf("MonthKey() = %q", got)
	}
}

func TestDateZero(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if d := mustDate(t, 2026, time.March, 1); d.IsZero() {
		t.Error("real date should not report IsZero")
	}
}

func TestDateOf(t *testing.T) {
	// Time of day is discarded, only the calendar date survives.
	d := DateOf(time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC))
	if d.String() != "2026-03-15" {
		t.Errorf("DateOf = %s", d)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		start string
		days  int
		want  string
	}{
		{"2026-01-31", 1, "2026-02-01"},
		{"2026-01-01", -1, "2025-12-31"},
		{"2026-02-28", 1, "2026-03-01"},
		{"2028-02-28", 1, "2028-02-29"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-06-15", 0, "2026-06-15"},
	}

	for _, tt := range tests {
		start, err := time.Parse("2006-01-02", tt.start)
		if err != nil {
			t.Fatal(err)
		}
		got := DateOf(start).AddDays(tt.days)
		if got.String() != tt.want {
			t.Errorf("%s + %d days = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestBeforeAfter(t *testing.T) {
	a := mustDate(t, 2026, time.January, 31)
	b := mustDate(t, 2026, time.February, 1)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering wrong across month boundary")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After ordering wrong across month boundary")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date is neither before nor after itself")
	}

	// Year dominates month and day.
	c := mustDate(t, 2025, time.December, 31)
	if !c.Before(a) {
		t.Error("2025-12-31 should be before 2026-01-31")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
		{2026, time.April, 30},
		{2026, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2026, time.January); got != "202601" {
		t.Errorf("MonthKey = %q", got)
	}
	if got := MonthKey(2026, time.December); got != "202612" {
		t.Errorf("MonthKey = %q", got)
	}
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := ParseMonthKey("202602")
	if err != nil {
		t.Fatalf("ParseMonthKey: %v", err)
	}
	if year != 2026 || month != time.February {
		t.Errorf("ParseMonthKey = %d, %v", year, month)
	}

	invalid := []string{"", "2026", "20261", "2026013", "202613", "202600", "2026ab", "-20261"}
	for _, key := range invalid {
		if _, _, err := ParseMonthKey(key); !errors.Is(err, ErrInvalidMonthKey) {
			t.Errorf("ParseMonthKey(%q) should wrap ErrInvalidMonthKey, got %v", key, err)
		}
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		key := MonthKey(2026, m)
		year, month, err := ParseMonthKey(key)
		if err != nil {
			t.Fatalf("round trip %q: %v", key, err)
		}
		if year != 2026 || month != m {
			t.Errorf("round trip %q = %d, %v", key, year, month)
		}
	}
}
