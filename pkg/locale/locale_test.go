package locale

import (
	"testing"
	"time"

	"github.com/sarefo/calendar/pkg/calendar"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		lang  string
		month time.Month
		want  string
	}{
		{English, time.January, "January"},
		{German, time.March, "März"},
		{Spanish, time.January, "enero"},
		{Spanish, time.December, "diciembre"},
		// Unknown language falls back to English.
		{"fr", time.May, "May"},
		{"", time.May, "May"},
	}

	for _, tt := range tests {
		if got := MonthName(tt.lang, tt.month); got != tt.want {
			t.Errorf("MonthName(%q, %v) = %q, want %q", tt.lang, tt.month, got, tt.want)
		}
	}
}

func TestMonthNameOutOfRange(t *testing.T) {
	if got := MonthName(English, 13); got != "Month 13" {
		t.Errorf("MonthName(en, 13) = %q", got)
	}
}

func TestWeekdayNamesMondayFirst(t *testing.T) {
	names := WeekdayNames(German, false)
	if len(names) != 7 {
		t.Fatalf("got %d names", len(names))
	}
	if names[0] != "Montag" || names[6] != "Sonntag" {
		t.Errorf("WeekdayNames(de) = %v, want Montag..Sonntag", names)
	}

	short := WeekdayNames(Spanish, true)
	if short[0] != "Lu" || short[5] != "Sá" {
		t.Errorf("WeekdayNames(es, short) = %v", short)
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(English, time.Sunday); got != "Sunday" {
		t.Errorf("WeekdayName(en, Sunday) = %q", got)
	}
	if got := WeekdayName(German, time.Monday); got != "Montag" {
		t.Errorf("WeekdayName(de, Monday) = %q", got)
	}
	if got := WeekdayShort("xx", time.Friday); got != "Fr" {
		t.Errorf("WeekdayShort(xx, Friday) = %q, want English fallback", got)
	}
}

func TestFormatDate(t *testing.T) {
	d, err := calendar.NewDate(2026, time.January, 2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lang string
		want string
	}{
		{English, "January 2, 2026"},
		{German, "2. Januar 2026"},
		{Spanish, "2 de enero de 2026"},
		{"pt", "January 2, 2026"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.lang, d); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range Supported() {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false", lang)
		}
	}
	if IsSupported("fr") {
		t.Error("IsSupported(fr) = true")
	}
}
