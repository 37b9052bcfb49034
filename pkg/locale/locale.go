// Package locale provides the built-in month and weekday names for the
// calendar's supported languages, plus per-language long date formats.
//
// Three languages are built in: English (en), German (de), and Spanish
// (es). Lookups never fail: an unknown language falls back to English,
// so a page always renders with readable names. Sourcing translations
// from anywhere else is out of scope.
package locale

import (
	"fmt"
	"time"

	"github.com/sarefo/calendar/pkg/calendar"
)

// Language codes of the built-in translations.
const (
	English = "en"
	German  = "de"
	Spanish = "es"
)

// Default is the language used when none is requested.
const Default = English

// Supported returns the built-in language codes, English first.
func Supported() []string {
	return []string{English, German, Spanish}
}

// IsSupported reports whether lang has built-in translations.
func IsSupported(lang string) bool {
	_, ok := months[lang]
	return ok
}

var months = map[string][12]string{
	English: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	German: {"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	Spanish: {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

// Weekday tables are Monday-first to match the grid rows.
var weekdays = map[string][7]string{
	English: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	German:  {"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"},
	Spanish: {"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo"},
}

var weekdaysShort = map[string][7]string{
	English: {"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"},
	German:  {"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"},
	Spanish: {"Lu", "Ma", "Mi", "Ju", "Vi", "Sá", "Do"},
}

// MonthName returns the localized name of month. Unknown languages fall
// back to English; out-of-range months format as "Month N".
func MonthName(lang string, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("Month %d", int(month))
	}
	names, ok := months[lang]
	if !ok {
		names = months[Default]
	}
	return names[month-1]
}

// MonthNames returns the twelve localized month names, January first.
func MonthNames(lang string) []string {
	names := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		names[m-1] = MonthName(lang, m)
	}
	return names
}

// WeekdayName returns the localized name of a weekday.
func WeekdayName(lang string, day time.Weekday) string {
	return weekdayLookup(weekdays, lang, day)
}

// WeekdayShort returns the two letter column header for a weekday.
func WeekdayShort(lang string, day time.Weekday) string {
	return weekdayLookup(weekdaysShort, lang, day)
}

// WeekdayNames returns the seven localized weekday names, Monday first,
// matching the order of grid cells in a week row.
func WeekdayNames(lang string, short bool) []string {
	names := make([]string, 7)
	for i := 0; i < 7; i++ {
		day := time.Weekday((i + 1) % 7) // Monday first
		if short {
			names[i] = WeekdayShort(lang, day)
		} else {
			names[i] = WeekdayName(lang, day)
		}
	}
	return names
}

func weekdayLookup(table map[string][7]string, lang string, day time.Weekday) string {
	names, ok := table[lang]
	if !ok {
		names = table[Default]
	}
	// time.Weekday is Sunday-based; the tables are Monday-first.
	return names[(int(day)+6)%7]
}

// FormatDate renders a date in the language's long form:
// "January 2, 2026" (en), "2. Januar 2026" (de), "2 de enero de 2026" (es).
func FormatDate(lang string, d calendar.Date) string {
	month := MonthName(lang, d.Month())
	switch lang {
	case German:
		return fmt.Sprintf("%d. %s %d", d.Day(), month, d.Year())
	case Spanish:
		return fmt.Sprintf("%d de %s de %d", d.Day(), month, d.Year())
	default:
		return fmt.Sprintf("%s %d, %d", month, d.Day(), d.Year())
	}
}
