package calendar

import (
	"fmt"
	"time"
)

// ISOWeek identifies a week in the ISO 8601 week calendar. Weeks start
// on Monday and week 1 is the week containing January 4 (equivalently,
// the first Thursday of the year). The ISO year at the edges of a
// calendar year can differ from the calendar year: 2025-12-29 already
// belongs to 2026-W01.
type ISOWeek struct {
	Year int
	Week int
}

// WeekOf returns the ISO week containing d.
func WeekOf(d Date) ISOWeek {
	y, w := d.Time().ISOWeek()
	return ISOWeek{Year: y, Week: w}
}

// Monday returns the first day of the week. The inverse mapping anchors
// on January 4, which is always inside week 1 of its ISO year.
func (w ISOWeek) Monday() Date {
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1 := jan4.AddDate(0, 0, -sinceMonday)
	return DateOf(week1.AddDate(0, 0, (w.Week-1)*7))
}

// String formats the week as "2026-W01".
func (w ISOWeek) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}
