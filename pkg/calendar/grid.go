package calendar

import (
	"fmt"
	"time"
)

// Membership classifies a grid cell by the month it belongs to.
type Membership int

const (
	// Current marks cells inside the month the grid was built for.
	Current Membership = iota
	// Previous marks leading overflow cells from the prior month.
	Previous
	// Next marks trailing overflow cells from the following month.
	Next
)

// String returns the lowercase name used in serialized month data.
func (m Membership) String() string {
	switch m {
	case Current:
		return "current"
	case Previous:
		return "previous"
	case Next:
		return "next"
	}
	return fmt.Sprintf("Membership(%d)", int(m))
}

// Cell is one day position in a month grid.
type Cell struct {
	Date       Date
	Membership Membership
}

// Key returns the photo key addressing this cell's photo.
func (c Cell) Key() PhotoKey { return KeyForDate(c.Date) }

// Week is one grid row: the ISO week it covers and exactly seven day
// cells, Monday first.
type Week struct {
	ISO  ISOWeek
	Days [7]Cell
}

// CurrentCount returns how many of the week's cells belong to the grid
// month.
func (w Week) CurrentCount() int {
	n := 0
	for _, c := range w.Days {
		if c.Membership == Current {
			n++
		}
	}
	return n
}

// MonthGrid is the complete week decomposition of one calendar month,
// including overflow cells from the neighboring months and the print
// sizing for the resulting row count.
type MonthGrid struct {
	Year   int
	Month  time.Month
	Weeks  []Week
	Layout GridLayout
}

// BuildGrid decomposes a month into Monday-aligned weeks. The first week
// contains the 1st, the last week contains the final day, and cells
// outside the month are marked [Previous] or [Next]. Depending on how
// the month falls the grid has 4, 5, or 6 rows.
func BuildGrid(year int, month time.Month) (*MonthGrid, error) {
	first, err := NewDate(year, month, 1)
	if err != nil {
		return nil, err
	}
	last, err := NewDate(year, month, DaysInMonth(year, month))
	if err != nil {
		return nil, err
	}

	var weeks []Week
	for start := WeekOf(first).Monday(); !start.After(last); start = start.AddDays(7) {
		week := Week{ISO: WeekOf(start)}
		for i := range week.Days {
			d := start.AddDays(i)
			week.Days[i] = Cell{Date: d, Membership: membershipOf(d, year, month)}
		}
		weeks = append(weeks, week)
	}

	return &MonthGrid{
		Year:   year,
		Month:  month,
		Weeks:  weeks,
		Layout: layoutForRows(len(weeks)),
	}, nil
}

// membershipOf classifies d against the grid month by month ordinal, so
// December overflow into January of the next year still counts as Next.
func membershipOf(d Date, year int, month time.Month) Membership {
	dm := d.year*12 + int(d.month)
	gm := year*12 + int(month)
	switch {
	case dm == gm:
		return Current
	case dm < gm:
		return Previous
	default:
		return Next
	}
}

// Rows returns the number of week rows.
func (g *MonthGrid) Rows() int { return len(g.Weeks) }

// Days returns the dates of the month itself in order, without overflow
// cells.
func (g *MonthGrid) Days() []Date {
	days := make([]Date, 0, DaysInMonth(g.Year, g.Month))
	for _, w := range g.Weeks {
		for _, c := range w.Days {
			if c.Membership == Current {
				days = append(days, c.Date)
			}
		}
	}
	return days
}

// PreviousMonth returns the year and month preceding the grid month.
func (g *MonthGrid) PreviousMonth() (int, time.Month) {
	if g.Month == time.January {
		return g.Year - 1, time.December
	}
	return g.Year, g.Month - 1
}

// NextMonth returns the year and month following the grid month.
func (g *MonthGrid) NextMonth() (int, time.Month) {
	if g.Month == time.December {
		return g.Year + 1, time.January
	}
	return g.Year, g.Month + 1
}
