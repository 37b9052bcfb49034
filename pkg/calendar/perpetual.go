package calendar

import (
	"fmt"
	"time"
)

// perpetualRows is fixed: perpetual pages always render five rows so
// that every month of a year-independent calendar has the same height.
const perpetualRows = 5

// perpetualDays holds the day count per month for a perpetual
// calendar. February always has 29 days so the calendar stays valid in
// leap years.
var perpetualDays = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// PerpetualDays returns the number of day cells a perpetual page shows
// for month. February yields 29. Out-of-range months yield 0.
func PerpetualDays(month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	return perpetualDays[month]
}

// PerpetualCell is one cell on a perpetual page. Day is the day number
// printed in the cell and Key selects the photo from the source year's
// manifest month. Padding cells at the tail of the grid are zero
// valued; IsEmpty reports them.
type PerpetualCell struct {
	Day int
	Key PhotoKey
}

// IsEmpty reports whether the cell is row padding with no day behind it.
func (c PerpetualCell) IsEmpty() bool { return c.Day == 0 }

// PerpetualRow is one printed row of a perpetual page. Every row of a
// grid has the same length; only the last row can contain padding.
type PerpetualRow struct {
	Cells []PerpetualCell
}

// DayCount returns how many of the row's cells carry a real day.
func (r PerpetualRow) DayCount() int {
	n := 0
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// PerpetualGrid is a year-independent month page. It has no weekday
// alignment: cells run left to right in day order, wrapping at the
// layout's column count, with the final row padded to full width.
type PerpetualGrid struct {
	Month      time.Month
	SourceYear int
	Days       int
	Layout     GridLayout
	Rows       []PerpetualRow
}

// Cells returns the day cells in order, without row padding.
func (g *PerpetualGrid) Cells() []PerpetualCell {
	cells := make([]PerpetualCell, 0, g.Days)
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if !c.IsEmpty() {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// BuildPerpetualGrid builds the perpetual page for month, drawing
// photos from sourceYear's manifest. When the perpetual month has more
// days than the source year's real month (February 29th outside a leap
// year), the extra cell gets an override key so it still resolves to a
// manifest entry.
func BuildPerpetualGrid(month time.Month, sourceYear int) (*PerpetualGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("perpetual month %d: %w", month, ErrInvalidDate)
	}
	if sourceYear < 1 {
		return nil, fmt.Errorf("perpetual source year %d: %w", sourceYear, ErrInvalidDate)
	}

	days := PerpetualDays(month)
	realDays := DaysInMonth(sourceYear, month)
	layout := perpetualLayout(days)

	cells := make([]PerpetualCell, layout.Rows*layout.Columns)
	for day := 1; day <= days; day++ {
		var key PhotoKey
		if day <= realDays {
			d, err := NewDate(sourceYear, month, day)
			if err != nil {
				return nil, err
			}
			key = KeyForDate(d)
		} else {
			key = KeyForMonthDay(sourceYear, month, day)
		}
		cells[day-1] = PerpetualCell{Day: day, Key: key}
	}

	rows := make([]PerpetualRow, 0, layout.Rows)
	for i := 0; i < layout.Rows; i++ {
		rows = append(rows, PerpetualRow{Cells: cells[i*layout.Columns : (i+1)*layout.Columns]})
	}

	return &PerpetualGrid{
		Month:      month,
		SourceYear: sourceYear,
		Days:       days,
		Layout:     layout,
		Rows:       rows,
	}, nil
}
