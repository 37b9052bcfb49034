package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarefo/calendar/pkg/calendar"
)

// MissingPhotosError lists every required day of a month that has no
// manifest entry. A page build collects all misses before failing, so
// one run reports the complete gap list instead of the first hole.
type MissingPhotosError struct {
	MonthKey string
	Days     []int // ascending day numbers without an entry
}

// Error formats the missing days in one line.
func (e *MissingPhotosError) Error() string {
	days := make([]string, len(e.Days))
	for i, d := range e.Days {
		days[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("month %s is missing %d photos (days %s)",
		e.MonthKey, len(e.Days), strings.Join(days, ", "))
}

// AssignGrid resolves the photo for every cell of a month grid.
//
// Every day of the grid month itself must resolve; misses are collected
// and returned together as a *MissingPhotosError. Overflow cells from
// the neighboring months resolve best effort: when their month is not
// in the manifest they are simply absent from the result, since those
// cells render without a photo.
func (m *Manifest) AssignGrid(g *calendar.MonthGrid) (map[calendar.PhotoKey]Entry, error) {
	assigned := make(map[calendar.PhotoKey]Entry)
	var missing []int

	for _, week := range g.Weeks {
		for _, cell := range week.Days {
			key := cell.Key()
			if entry, ok := m.Lookup(key); ok {
				assigned[key] = entry
				continue
			}
			if cell.Membership == calendar.Current {
				missing = append(missing, cell.Date.Day())
			}
		}
	}

	if len(missing) > 0 {
		return nil, &MissingPhotosError{
			MonthKey: calendar.MonthKey(g.Year, g.Month),
			Days:     missing,
		}
	}
	return assigned, nil
}

// AssignPerpetual resolves the photo for every day cell of a perpetual
// grid. Perpetual grids have no overflow cells, so every day must
// resolve, including the override day past the source month's real
// length.
func (m *Manifest) AssignPerpetual(g *calendar.PerpetualGrid) (map[calendar.PhotoKey]Entry, error) {
	assigned := make(map[calendar.PhotoKey]Entry)
	var missing []int

	for _, cell := range g.Cells() {
		if entry, ok := m.Lookup(cell.Key); ok {
			assigned[cell.Key] = entry
		} else {
			missing = append(missing, cell.Day)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingPhotosError{
			MonthKey: calendar.MonthKey(g.SourceYear, g.Month),
			Days:     missing,
		}
	}
	return assigned, nil
}

// ValidateMonth checks that a month covers day ordinals 1..days,
// returning a *MissingPhotosError naming each uncovered day.
func (m *Manifest) ValidateMonth(monthKey string, days int) error {
	count := m.Count(monthKey)
	if count >= days {
		return nil
	}

	e := &MissingPhotosError{MonthKey: monthKey}
	for day := count + 1; day <= days; day++ {
		e.Days = append(e.Days, day)
	}
	return e
}
