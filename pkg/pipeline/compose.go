package pipeline

import (
	"time"

	"github.com/sarefo/calendar/pkg/calendar"
	apperrors "github.com/sarefo/calendar/pkg/errors"
	"github.com/sarefo/calendar/pkg/geo"
	"github.com/sarefo/calendar/pkg/locale"
	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/observations"
	"github.com/sarefo/calendar/pkg/page"
)

// Compose builds the complete month page from loaded inputs. It is a
// pure function: the same options and inputs always produce the same
// page, which is what makes page-level caching sound.
//
// A missing photo for any day of the build month surfaces as a
// *manifest.MissingPhotosError listing every uncovered day at once.
// Overflow cells from neighboring months compose without a photo when
// their month is not in the manifest.
func Compose(opts Options, in *Inputs) (*page.Month, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	loc, err := composeLocation(opts, in)
	if err != nil {
		return nil, err
	}

	if opts.Perpetual {
		return composePerpetual(opts, in, loc)
	}
	return composeMonthly(opts, in, loc)
}

func composeMonthly(opts Options, in *Inputs, loc page.Location) (*page.Month, error) {
	month := time.Month(opts.Month)
	grid, err := calendar.BuildGrid(opts.Year, month)
	if err != nil {
		return nil, err
	}
	assigned, err := in.Manifest.AssignGrid(grid)
	if err != nil {
		return nil, err
	}

	p := &page.Month{
		Year:       opts.Year,
		Month:      opts.Month,
		MonthKey:   calendar.MonthKey(opts.Year, month),
		MonthName:  locale.MonthName(opts.Language, month),
		Language:   opts.Language,
		Location:   loc,
		Layout:     layoutBlock(grid.Layout),
		Weekdays:   locale.WeekdayNames(opts.Language, true),
		WebsiteURL: opts.WebsiteURL,
	}

	for _, week := range grid.Weeks {
		row := page.Week{ISOYear: week.ISO.Year, ISOWeek: week.ISO.Week}
		for _, cell := range week.Days {
			row.Days = append(row.Days, composeCell(cell, assigned, in.Observations))
		}
		p.Weeks = append(p.Weeks, row)
	}

	py, pm := grid.PreviousMonth()
	ny, nm := grid.NextMonth()
	p.PreviousMonth = monthRef(opts.Language, py, pm)
	p.NextMonth = monthRef(opts.Language, ny, nm)

	return p, nil
}

func composePerpetual(opts Options, in *Inputs, loc page.Location) (*page.Month, error) {
	month := time.Month(opts.Month)
	grid, err := calendar.BuildPerpetualGrid(month, opts.SourceYear)
	if err != nil {
		return nil, err
	}
	assigned, err := in.Manifest.AssignPerpetual(grid)
	if err != nil {
		return nil, err
	}

	p := &page.Month{
		Month:      opts.Month,
		MonthKey:   calendar.MonthKey(opts.SourceYear, month),
		MonthName:  locale.MonthName(opts.Language, month),
		Language:   opts.Language,
		Perpetual:  true,
		SourceYear: opts.SourceYear,
		Location:   loc,
		Layout:     layoutBlock(grid.Layout),
		WebsiteURL: opts.WebsiteURL,
	}

	for _, cell := range grid.Cells() {
		c := page.Cell{Day: cell.Day}
		if !cell.Key.Override {
			c.Date = cell.Key.Date.String()
		}
		if entry, ok := assigned[cell.Key]; ok {
			applyEntry(&c, entry)
		}
		p.Cells = append(p.Cells, c)
	}

	return p, nil
}

// composeLocation resolves the month's location and projects it onto
// the world map canvas. No descriptor at all is a hard error: a page
// without a place cannot be printed.
func composeLocation(opts Options, in *Inputs) (page.Location, error) {
	if in.Location == nil {
		return page.Location{}, apperrors.New(apperrors.ErrCodeMissingLocation,
			"month %s: no location source (photo folder README or locations index)", opts.MonthKey())
	}

	name, err := in.Location.Name(opts.Language)
	if err != nil {
		return page.Location{}, apperrors.Wrap(apperrors.ErrCodeMissingLocation, err, "month %s", opts.MonthKey())
	}
	coordText, err := in.Location.CoordinateString()
	if err != nil {
		return page.Location{}, apperrors.Wrap(apperrors.ErrCodeMissingLocation, err, "month %s", opts.MonthKey())
	}
	coord, err := geo.ParseCoordinate(coordText)
	if err != nil {
		return page.Location{}, apperrors.Wrap(apperrors.ErrCodeInvalidCoordinate, err, "month %s", opts.MonthKey())
	}

	pt := geo.DefaultProjection().Project(coord)
	return page.Location{
		Name:        name,
		Coordinates: coordText,
		MapX:        pt.X,
		MapY:        pt.Y,
	}, nil
}

func composeCell(cell calendar.Cell, assigned map[calendar.PhotoKey]manifest.Entry, store *observations.Store) page.Cell {
	c := page.Cell{
		Date:       cell.Date.String(),
		Day:        cell.Date.Day(),
		Membership: cell.Membership.String(),
	}
	if entry, ok := assigned[cell.Key()]; ok {
		applyEntry(&c, entry)
	}
	// Manual fixes in the observation store win over the manifest row.
	if store != nil {
		if id, ok := store.Lookup(cell.Date); ok {
			c.ObservationID = id
			c.ObservationURL = observations.URL(id)
		}
	}
	return c
}

func applyEntry(c *page.Cell, entry manifest.Entry) {
	if entry.IsPlaceholder() {
		return
	}
	c.Photo = entry.Filename
	if entry.HasObservation() {
		c.ObservationID = entry.ObservationID
		c.ObservationURL = observations.URL(entry.ObservationID)
	}
}

func layoutBlock(l calendar.GridLayout) page.Layout {
	return page.Layout{
		Kind:       l.Kind,
		Rows:       l.Rows,
		Columns:    l.Columns,
		RowHeight:  l.RowHeight,
		CellWidth:  l.CellWidth,
		CellHeight: l.CellHeight,
	}
}

func monthRef(lang string, year int, month time.Month) *page.MonthRef {
	return &page.MonthRef{
		Year:      year,
		Month:     int(month),
		MonthKey:  calendar.MonthKey(year, month),
		MonthName: locale.MonthName(lang, month),
	}
}
