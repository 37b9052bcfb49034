package calendar

import (
	"fmt"
	"math"
)

// Print sizing for the A3 landscape page. The photo grid sits under an
// 8mm weekday header inside a 245mm block; the 388mm row width is what
// remains of the 420mm page after side padding and border spacing.
const (
	// TotalHeightMM is the full height reserved for the grid block.
	TotalHeightMM = 245.0
	// HeaderHeightMM is the weekday header row above the photo rows.
	HeaderHeightMM = 8.0
	// UsableHeightMM is shared evenly by the photo rows.
	UsableHeightMM = TotalHeightMM - HeaderHeightMM
	// CellMarginMM separates a photo cell from its row boundary.
	CellMarginMM = 3.0
	// RowWidthMM is the printable grid width.
	RowWidthMM = 388.0
	// GridColumns is the number of day columns in a monthly grid.
	GridColumns = 7
)

// GridLayout carries the print sizing computed for a grid: row and
// column counts plus the millimeter dimensions of rows and photo cells.
type GridLayout struct {
	Kind       string // "4-row", "5-row", "6-row" or "perpetual"
	Rows       int
	Columns    int
	RowHeight  float64 // mm
	CellWidth  float64 // mm
	CellHeight float64 // mm
}

// layoutForRows sizes a monthly grid. The usable height divides evenly
// across rows, so 4-row months get taller photos than 6-row months.
func layoutForRows(rows int) GridLayout {
	rowHeight := UsableHeightMM / float64(rows)
	return GridLayout{
		Kind:       fmt.Sprintf("%d-row", rows),
		Rows:       rows,
		Columns:    GridColumns,
		RowHeight:  rowHeight,
		CellWidth:  math.Round(RowWidthMM / GridColumns),
		CellHeight: rowHeight - CellMarginMM,
	}
}

// perpetualLayout sizes a perpetual grid. Perpetual pages use fixed
// presets instead of the divided budget: 31-day months spread across 7
// columns, shorter months across 6, always 5 rows.
func perpetualLayout(days int) GridLayout {
	columns, cellWidth := 6, 65.0
	if days == 31 {
		columns, cellWidth = 7, 56.0
	}
	return GridLayout{
		Kind:       "perpetual",
		Rows:       perpetualRows,
		Columns:    columns,
		RowHeight:  49.8,
		CellWidth:  cellWidth,
		CellHeight: 47.3,
	}
}
