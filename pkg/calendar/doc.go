// Package calendar implements the grid and date engine for photo
// calendar pages.
//
// # Overview
//
// A printed calendar page shows one month as a grid of photo cells, one
// per day. This package decomposes a month into Monday-aligned ISO week
// rows ([BuildGrid]), classifies every cell as belonging to the month or
// overflowing from its neighbors, and computes the millimeter print
// sizing for the resulting row count. A year-independent perpetual
// variant ([BuildPerpetualGrid]) lays out fixed 5-row pages whose
// February always has 29 cells.
//
// # Dates and weeks
//
// [Date] is a validated immutable calendar date; invalid construction is
// an error, never a clamp. [ISOWeek] implements ISO 8601 week numbering:
// weeks start on Monday and week 1 contains January 4. [WeekOf] maps a
// date to its week and [ISOWeek.Monday] maps back to the week's first
// day, so grids can be walked span by span.
//
// # Photo keys
//
// Each day cell addresses its photo by [PhotoKey]: the month key
// ("YYYYMM") plus the 1-based position in that month's photo list.
// Calendar-backed keys come from [KeyForDate]. Perpetual February 29th
// has no real date in non-leap source years; its cell carries an
// override key from [KeyForMonthDay] that addresses the 29th photo of
// the source month directly.
//
// # Concurrency
//
// All types are immutable after construction and safe to share between
// goroutines.
package calendar
