// Package layout turns calendar settings and events into page coordinates.
// All lengths are inches with the origin at the top left of the page and y
// growing downward; font sizes and spacings are points (1/72 inch).
package layout

import (
	"fmt"
	"time"

	"pdfcal/internal/config"
)

// Page size of a landscape US letter sheet, in inches.
const (
	PageWidth  = 11.0
	PageHeight = 8.5
)

// PointsPerInch converts font sizes and spacings to inches.
const PointsPerInch = 72.0

// MonthRange returns the column (1..7) of the first day of the month and the
// number of days in it. Column 1 is weekStart. The calendar is the proleptic
// Gregorian one used by package time.
func MonthRange(year int, month time.Month, weekStart time.Weekday) (firstColumn, numDays int) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	numDays = time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	firstColumn = (int(first.Weekday())-int(weekStart)+7)%7 + 1
	return firstColumn, numDays
}

// NumWeeks is the number of grid rows needed for a month whose first day is in
// firstColumn and which has numDays days.
func NumWeeks(firstColumn, numDays int) int {
	spill := numDays - 7 + firstColumn - 1
	if spill <= 0 {
		return 1
	}
	return 1 + (spill+6)/7
}

// Cell is a rectangle on the page; (X, Y) is its top left corner.
type Cell struct {
	X, Y          float64
	Width, Height float64
}

// MonthGeometry is the derived page layout for one month.
//
//	+------------------------ page width ------------------------+
//	|                          <TITLE>                           margin top
//	|  +-------------------- usable width --------------------+  |
//	|  |  <HEADER1>  <HEADER2> ................... <HEADER7>  |  header height
//	|  +------------------------------------------------------+  |
//	|  |                                                      |  |
//	|  |  usable height        <DATE AREA>                    |  page height
//	|  |                                                      |  |
//	|  +------------------------------------------------------+  |
//	|                                                            margin bottom
//	+------------------------------------------------------------+
type MonthGeometry struct {
	Year  int
	Month time.Month

	WeekStart   time.Weekday
	FirstColumn int
	NumDays     int
	NumWeeks    int

	Title  Cell
	Header Cell

	// DateArea is the block that holds the grid of day cells.
	DateArea Cell

	UsableWidth  float64
	UsableHeight float64

	DayWidth  float64
	DayHeight float64
	DayHSep   float64
	DayVSep   float64
}

// ComputeMonthGeometry lays out the page for year/month. month must be in
// 1..12.
func ComputeMonthGeometry(year int, month time.Month, s config.Settings, pageWidth, pageHeight float64) MonthGeometry {
	g := MonthGeometry{
		Year:    year,
		Month:   month,
		DayHSep: s.DayHSep,
		DayVSep: s.DayVSep,
	}
	if s.MondayFirst() {
		g.WeekStart = time.Monday
	}

	g.UsableWidth = pageWidth - s.MarginLeft - s.MarginRight

	top := s.MarginTop
	g.Title = Cell{X: s.MarginLeft, Y: top, Width: g.UsableWidth, Height: s.TitleHeight}
	top += s.TitleHeight
	g.Header = Cell{X: s.MarginLeft, Y: top, Width: g.UsableWidth, Height: s.HeaderHeight}
	top += s.HeaderHeight

	g.FirstColumn, g.NumDays = MonthRange(year, month, g.WeekStart)
	g.NumWeeks = NumWeeks(g.FirstColumn, g.NumDays)

	g.UsableHeight = pageHeight - top - s.MarginBottom
	g.DateArea = Cell{X: s.MarginLeft, Y: top, Width: g.UsableWidth, Height: g.UsableHeight}

	g.DayWidth = (g.UsableWidth - 6*s.DayHSep) / 7
	g.DayHeight = (g.UsableHeight - float64(g.NumWeeks-1)*s.DayVSep) / float64(g.NumWeeks)

	return g
}

// CellAt returns the cell in column weekday and row weeknum, both 1-based.
func (g MonthGeometry) CellAt(weekday, weeknum int) Cell {
	return Cell{
		X:      g.DateArea.X + float64(weekday-1)*(g.DayWidth+g.DayHSep),
		Y:      g.DateArea.Y + float64(weeknum-1)*(g.DayHeight+g.DayVSep),
		Width:  g.DayWidth,
		Height: g.DayHeight,
	}
}

// Position returns the 1-based column and row of a day of the month.
func (g MonthGeometry) Position(day int) (weekday, weeknum int) {
	idx := g.FirstColumn - 1 + day - 1
	return idx%7 + 1, idx/7 + 1
}

// DayCell returns the cell for a day of the month.
func (g MonthGeometry) DayCell(day int) Cell {
	return g.CellAt(g.Position(day))
}

// HeaderCell returns the day-of-week header box for column 1..7.
func (g MonthGeometry) HeaderCell(column int) Cell {
	w := g.Header.Width / 7
	return Cell{
		X:      g.Header.X + float64(column-1)*w,
		Y:      g.Header.Y,
		Width:  w,
		Height: g.Header.Height,
	}
}

// TitleText is "<Month> <Year>", e.g. "February 2020".
func (g MonthGeometry) TitleText() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// WeekdayNames returns the seven header labels starting at the week start.
func (g MonthGeometry) WeekdayNames() [7]string {
	var names [7]string
	for i := range names {
		names[i] = time.Weekday((int(g.WeekStart) + i) % 7).String()
	}
	return names
}
