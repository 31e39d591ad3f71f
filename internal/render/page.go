package render

import (
	"strconv"
	"time"

	"pdfcal/internal/config"
	"pdfcal/internal/layout"
	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

// Renderer draws month pages onto a Canvas.
type Renderer struct {
	canvas   Canvas
	settings config.Settings

	pageWidth  float64
	pageHeight float64

	// Last font and colour sent to the canvas.
	font     layout.Font
	hasFont  bool
	color    config.Color
	hasColor bool
}

// NewRenderer returns a Renderer for letter landscape pages.
func NewRenderer(c Canvas, s config.Settings) *Renderer {
	return &Renderer{
		canvas:     c,
		settings:   s,
		pageWidth:  layout.PageWidth,
		pageHeight: layout.PageHeight,
	}
}

// RenderMonth adds one page for year/month. days may be nil.
func (r *Renderer) RenderMonth(year int, month time.Month, days model.MonthEvents) error {
	s := r.settings
	g := layout.ComputeMonthGeometry(year, month, s, r.pageWidth, r.pageHeight)

	appLog.Debug("render month", "year", year, "month", int(month), "weeks", g.NumWeeks, "event_days", len(days))

	r.canvas.AddPage()
	// A new page resets backend state.
	r.hasFont, r.hasColor = false, false

	// Title
	titleFont := layout.Font{Family: s.TitleFontFamily, Style: s.TitleFontStyle, Size: s.TitleSize}
	r.centered(g.Title, titleFont, s.TitleColor, g.TitleText())

	// Day of week header
	headerFont := layout.Font{Family: s.HeaderFontFamily, Style: s.HeaderFontStyle, Size: s.HeaderSize}
	for i, name := range g.WeekdayNames() {
		r.centered(g.HeaderCell(i+1), headerFont, s.HeaderColor, name)
	}

	// Date cells
	margins := layout.MarginsFromSettings(s)
	dateFont := layout.Font{Family: s.DateFontFamily, Style: s.DateFontStyle, Size: s.DateSize}

	for day := 1; day <= g.NumDays; day++ {
		cell := g.DayCell(day)

		r.canvas.Line(cell.X, cell.Y, cell.X+cell.Width, cell.Y)
		r.canvas.Line(cell.X, cell.Y, cell.X, cell.Y+cell.Height)

		mark := layout.DateMark{Text: strconv.Itoa(day), Font: dateFont, Color: s.DateColor}
		r.draw(layout.LayoutDate(cell, margins, mark))

		entries := days[day]
		if len(entries) == 0 {
			continue
		}
		events := make([]layout.Event, 0, len(entries))
		for _, e := range entries {
			events = append(events, layout.Event{
				Text:  e.Text,
				Style: layout.ResolveEventStyle(e.Style, s),
			})
		}
		for _, op := range layout.LayoutEvents(cell, margins, mark, events, r) {
			r.draw(op)
		}
	}

	return r.canvas.Err()
}

// StringWidth implements layout.Measurer on top of the canvas.
func (r *Renderer) StringWidth(f layout.Font, text string) float64 {
	r.setFont(f)
	return r.canvas.StringWidth(text)
}

func (r *Renderer) draw(op layout.TextOp) {
	r.setFont(op.Font)
	r.setColor(op.Color)
	r.canvas.Text(op.X, op.Baseline(), op.Text)
}

// centered draws text in the middle of box, the way a centred table cell
// would: horizontally centred, baseline just below the vertical middle.
func (r *Renderer) centered(box layout.Cell, f layout.Font, c config.Color, text string) {
	r.setFont(f)
	r.setColor(c)
	w := r.canvas.StringWidth(text)
	x := box.X + (box.Width-w)/2
	y := box.Y + box.Height/2 + 0.3*f.LineHeight()
	r.canvas.Text(x, y, text)
}

func (r *Renderer) setFont(f layout.Font) {
	if r.hasFont && r.font == f {
		return
	}
	r.canvas.SetFont(f)
	r.font, r.hasFont = f, true
}

func (r *Renderer) setColor(c config.Color) {
	if r.hasColor && r.color == c {
		return
	}
	r.canvas.SetTextColor(c)
	r.color, r.hasColor = c, true
}
