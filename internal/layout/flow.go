package layout

import (
	"strings"

	"pdfcal/internal/config"
)

// Measurer reports the rendered width of text, in inches, at a font.
type Measurer interface {
	StringWidth(f Font, text string) float64
}

// CellMargins is the padding inside a day cell, in inches.
type CellMargins struct {
	Left, Right, Top, Bottom float64
}

// MarginsFromSettings picks the margin-cell-* values.
func MarginsFromSettings(s config.Settings) CellMargins {
	return CellMargins{
		Left:   s.MarginCellLeft,
		Right:  s.MarginCellRight,
		Top:    s.MarginCellTop,
		Bottom: s.MarginCellBottom,
	}
}

// DateMark is the day number printed in the top left of a cell.
type DateMark struct {
	Text  string
	Font  Font
	Color config.Color
}

// Event is one event text with its resolved style.
type Event struct {
	Text  string
	Style EventStyle
}

// TextOp is a single line of text to draw. Y is the top of the line box.
type TextOp struct {
	Font  Font
	Color config.Color
	X, Y  float64
	Text  string
}

// Baseline is the y coordinate handed to a backend that draws text on its
// baseline: the middle of the line box.
func (op TextOp) Baseline() float64 {
	return op.Y + op.Font.LineHeight()/2
}

// LayoutDate places the day number of a cell.
func LayoutDate(cell Cell, m CellMargins, date DateMark) TextOp {
	return TextOp{
		Font:  date.Font,
		Color: date.Color,
		X:     cell.X + m.Left,
		Y:     cell.Y + m.Top,
		Text:  date.Text,
	}
}

// LayoutEvents places the events of one cell. Events are partitioned by
// category into three independent flows:
//   - normal events stack downward starting one date-number line below the
//     top margin,
//   - header events stack downward from the top margin in the column to the
//     right of the date number,
//   - footer events stack upward from the bottom margin, so earlier entries
//     end up closer to the bottom edge.
//
// Within each flow the input order is kept.
func LayoutEvents(cell Cell, m CellMargins, date DateMark, events []Event, measure Measurer) []TextOp {
	if len(events) == 0 {
		return nil
	}

	var normal, header, footer []Event
	for _, ev := range events {
		switch ev.Style.Category {
		case CategoryHeader:
			header = append(header, ev)
		case CategoryFooter:
			footer = append(footer, ev)
		default:
			normal = append(normal, ev)
		}
	}

	body := column{left: cell.X + m.Left, width: cell.Width - m.Left - m.Right}

	var ops []TextOp

	if len(normal) > 0 {
		y := cursor(cell.Y + m.Top + date.Font.LineHeight())
		for _, ev := range normal {
			var placed []TextOp
			placed, y = placeDown(y, body, ev, measure)
			ops = append(ops, placed...)
		}
	}

	if len(header) > 0 {
		dateWidth := measure.StringWidth(date.Font, date.Text)
		side := column{left: body.left + dateWidth, width: body.width - dateWidth}
		if side.width < 0 {
			side.width = 0
		}
		y := cursor(cell.Y + m.Top)
		for _, ev := range header {
			var placed []TextOp
			placed, y = placeDown(y, side, ev, measure)
			ops = append(ops, placed...)
		}
	}

	if len(footer) > 0 {
		y := cursor(cell.Y + cell.Height - m.Bottom)
		for _, ev := range footer {
			var placed []TextOp
			placed, y = placeUp(y, body, ev, measure)
			ops = append(ops, placed...)
		}
	}

	return ops
}

// cursor is the running vertical position of one flow. It is passed and
// returned by value so a flow never leaks state into another cell.
type cursor float64

func (c cursor) advance(d float64) cursor {
	return c + cursor(d)
}

// column is the horizontal span text is aligned in.
type column struct {
	left, width float64
}

func placeDown(y cursor, col column, ev Event, measure Measurer) ([]TextOp, cursor) {
	st := ev.Style
	lines := splitLines(ev.Text)
	lh := st.Font.LineHeight()

	y = y.advance(st.PtsBefore / PointsPerInch)
	ops := emitLines(lines, float64(y), col, st, measure)
	y = y.advance(float64(len(lines)) * lh)
	if len(lines) > 0 && !st.IncrementLine {
		y = y.advance(-lh)
	}
	y = y.advance(st.PtsAfter / PointsPerInch)
	return ops, y
}

func placeUp(y cursor, col column, ev Event, measure Measurer) ([]TextOp, cursor) {
	st := ev.Style
	lines := splitLines(ev.Text)
	lh := st.Font.LineHeight()

	y = y.advance(-st.PtsAfter / PointsPerInch)
	y = y.advance(-float64(len(lines)) * lh)
	ops := emitLines(lines, float64(y), col, st, measure)
	if len(lines) > 0 && !st.IncrementLine {
		y = y.advance(lh)
	}
	y = y.advance(-st.PtsBefore / PointsPerInch)
	return ops, y
}

// emitLines lays out lines top-down starting at top, one line height apart.
func emitLines(lines []string, top float64, col column, st EventStyle, measure Measurer) []TextOp {
	lh := st.Font.LineHeight()
	dx := st.AdjustXPts / PointsPerInch
	dy := st.AdjustYPts / PointsPerInch

	ops := make([]TextOp, 0, len(lines))
	for i, line := range lines {
		ops = append(ops, TextOp{
			Font:  st.Font,
			Color: st.Color,
			X:     alignX(col, st, line, measure) + dx,
			Y:     top + float64(i)*lh + dy,
			Text:  line,
		})
	}
	return ops
}

func alignX(col column, st EventStyle, line string, measure Measurer) float64 {
	switch st.HAlign {
	case AlignCenter:
		return col.left + (col.width-measure.StringWidth(st.Font, line))/2
	case AlignRight:
		return col.left + col.width - measure.StringWidth(st.Font, line)
	default:
		return col.left
	}
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
