package layout

import (
	"strings"

	"pdfcal/internal/config"
	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

// Category selects an event's defaults and the flow it is placed in.
type Category int

const (
	CategoryNormal Category = iota
	CategoryHeader
	CategoryFooter
)

func (c Category) String() string {
	switch c {
	case CategoryHeader:
		return "header"
	case CategoryFooter:
		return "footer"
	default:
		return "normal"
	}
}

// ParseCategory maps a "special" value to a Category. Anything other than
// header or footer is normal; ok is false for unrecognised non-empty values.
func ParseCategory(s string) (c Category, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header":
		return CategoryHeader, true
	case "footer":
		return CategoryFooter, true
	case "", "normal":
		return CategoryNormal, true
	default:
		return CategoryNormal, false
	}
}

// HAlign is the horizontal alignment of an event's lines.
type HAlign byte

const (
	AlignLeft   HAlign = 'L'
	AlignCenter HAlign = 'C'
	AlignRight  HAlign = 'R'
)

func parseHAlign(s string) (HAlign, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return AlignLeft, true
	case "C":
		return AlignCenter, true
	case "R":
		return AlignRight, true
	}
	return 0, false
}

// Font identifies a backend font; Size is in points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// LineHeight is one line of this font in inches.
func (f Font) LineHeight() float64 {
	return f.Size / PointsPerInch
}

// EventStyle is the fully resolved style of one event.
type EventStyle struct {
	Category Category
	Font     Font
	Color    config.Color
	HAlign   HAlign

	PtsBefore  float64
	PtsAfter   float64
	AdjustXPts float64
	AdjustYPts float64

	// IncrementLine false makes the event give back its last line, so that
	// following events overlap it.
	IncrementLine bool
}

// CategoryDefaults returns the style an event of category c gets before its
// own overrides are applied.
func CategoryDefaults(c Category, s config.Settings) EventStyle {
	switch c {
	case CategoryHeader, CategoryFooter:
		st := EventStyle{
			Category:      c,
			Font:          Font{Family: s.SpecialEventFontFamily, Style: s.SpecialEventFontStyle, Size: s.SpecialEventFontSize},
			Color:         s.SpecialEventColor,
			HAlign:        AlignLeft,
			PtsBefore:     s.SpecialEventPtsBefore,
			PtsAfter:      s.SpecialEventPtsAfter,
			IncrementLine: true,
		}
		if c == CategoryHeader {
			// Nudge up to sit level with the date number.
			st.HAlign = AlignCenter
			st.AdjustYPts = -PointsPerInch * s.MarginCellTop / 2
		}
		return st
	default:
		return EventStyle{
			Category:      CategoryNormal,
			Font:          Font{Family: s.EventFontFamily, Style: s.EventFontStyle, Size: s.EventFontSize},
			Color:         s.EventColor,
			HAlign:        AlignLeft,
			PtsBefore:     s.EventPtsBefore,
			PtsAfter:      s.EventPtsAfter,
			IncrementLine: true,
		}
	}
}

// ResolveEventStyle merges o over the defaults of the category named by
// o.Special.
func ResolveEventStyle(o model.StyleOverride, s config.Settings) EventStyle {
	c := CategoryNormal
	if o.Special != nil {
		var ok bool
		c, ok = ParseCategory(*o.Special)
		if !ok {
			appLog.Debug("unknown event category; using normal", "special", *o.Special)
		}
	}

	st := CategoryDefaults(c, s)

	if o.FontSize != nil {
		st.Font.Size = *o.FontSize
	}
	if o.FontFamily != nil {
		st.Font.Family = *o.FontFamily
	}
	if o.FontStyle != nil {
		st.Font.Style = *o.FontStyle
	}
	if o.Color != nil {
		st.Color = *o.Color
	}
	if o.PtsBefore != nil {
		st.PtsBefore = *o.PtsBefore
	}
	if o.PtsAfter != nil {
		st.PtsAfter = *o.PtsAfter
	}
	if o.HAlign != nil {
		if a, ok := parseHAlign(*o.HAlign); ok {
			st.HAlign = a
		} else {
			appLog.Debug("unknown halign; keeping category default", "halign", *o.HAlign)
		}
	}
	if o.AdjustXPts != nil {
		st.AdjustXPts = *o.AdjustXPts
	}
	if o.AdjustYPts != nil {
		st.AdjustYPts = *o.AdjustYPts
	}
	if o.IncrementLine != nil {
		st.IncrementLine = *o.IncrementLine
	}
	return st
}
