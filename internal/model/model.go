package model

import (
	"sort"
	"time"

	"pdfcal/internal/config"
)

// StyleOverride is the per-event style dictionary as supplied by the caller.
// Nil fields fall back to the category defaults when the style is resolved.
type StyleOverride struct {
	Special       *string       `yaml:"special,omitempty"`
	FontSize      *float64      `yaml:"font-size,omitempty"`
	FontFamily    *string       `yaml:"font-family,omitempty"`
	FontStyle     *string       `yaml:"font-style,omitempty"`
	Color         *config.Color `yaml:"color,omitempty"`
	PtsBefore     *float64      `yaml:"pts-before,omitempty"`
	PtsAfter      *float64      `yaml:"pts-after,omitempty"`
	HAlign        *string       `yaml:"halign,omitempty"`
	AdjustXPts    *float64      `yaml:"adjust-x-pts,omitempty"`
	AdjustYPts    *float64      `yaml:"adjust-y-pts,omitempty"`
	IncrementLine *bool         `yaml:"increment-line,omitempty"`
}

// Merge returns o with every key that is set in later replacing the value in
// o. It is a shallow key merge, not a replacement of the whole dictionary.
func (o StyleOverride) Merge(later StyleOverride) StyleOverride {
	out := o
	if later.Special != nil {
		out.Special = later.Special
	}
	if later.FontSize != nil {
		out.FontSize = later.FontSize
	}
	if later.FontFamily != nil {
		out.FontFamily = later.FontFamily
	}
	if later.FontStyle != nil {
		out.FontStyle = later.FontStyle
	}
	if later.Color != nil {
		out.Color = later.Color
	}
	if later.PtsBefore != nil {
		out.PtsBefore = later.PtsBefore
	}
	if later.PtsAfter != nil {
		out.PtsAfter = later.PtsAfter
	}
	if later.HAlign != nil {
		out.HAlign = later.HAlign
	}
	if later.AdjustXPts != nil {
		out.AdjustXPts = later.AdjustXPts
	}
	if later.AdjustYPts != nil {
		out.AdjustYPts = later.AdjustYPts
	}
	if later.IncrementLine != nil {
		out.IncrementLine = later.IncrementLine
	}
	return out
}

// Entry is one event attached to a date. Text may contain "\n" to produce
// several lines.
type Entry struct {
	Text  string
	Style StyleOverride
}

// MonthEvents maps a day of month to its entries in insertion order.
type MonthEvents map[int][]Entry

// Events is keyed by year, then month (1-12), then day.
type Events map[int]map[int]MonthEvents

// Yearly holds month -> day -> entries that repeat every year.
type Yearly map[int]MonthEvents

// Add appends e to the given date. If an entry with the same text already
// exists on that date, its style is merged with e's style instead and the
// entry keeps its original position.
func (ev Events) Add(year, month, day int, e Entry) {
	months, ok := ev[year]
	if !ok {
		months = make(map[int]MonthEvents)
		ev[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = make(MonthEvents)
		months[month] = days
	}
	days.add(day, e)
}

func (m MonthEvents) add(day int, e Entry) {
	entries := m[day]
	for i := range entries {
		if entries[i].Text == e.Text {
			entries[i].Style = entries[i].Style.Merge(e.Style)
			return
		}
	}
	m[day] = append(entries, e)
}

// Add appends e to month/day of the yearly table, merging like Events.Add.
func (y Yearly) Add(month, day int, e Entry) {
	days, ok := y[month]
	if !ok {
		days = make(MonthEvents)
		y[month] = days
	}
	days.add(day, e)
}

// Month returns the entries for one month, or nil.
func (ev Events) Month(year, month int) MonthEvents {
	return ev[year][month]
}

// Merge layers other on top of ev, date by date and in other's order.
func (ev Events) Merge(other Events) {
	for _, year := range sortedKeys(other) {
		for _, month := range sortedKeys(other[year]) {
			days := other[year][month]
			for _, day := range sortedKeys(days) {
				for _, e := range days[day] {
					ev.Add(year, month, day, e)
				}
			}
		}
	}
}

// ApplyYearly stamps y into every year from yearFirst to yearLast inclusive.
// Dates that do not exist in a given year (e.g. February 29) are skipped.
func (ev Events) ApplyYearly(y Yearly, yearFirst, yearLast int) {
	for year := yearFirst; year <= yearLast; year++ {
		for _, month := range sortedKeys(y) {
			days := y[month]
			for _, day := range sortedKeys(days) {
				if !ValidDate(year, month, day) {
					continue
				}
				for _, e := range days[day] {
					ev.Add(year, month, day, e)
				}
			}
		}
	}
}

// ValidDate reports whether year-month-day is a real Gregorian date.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Occurrence represents a single concrete instance of an imported calendar
// event (after recurrence expansion and timezone normalization).
type Occurrence struct {
	SourceID string
	UID      string

	Summary  string
	Location string

	AllDay bool

	// Start / End are in the display timezone.
	Start time.Time
	End   time.Time
}
