// Package example holds the built-in demo calendar printed by show-example.
package example

import (
	"pdfcal/internal/config"
	"pdfcal/internal/model"
)

// Range of the demo: February to May 2020.
const (
	YearFirst  = 2020
	MonthFirst = 2
	MonthLast  = 5
)

func ptr[T any](v T) *T { return &v }

// Events returns the demo events. They show plain entries, a multi-line
// entry, extra spacing, an overlay placed next to the date number, and
// header/footer entries.
func Events() model.Events {
	ev := model.Events{}

	ev.Add(1992, 12, 9, model.Entry{Text: "Today is Dec 9, 1992"})
	ev.Add(1992, 12, 9, model.Entry{Text: "Here is another event"})

	ev.Add(2020, 3, 1, model.Entry{Text: "Another event!"})

	ev.Add(2020, 4, 9, model.Entry{Text: "Events everywhere!"})

	ev.Add(2020, 4, 20, model.Entry{Text: "Goodness me!", Style: model.StyleOverride{
		FontSize:      ptr(8.0),
		AdjustXPts:    ptr(25.0),
		AdjustYPts:    ptr(-15.0),
		IncrementLine: ptr(false),
	}})
	ev.Add(2020, 4, 20, model.Entry{Text: "More and more of\nthem!"})
	ev.Add(2020, 4, 20, model.Entry{Text: "Last one...", Style: model.StyleOverride{
		PtsBefore: ptr(6.0),
	}})

	ev.Add(2020, 2, 14, model.Entry{Text: "Valentine's", Style: model.StyleOverride{
		Special: ptr("header"),
		Color:   &config.Color{200, 0, 0},
	}})
	ev.Add(2020, 2, 29, model.Entry{Text: "Leap day", Style: model.StyleOverride{
		Special: ptr("header"),
	}})
	ev.Add(2020, 2, 29, model.Entry{Text: "Rent due", Style: model.StyleOverride{
		Special: ptr("footer"),
		HAlign:  ptr("R"),
	}})
	ev.Add(2020, 2, 29, model.Entry{Text: "Taxes", Style: model.StyleOverride{
		Special:  ptr("footer"),
		HAlign:   ptr("R"),
		PtsAfter: ptr(2.0),
	}})
	ev.Add(2020, 5, 25, model.Entry{Text: "Memorial Day", Style: model.StyleOverride{
		HAlign: ptr("C"),
	}})

	return ev
}

// Settings returns the demo overrides; the demo uses the defaults.
func Settings() config.Overrides {
	return config.Overrides{}
}
