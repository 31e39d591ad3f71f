package config

// Overrides is the partial, user supplied form of Settings. A nil field keeps
// the default.
type Overrides struct {
	FontColor *Color  `yaml:"font-color"`
	WeekStart *string `yaml:"week-start"`

	MarginLeft   *float64 `yaml:"margin-left"`
	MarginRight  *float64 `yaml:"margin-right"`
	MarginTop    *float64 `yaml:"margin-top"`
	MarginBottom *float64 `yaml:"margin-bottom"`

	TitleSize       *float64 `yaml:"title-size"`
	TitleHeight     *float64 `yaml:"title-height"`
	TitleFontFamily *string  `yaml:"title-font-family"`
	TitleFontStyle  *string  `yaml:"title-font-style"`
	TitleColor      *Color   `yaml:"title-color"`

	HeaderSize       *float64 `yaml:"header-size"`
	HeaderHeight     *float64 `yaml:"header-height"`
	HeaderFontFamily *string  `yaml:"header-font-family"`
	HeaderFontStyle  *string  `yaml:"header-font-style"`
	HeaderColor      *Color   `yaml:"header-color"`

	DayVSep *float64 `yaml:"day-vsep"`
	DayHSep *float64 `yaml:"day-hsep"`

	MarginCellLeft   *float64 `yaml:"margin-cell-left"`
	MarginCellRight  *float64 `yaml:"margin-cell-right"`
	MarginCellTop    *float64 `yaml:"margin-cell-top"`
	MarginCellBottom *float64 `yaml:"margin-cell-bottom"`

	DateSize       *float64 `yaml:"date-size"`
	DateFontFamily *string  `yaml:"date-font-family"`
	DateFontStyle  *string  `yaml:"date-font-style"`
	DateColor      *Color   `yaml:"date-color"`

	EventFontSize   *float64 `yaml:"event-font-size"`
	EventFontFamily *string  `yaml:"event-font-family"`
	EventFontStyle  *string  `yaml:"event-font-style"`
	EventColor      *Color   `yaml:"event-color"`
	EventPtsBefore  *float64 `yaml:"event-pts-before"`
	EventPtsAfter   *float64 `yaml:"event-pts-after"`

	SpecialEventFontSize   *float64 `yaml:"special-event-font-size"`
	SpecialEventFontFamily *string  `yaml:"special-event-font-family"`
	SpecialEventFontStyle  *string  `yaml:"special-event-font-style"`
	SpecialEventColor      *Color   `yaml:"special-event-color"`
	SpecialEventPtsBefore  *float64 `yaml:"special-event-pts-before"`
	SpecialEventPtsAfter   *float64 `yaml:"special-event-pts-after"`
}

// Resolve overlays o onto Defaults. Overriding a font size does not rescale
// the matching band height; heights are only changed when given explicitly.
func Resolve(o Overrides) Settings {
	s := Defaults()

	set(&s.FontColor, o.FontColor)
	set(&s.WeekStart, o.WeekStart)

	set(&s.MarginLeft, o.MarginLeft)
	set(&s.MarginRight, o.MarginRight)
	set(&s.MarginTop, o.MarginTop)
	set(&s.MarginBottom, o.MarginBottom)

	set(&s.TitleSize, o.TitleSize)
	set(&s.TitleHeight, o.TitleHeight)
	set(&s.TitleFontFamily, o.TitleFontFamily)
	set(&s.TitleFontStyle, o.TitleFontStyle)

	set(&s.HeaderSize, o.HeaderSize)
	set(&s.HeaderHeight, o.HeaderHeight)
	set(&s.HeaderFontFamily, o.HeaderFontFamily)
	set(&s.HeaderFontStyle, o.HeaderFontStyle)

	set(&s.DayVSep, o.DayVSep)
	set(&s.DayHSep, o.DayHSep)

	set(&s.MarginCellLeft, o.MarginCellLeft)
	set(&s.MarginCellRight, o.MarginCellRight)
	set(&s.MarginCellTop, o.MarginCellTop)
	set(&s.MarginCellBottom, o.MarginCellBottom)

	set(&s.DateSize, o.DateSize)
	set(&s.DateFontFamily, o.DateFontFamily)
	set(&s.DateFontStyle, o.DateFontStyle)

	set(&s.EventFontSize, o.EventFontSize)
	set(&s.EventFontFamily, o.EventFontFamily)
	set(&s.EventFontStyle, o.EventFontStyle)
	set(&s.EventColor, o.EventColor)
	set(&s.EventPtsBefore, o.EventPtsBefore)
	set(&s.EventPtsAfter, o.EventPtsAfter)

	set(&s.SpecialEventFontSize, o.SpecialEventFontSize)
	set(&s.SpecialEventFontFamily, o.SpecialEventFontFamily)
	set(&s.SpecialEventFontStyle, o.SpecialEventFontStyle)
	set(&s.SpecialEventColor, o.SpecialEventColor)
	set(&s.SpecialEventPtsBefore, o.SpecialEventPtsBefore)
	set(&s.SpecialEventPtsAfter, o.SpecialEventPtsAfter)

	// font-color is only a fallback for the three text colours below.
	s.TitleColor = pick(o.TitleColor, s.FontColor)
	s.HeaderColor = pick(o.HeaderColor, s.FontColor)
	s.DateColor = pick(o.DateColor, s.FontColor)

	s.Normalize()
	return s
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
