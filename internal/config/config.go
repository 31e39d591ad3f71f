package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an r,g,b triple with 0-255 components.
type Color [3]int

// Black is the fallback for every unset colour.
var Black = Color{0, 0, 0}

// UnmarshalYAML accepts a three element sequence such as [255, 0, 0].
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var parts []int
	if err := value.Decode(&parts); err != nil {
		return fmt.Errorf("config: color: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("config: color at line %d: expected 3 components, got %d", value.Line, len(parts))
	}
	copy(c[:], parts)
	return nil
}

// MarshalYAML writes the colour as a flow sequence.
func (c Color) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range c {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

// Settings is the fully resolved calendar configuration. All lengths are in
// inches, all font sizes and spacings in points.
type Settings struct {
	FontColor Color `yaml:"font-color"`

	// WeekStart is "sunday" (default) or "monday".
	WeekStart string `yaml:"week-start"`

	MarginLeft   float64 `yaml:"margin-left"`
	MarginRight  float64 `yaml:"margin-right"`
	MarginTop    float64 `yaml:"margin-top"`
	MarginBottom float64 `yaml:"margin-bottom"`

	TitleSize       float64 `yaml:"title-size"`
	TitleHeight     float64 `yaml:"title-height"`
	TitleFontFamily string  `yaml:"title-font-family"`
	TitleFontStyle  string  `yaml:"title-font-style"`
	TitleColor      Color   `yaml:"title-color"`

	HeaderSize       float64 `yaml:"header-size"`
	HeaderHeight     float64 `yaml:"header-height"`
	HeaderFontFamily string  `yaml:"header-font-family"`
	HeaderFontStyle  string  `yaml:"header-font-style"`
	HeaderColor      Color   `yaml:"header-color"`

	DayVSep float64 `yaml:"day-vsep"`
	DayHSep float64 `yaml:"day-hsep"`

	MarginCellLeft   float64 `yaml:"margin-cell-left"`
	MarginCellRight  float64 `yaml:"margin-cell-right"`
	MarginCellTop    float64 `yaml:"margin-cell-top"`
	MarginCellBottom float64 `yaml:"margin-cell-bottom"`

	DateSize       float64 `yaml:"date-size"`
	DateFontFamily string  `yaml:"date-font-family"`
	DateFontStyle  string  `yaml:"date-font-style"`
	DateColor      Color   `yaml:"date-color"`

	EventFontSize   float64 `yaml:"event-font-size"`
	EventFontFamily string  `yaml:"event-font-family"`
	EventFontStyle  string  `yaml:"event-font-style"`
	EventColor      Color   `yaml:"event-color"`
	EventPtsBefore  float64 `yaml:"event-pts-before"`
	EventPtsAfter   float64 `yaml:"event-pts-after"`

	SpecialEventFontSize   float64 `yaml:"special-event-font-size"`
	SpecialEventFontFamily string  `yaml:"special-event-font-family"`
	SpecialEventFontStyle  string  `yaml:"special-event-font-style"`
	SpecialEventColor      Color   `yaml:"special-event-color"`
	SpecialEventPtsBefore  float64 `yaml:"special-event-pts-before"`
	SpecialEventPtsAfter   float64 `yaml:"special-event-pts-after"`
}

// Defaults returns the built-in default table.
func Defaults() Settings {
	return Settings{
		FontColor: Black,
		WeekStart: "sunday",

		MarginLeft:   0.5,
		MarginRight:  0.5,
		MarginTop:    0.3,
		MarginBottom: 0.3,

		TitleSize:       16,
		TitleHeight:     16.0 / 72,
		TitleFontFamily: "helvetica",
		TitleFontStyle:  "b",
		TitleColor:      Black,

		HeaderSize:       10,
		HeaderHeight:     10.0 / 72,
		HeaderFontFamily: "helvetica",
		HeaderFontStyle:  "i",
		HeaderColor:      Black,

		DayVSep: 0.1,
		DayHSep: 0.1,

		MarginCellLeft:   0.05,
		MarginCellRight:  0.05,
		MarginCellTop:    0.1,
		MarginCellBottom: 0.05,

		DateSize:       14,
		DateFontFamily: "helvetica",
		DateFontStyle:  "b",
		DateColor:      Black,

		EventFontSize:   10,
		EventFontFamily: "helvetica",
		EventFontStyle:  "i",
		EventColor:      Black,

		SpecialEventFontSize:   8,
		SpecialEventFontFamily: "helvetica",
		SpecialEventFontStyle:  "",
		SpecialEventColor:      Black,
	}
}

// Normalize maps unknown week-start values back to "sunday".
func (s *Settings) Normalize() {
	switch strings.ToLower(strings.TrimSpace(s.WeekStart)) {
	case "monday":
		s.WeekStart = "monday"
	default:
		s.WeekStart = "sunday"
	}
}

// MondayFirst reports whether the grid starts on Monday.
func (s Settings) MondayFirst() bool {
	return s.WeekStart == "monday"
}

// LoadOverrides reads a JSON or YAML settings file. An empty path yields no
// overrides. Keys that are not recognised are ignored.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("config: read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("config: parse settings %s: %w", path, err)
	}
	return o, nil
}

// Save writes the given settings to path as YAML.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, s Settings) error {
	if path == "" {
		return errors.New("config: settings path is empty")
	}

	s.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".pdfcal-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
