package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestResolveEmptyIsDefaults(t *testing.T) {
	got := Resolve(Overrides{})
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("Resolve({}) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTitleSizeOnly(t *testing.T) {
	got := Resolve(Overrides{TitleSize: ptr(20.0)})

	want := Defaults()
	want.TitleSize = 20
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got.TitleHeight != 16.0/72 {
		t.Errorf("TitleHeight = %v, want %v (not rescaled)", got.TitleHeight, 16.0/72)
	}
}

func TestResolveFontColorFallback(t *testing.T) {
	red := Color{255, 0, 0}
	blue := Color{0, 0, 255}

	got := Resolve(Overrides{FontColor: &red, HeaderColor: &blue})

	if got.TitleColor != red {
		t.Errorf("TitleColor = %v, want %v", got.TitleColor, red)
	}
	if got.DateColor != red {
		t.Errorf("DateColor = %v, want %v", got.DateColor, red)
	}
	if got.HeaderColor != blue {
		t.Errorf("HeaderColor = %v, want %v", got.HeaderColor, blue)
	}
	if got.EventColor != Black {
		t.Errorf("EventColor = %v, want black", got.EventColor)
	}
}

func TestResolveWeekStart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"monday", "monday"},
		{"Monday", "monday"},
		{"sunday", "sunday"},
		{"friday", "sunday"},
		{"", "sunday"},
	}
	for _, tt := range tests {
		got := Resolve(Overrides{WeekStart: ptr(tt.in)})
		if got.WeekStart != tt.want {
			t.Errorf("week-start %q resolved to %q, want %q", tt.in, got.WeekStart, tt.want)
		}
	}
}

func TestLoadOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	body := `{
  "title-size": 24,
  "font-color": [10, 20, 30],
  "margin-cell-bottom": 0.2,
  "some-future-key": "ignored"
}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	s := Resolve(o)
	if s.TitleSize != 24 {
		t.Errorf("TitleSize = %v, want 24", s.TitleSize)
	}
	if s.TitleColor != (Color{10, 20, 30}) {
		t.Errorf("TitleColor = %v", s.TitleColor)
	}
	if s.MarginCellBottom != 0.2 {
		t.Errorf("MarginCellBottom = %v", s.MarginCellBottom)
	}
}

func TestLoadOverridesBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("event-color: [1, 2]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Fatal("expected error for two component colour")
	}
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	o, err := LoadOverrides("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Overrides{}, o); diff != "" {
		t.Errorf("unexpected overrides:\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := Defaults()
	want.DayHSep = 0.25
	want.EventColor = Color{1, 2, 3}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, Resolve(o)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
