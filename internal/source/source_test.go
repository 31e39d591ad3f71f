package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pdfcal/internal/config"
	"pdfcal/internal/model"
)

func ptr[T any](v T) *T { return &v }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEventsJSONKeepsOrder(t *testing.T) {
	path := writeFile(t, "events.json", `{
  "2020": {
    "4": {
      "20": {
        "Zebra": {"font-size": 8, "adjust-x-pts": 25, "adjust-y-pts": -15, "increment-line": false},
        "More and more of\nthem!": {},
        "Apple": {"pts-before": 6, "color": [255, 0, 0], "special": "footer", "halign": "R"}
      }
    }
  },
  "1992": {"12": {"9": {"Today is Dec 9, 1992": {}}}}
}`)

	ev, err := LoadEvents(path)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}

	got := ev.Month(2020, 4)[20]
	want := []model.Entry{
		{Text: "Zebra", Style: model.StyleOverride{
			FontSize: ptr(8.0), AdjustXPts: ptr(25.0), AdjustYPts: ptr(-15.0), IncrementLine: ptr(false),
		}},
		{Text: "More and more of\nthem!"},
		{Text: "Apple", Style: model.StyleOverride{
			PtsBefore: ptr(6.0), Color: &config.Color{255, 0, 0}, Special: ptr("footer"), HAlign: ptr("R"),
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if len(ev.Month(1992, 12)[9]) != 1 {
		t.Errorf("1992-12-09 missing")
	}
}

func TestLoadEventsYAMLList(t *testing.T) {
	path := writeFile(t, "events.yaml", `
2021:
  5:
    1:
      - first
      - second
    2: ~
`)
	ev, err := LoadEvents(path)
	if err != nil {
		t.Fatal(err)
	}
	got := ev.Month(2021, 5)[1]
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("entries = %+v", got)
	}
	if len(ev.Month(2021, 5)[2]) != 0 {
		t.Errorf("null day should have no entries")
	}
}

func TestLoadEventsErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non integer year", `{"twenty": {}}`},
		{"list at top", `[1, 2]`},
		{"bad style", `{"2020": {"1": {"1": {"x": {"font-size": "big"}}}}}`},
		{"bad color", `{"2020": {"1": {"1": {"x": {"color": [1]}}}}}`},
		{"syntax", `{"2020": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadEvents(writeFile(t, "e.json", tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadEventsMissingFile(t *testing.T) {
	if _, err := LoadEvents(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadEventsEmptyFile(t *testing.T) {
	ev, err := LoadEvents(writeFile(t, "empty.json", ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(ev) != 0 {
		t.Errorf("events = %v", ev)
	}
}

func TestLoadYearly(t *testing.T) {
	path := writeFile(t, "yearly.json", `{"12": {"25": {"Christmas": {"special": "header"}}}, "2": {"29": {"Leap": {}}}}`)
	y, err := LoadYearly(path)
	if err != nil {
		t.Fatal(err)
	}

	ev := model.Events{}
	ev.ApplyYearly(y, 2023, 2024)
	if got := ev.Month(2023, 12)[25]; len(got) != 1 || *got[0].Style.Special != "header" {
		t.Errorf("2023-12-25 = %+v", got)
	}
	if got := ev.Month(2023, 2)[29]; len(got) != 0 {
		t.Errorf("2023-02-29 should not exist, got %+v", got)
	}
	if got := ev.Month(2024, 2)[29]; len(got) != 1 {
		t.Errorf("2024-02-29 = %+v", got)
	}
}

func TestLaterFilesMergeStyleKeys(t *testing.T) {
	a := writeFile(t, "a.json", `{"2020": {"1": {"1": {"Party": {"font-size": 12, "pts-after": 2}, "Other": {}}}}}`)
	b := writeFile(t, "b.json", `{"2020": {"1": {"1": {"Party": {"font-size": 9}}}}}`)

	ev, err := LoadEvents(a)
	if err != nil {
		t.Fatal(err)
	}
	top, err := LoadEvents(b)
	if err != nil {
		t.Fatal(err)
	}
	ev.Merge(top)

	got := ev.Month(2020, 1)[1]
	want := []model.Entry{
		{Text: "Party", Style: model.StyleOverride{FontSize: ptr(9.0), PtsAfter: ptr(2.0)}},
		{Text: "Other"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteEventsRoundTrip(t *testing.T) {
	ev := model.Events{}
	ev.Add(2020, 4, 20, model.Entry{Text: "Zebra", Style: model.StyleOverride{FontSize: ptr(8.0), IncrementLine: ptr(false)}})
	ev.Add(2020, 4, 20, model.Entry{Text: "two\nlines"})
	ev.Add(2020, 4, 20, model.Entry{Text: "2021", Style: model.StyleOverride{Color: &config.Color{1, 2, 3}}})
	ev.Add(1999, 1, 1, model.Entry{Text: "old"})

	var buf bytes.Buffer
	if err := WriteEvents(&buf, ev); err != nil {
		t.Fatal(err)
	}

	got, err := LoadEvents(writeFile(t, "out.yaml", buf.String()))
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(ev, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
