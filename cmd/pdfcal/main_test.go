package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pdfcal/internal/config"
	appLog "pdfcal/internal/log"
	"pdfcal/internal/render"
)

func quiet(t *testing.T) {
	t.Helper()
	appLog.SetOutput(io.Discard)
	t.Cleanup(func() {
		appLog.SetOutput(os.Stderr)
		appLog.SetLevel(appLog.LevelInfo)
	})
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandMulti(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "several values",
			in:   []string{"out.pdf", "--events", "a.json", "b.json", "--year_first", "2020"},
			want: []string{"out.pdf", "--events", "a.json", "--events", "b.json", "--year_first", "2020"},
		},
		{
			name: "single dash and repeated",
			in:   []string{"-ics", "x.ics", "-ics", "y.ics"},
			want: []string{"-ics", "x.ics", "-ics", "y.ics"},
		},
		{
			name: "equals form untouched",
			in:   []string{"--yearly=a.json", "b.json"},
			want: []string{"--yearly=a.json", "b.json"},
		},
		{
			name: "flag without values",
			in:   []string{"--events", "--debug"},
			want: []string{"--events", "--debug"},
		},
		{
			name: "other flags untouched",
			in:   []string{"--settings", "s.json", "t.json"},
			want: []string{"--settings", "s.json", "t.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandMulti(tt.in, "events", "yearly", "ics")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("expandMulti mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	n := fs.Int("n", 0, "")
	var list stringList
	fs.Var(&list, "s", "")

	pos, err := parseInterspersed(fs, []string{"a", "-n", "3", "b", "-s", "x", "-s", "y", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, pos); diff != "" {
		t.Errorf("positionals (-want +got):\n%s", diff)
	}
	if *n != 3 {
		t.Errorf("n = %d", *n)
	}
	if diff := cmp.Diff(stringList{"x", "y"}, list); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
}

const holidayICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//pdfcal//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:holiday\r\n" +
	"DTSTAMP:20200101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20200214\r\n" +
	"DTEND;VALUE=DATE:20200215\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestLoadEventsLayersInputs(t *testing.T) {
	quiet(t)
	dir := t.TempDir()

	opts := useJSONOptions{
		yearly:     stringList{writeFile(t, dir, "yearly.json", `{"2": {"14": {"Birthday": {}}}}`)},
		icsSources: stringList{writeFile(t, dir, "cal.ics", holidayICS)},
		events: stringList{writeFile(t, dir, "events.json",
			`{"2020": {"2": {"14": {"Party": {}, "Birthday": {"font-size": 12}}}}}`)},
		timezone: "UTC",
		rng:      render.DateRange{YearFirst: 2020, MonthFirst: 1, YearLast: 2021, MonthLast: 12},
	}

	ev, err := loadEvents(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadEvents: %v", err)
	}

	var got []string
	for _, e := range ev.Month(2020, 2)[14] {
		got = append(got, e.Text)
	}
	if diff := cmp.Diff([]string{"Birthday", "Holiday", "Party"}, got); diff != "" {
		t.Errorf("2020-02-14 (-want +got):\n%s", diff)
	}
	if fs := ev.Month(2020, 2)[14][0].Style.FontSize; fs == nil || *fs != 12 {
		t.Errorf("Birthday style not merged from events file: %v", fs)
	}
	if len(ev.Month(2021, 2)[14]) != 1 {
		t.Errorf("yearly event missing in 2021")
	}
}

func TestLoadEventsBadTimezone(t *testing.T) {
	quiet(t)
	opts := useJSONOptions{
		icsSources: stringList{"cal.ics"},
		timezone:   "Nowhere/Special",
		rng:        render.DateRange{YearFirst: 2020, MonthFirst: 1},
	}
	if _, err := loadEvents(context.Background(), opts); err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestRunUseJSONWritesPDF(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	events := writeFile(t, dir, "events.json", `{"2020": {"2": {"29": {"Leap day": {"special": "header"}}}}}`)
	settings := writeFile(t, dir, "settings.json", `{"title-size": 30, "week-start": "monday"}`)
	out := filepath.Join(dir, "cal.pdf")

	err := runUseJSON([]string{out, "--events", events, "--settings", settings,
		"--year_first", "2020", "--month_first", "2", "--month_last", "3"})
	if err != nil {
		t.Fatalf("runUseJSON: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRunUseJSONErrors(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	events := writeFile(t, dir, "events.json", `{}`)
	out := filepath.Join(dir, "cal.pdf")

	tests := []struct {
		name string
		args []string
	}{
		{"no output", []string{"--events", events, "--year_first", "2020"}},
		{"no events", []string{out, "--year_first", "2020"}},
		{"no year", []string{out, "--events", events}},
		{"reversed", []string{out, "--events", events, "--year_first", "2020", "--month_first", "5", "--month_last", "2"}},
		{"missing events file", []string{out, "--events", filepath.Join(dir, "nope.json"), "--year_first", "2020"}},
		{"bad cron", []string{out, "--events", events, "--year_first", "2020", "--cron", "not a schedule"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runUseJSON(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output should not exist after failures, stat err = %v", err)
	}
}

func TestRunUseJSONInvalidRangeIsTyped(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	events := writeFile(t, dir, "events.json", `{}`)
	err := runUseJSON([]string{filepath.Join(dir, "x.pdf"), "--events", events, "--year_first", "2020", "--month_first", "13"})
	if !errors.Is(err, render.ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestRunInitSettings(t *testing.T) {
	quiet(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := runInitSettings([]string{path}); err != nil {
		t.Fatal(err)
	}

	o, err := config.LoadOverrides(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config.Defaults(), config.Resolve(o)); diff != "" {
		t.Errorf("written settings differ from defaults (-want +got):\n%s", diff)
	}

	if err := runInitSettings(nil); err == nil {
		t.Error("expected error without FILE")
	}
}

func TestRunShowExample(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "example.pdf")
	if err := runShowExample([]string{out}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("example.pdf is empty")
	}
}

func TestStringList(t *testing.T) {
	var s stringList
	_ = s.Set("a")
	_ = s.Set("b")
	if got := s.String(); got != "a,b" {
		t.Errorf("String() = %q", got)
	}
}
