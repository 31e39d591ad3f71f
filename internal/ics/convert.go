package ics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

// ToEvents places occurrences on calendar dates. All-day occurrences appear
// on every date they cover; timed ones only on their start date, prefixed with
// the start time. Per date, all-day entries come first, then timed entries in
// start order. Dates outside [from, to] (inclusive calendar dates) are
// dropped. Every entry gets style.
func ToEvents(occs []model.Occurrence, from, to time.Time, style model.StyleOverride) model.Events {
	sorted := make([]model.Occurrence, len(occs))
	copy(sorted, occs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		da, db := dateOf(a.Start), dateOf(b.Start)
		if !da.Equal(db) {
			return da.Before(db)
		}
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		return a.Start.Before(b.Start)
	})

	first, last := dateOf(from), dateOf(to)
	ev := model.Events{}
	add := func(d time.Time, text string) {
		if d.Before(first) || d.After(last) {
			return
		}
		ev.Add(d.Year(), int(d.Month()), d.Day(), model.Entry{Text: text, Style: style})
	}

	for _, o := range sorted {
		if !o.AllDay {
			add(dateOf(o.Start), o.Start.Format("15:04")+" "+o.Summary)
			continue
		}
		end := dateOf(o.End)
		d := dateOf(o.Start)
		if !end.After(d) {
			end = d.AddDate(0, 0, 1)
		}
		for ; d.Before(end); d = d.AddDate(0, 0, 1) {
			add(d, o.Summary)
		}
	}
	return ev
}

// ImportConfig bundles what Import needs besides the sources.
type ImportConfig struct {
	Expand ExpandConfig
	Style  model.StyleOverride
}

// Import fetches, parses and expands every source and returns the resulting
// events. Any failing source fails the whole import.
func Import(ctx context.Context, f *Fetcher, sources []Source, cfg ImportConfig) (model.Events, error) {
	results, errs := f.FetchAll(ctx, sources)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var parsed []ParsedEvent
	for _, res := range results {
		events, err := ParseICS(res.Source, res.Body)
		if err != nil {
			return nil, fmt.Errorf("ics: parse %s: %w", res.Source.ID, err)
		}
		parsed = append(parsed, events...)
	}

	occs, err := ExpandOccurrences(parsed, cfg.Expand)
	if err != nil {
		return nil, err
	}

	appLog.Info("ics imported", "sources", len(sources), "events", len(parsed), "occurrences", len(occs))
	return ToEvents(occs, cfg.Expand.RangeStart.In(displayLoc(cfg.Expand)), cfg.Expand.RangeEnd.In(displayLoc(cfg.Expand)), cfg.Style), nil
}

func displayLoc(cfg ExpandConfig) *time.Location {
	if cfg.DisplayLocation == nil {
		return time.Local
	}
	return cfg.DisplayLocation
}
