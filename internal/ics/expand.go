package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

const defaultMaxOccurrencesPerEvent = 5000

// ExpandConfig controls recurrence expansion.
type ExpandConfig struct {
	// DisplayLocation is the timezone occurrences are converted to. Nil
	// means time.Local.
	DisplayLocation *time.Location

	// RangeStart / RangeEnd bound the occurrences, inclusive.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrencesPerEvent caps runaway rules. Zero means 5000.
	MaxOccurrencesPerEvent int
}

// ExpandOccurrences turns parsed events into concrete occurrences inside the
// configured range, applying RRULE, EXDATE and RECURRENCE-ID overrides.
// Occurrences of one UID keep rule order; UIDs follow input order.
func ExpandOccurrences(events []ParsedEvent, cfg ExpandConfig) ([]model.Occurrence, error) {
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, errors.New("ics: range end is before range start")
	}
	if cfg.DisplayLocation == nil {
		cfg.DisplayLocation = time.Local
	}
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	var uids []string
	baseByUID := make(map[string][]ParsedEvent)
	overridesByUID := make(map[string][]ParsedEvent)
	for _, ev := range events {
		if ev.IsOverride() {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
			continue
		}
		if _, seen := baseByUID[ev.UID]; !seen {
			uids = append(uids, ev.UID)
		}
		baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
	}

	out := make([]model.Occurrence, 0)
	for _, uid := range uids {
		for _, ev := range baseByUID[uid] {
			occ, hitCap := expandEvent(ev, overridesByUID[uid], cfg)
			if hitCap {
				appLog.Error("ics expansion truncated", errors.New("max occurrences reached"),
					"uid", uid, "cap", cfg.MaxOccurrencesPerEvent)
			}
			out = append(out, occ...)
		}
	}
	return out, nil
}

func expandEvent(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) ([]model.Occurrence, bool) {
	if ev.RawRRule == "" {
		if !overlaps(ev, ev.Start, ev.End, cfg) {
			return nil, false
		}
		start, end, src := applyOverride(ev, overrides, ev.Start, ev.End)
		return []model.Occurrence{makeOccurrence(src, start, end, cfg.DisplayLocation)}, false
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Error("ics: bad RRULE", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return nil, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	loc := ev.Start.Location()
	rangeStart, rangeEnd := cfg.RangeStart.In(loc), cfg.RangeEnd.In(loc)
	if ev.AllDay {
		rangeStart = dateOf(cfg.RangeStart.In(cfg.DisplayLocation))
		rangeEnd = dateOf(cfg.RangeEnd.In(cfg.DisplayLocation))
	}
	times := set.Between(rangeStart, rangeEnd, true)

	hitCap := false
	if len(times) > cfg.MaxOccurrencesPerEvent {
		times = times[:cfg.MaxOccurrencesPerEvent]
		hitCap = true
	}

	dur := ev.End.Sub(ev.Start)
	out := make([]model.Occurrence, 0, len(times))
	for _, t := range times {
		start, end, src := applyOverride(ev, overrides, t, t.Add(dur))
		out = append(out, makeOccurrence(src, start, end, cfg.DisplayLocation))
	}
	return out, hitCap
}

// applyOverride swaps in the override whose RECURRENCE-ID equals start.
func applyOverride(ev ParsedEvent, overrides []ParsedEvent, start, end time.Time) (time.Time, time.Time, ParsedEvent) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov.Start, ov.End, ov
		}
	}
	return start, end, ev
}

func overlaps(ev ParsedEvent, start, end time.Time, cfg ExpandConfig) bool {
	if ev.AllDay {
		// Dates are compared as calendar days, independent of zones.
		rs := dateOf(cfg.RangeStart.In(cfg.DisplayLocation))
		re := dateOf(cfg.RangeEnd.In(cfg.DisplayLocation))
		return end.After(rs) && !start.After(re)
	}
	return !end.Before(cfg.RangeStart) && !cfg.RangeEnd.Before(start)
}

// makeOccurrence converts an event instance to display time. All-day
// occurrences keep their calendar dates.
func makeOccurrence(ev ParsedEvent, start, end time.Time, displayLoc *time.Location) model.Occurrence {
	occ := model.Occurrence{
		SourceID: ev.Source.ID,
		UID:      ev.UID,
		Summary:  ev.Summary,
		Location: ev.Location,
		AllDay:   ev.AllDay,
	}
	if ev.AllDay {
		occ.Start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, displayLoc)
		occ.End = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, displayLoc)
		return occ
	}
	occ.Start = start.In(displayLoc)
	occ.End = end.In(displayLoc)
	return occ
}

// dateOf is midnight UTC of t's calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
