package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pdfcal/internal/config"
	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

// ErrInvalidRange is wrapped by every date range validation failure.
var ErrInvalidRange = errors.New("invalid date range")

// RangeError describes why a DateRange was rejected.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "render: invalid date range: " + e.Reason
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// DateRange selects the months to print, inclusive on both ends. A zero
// YearLast means YearFirst and a zero MonthLast means MonthFirst.
type DateRange struct {
	YearFirst  int
	MonthFirst int
	YearLast   int
	MonthLast  int
}

// YearMonth is one page of the calendar.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (r DateRange) normalized() DateRange {
	if r.YearLast == 0 {
		r.YearLast = r.YearFirst
	}
	if r.MonthLast == 0 {
		r.MonthLast = r.MonthFirst
	}
	return r
}

// Validate checks month bounds and ordering.
func (r DateRange) Validate() error {
	n := r.normalized()
	if n.YearFirst < 1 {
		return &RangeError{Reason: fmt.Sprintf("year_first must be positive, got %d", n.YearFirst)}
	}
	if n.MonthFirst < 1 || n.MonthFirst > 12 {
		return &RangeError{Reason: fmt.Sprintf("month_first must be in 1..12, got %d", n.MonthFirst)}
	}
	if n.MonthLast < 1 || n.MonthLast > 12 {
		return &RangeError{Reason: fmt.Sprintf("month_last must be in 1..12, got %d", n.MonthLast)}
	}
	if n.YearLast < n.YearFirst {
		return &RangeError{Reason: fmt.Sprintf("year_last %d is before year_first %d", n.YearLast, n.YearFirst)}
	}
	if n.YearLast == n.YearFirst && n.MonthLast < n.MonthFirst {
		return &RangeError{Reason: fmt.Sprintf("%d-%02d is before %d-%02d", n.YearLast, n.MonthLast, n.YearFirst, n.MonthFirst)}
	}
	return nil
}

// Months lists the pages in chronological order. The range must be valid.
func (r DateRange) Months() []YearMonth {
	n := r.normalized()
	var out []YearMonth
	for year := n.YearFirst; year <= n.YearLast; year++ {
		first, last := 1, 12
		if year == n.YearFirst {
			first = n.MonthFirst
		}
		if year == n.YearLast {
			last = n.MonthLast
		}
		for m := first; m <= last; m++ {
			out = append(out, YearMonth{Year: year, Month: time.Month(m)})
		}
	}
	return out
}

// Bounds returns the first instant of the first month and the last instant
// of the last month in loc. The range must be valid.
func (r DateRange) Bounds(loc *time.Location) (start, end time.Time) {
	n := r.normalized()
	start = time.Date(n.YearFirst, time.Month(n.MonthFirst), 1, 0, 0, 0, 0, loc)
	end = time.Date(n.YearLast, time.Month(n.MonthLast)+1, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return start, end
}

// Render validates the range and draws one page per month on c. Nothing is
// drawn when the range is invalid; the first backend error aborts the run.
func Render(c Canvas, rng DateRange, ev model.Events, s config.Settings) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	r := NewRenderer(c, s)
	for _, ym := range rng.Months() {
		if err := r.RenderMonth(ym.Year, ym.Month, ev.Month(ym.Year, int(ym.Month))); err != nil {
			return fmt.Errorf("render: %d-%02d: %w", ym.Year, ym.Month, err)
		}
	}
	return nil
}

// Generate renders the calendar as PDF into w.
func Generate(w io.Writer, rng DateRange, ev model.Events, o config.Overrides) error {
	doc := NewPDFCanvas()
	if err := Render(doc, rng, ev, config.Resolve(o)); err != nil {
		return err
	}
	return doc.Output(w)
}

// GenerateFile renders the calendar into the named file. The file is only
// written once the whole document has been built.
func GenerateFile(path string, rng DateRange, ev model.Events, o config.Overrides) error {
	var buf bytes.Buffer
	if err := Generate(&buf, rng, ev, o); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	appLog.Info("calendar written", "path", path, "pages", len(rng.Months()), "bytes", buf.Len())
	return nil
}
