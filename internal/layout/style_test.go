package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pdfcal/internal/config"
	"pdfcal/internal/model"
)

func TestResolveEventStyleDefaults(t *testing.T) {
	s := config.Resolve(config.Overrides{EventFontSize: ptr(10.0)})
	got := ResolveEventStyle(model.StyleOverride{}, s)

	want := EventStyle{
		Category:      CategoryNormal,
		Font:          Font{Family: "helvetica", Style: "i", Size: 10},
		Color:         config.Black,
		HAlign:        AlignLeft,
		IncrementLine: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEventStyleHeader(t *testing.T) {
	s := config.Defaults()
	got := ResolveEventStyle(model.StyleOverride{Special: ptr("header")}, s)

	if got.Category != CategoryHeader {
		t.Errorf("Category = %v", got.Category)
	}
	if got.HAlign != AlignCenter {
		t.Errorf("HAlign = %c, want C", got.HAlign)
	}
	if want := -72 * s.MarginCellTop / 2; !approx(got.AdjustYPts, want) {
		t.Errorf("AdjustYPts = %v, want %v", got.AdjustYPts, want)
	}
	if got.Font.Size != s.SpecialEventFontSize {
		t.Errorf("Font.Size = %v, want special-event-font-size %v", got.Font.Size, s.SpecialEventFontSize)
	}
}

func TestResolveEventStyleFooter(t *testing.T) {
	s := config.Resolve(config.Overrides{SpecialEventPtsAfter: ptr(2.0)})
	got := ResolveEventStyle(model.StyleOverride{Special: ptr("Footer")}, s)

	if got.Category != CategoryFooter || got.HAlign != AlignLeft || got.AdjustYPts != 0 {
		t.Errorf("footer style = %+v", got)
	}
	if got.PtsAfter != 2 {
		t.Errorf("PtsAfter = %v, want 2", got.PtsAfter)
	}
}

func TestResolveEventStyleUnknownCategory(t *testing.T) {
	s := config.Defaults()
	got := ResolveEventStyle(model.StyleOverride{Special: ptr("sidebar")}, s)
	want := CategoryDefaults(CategoryNormal, s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknown category should resolve as normal (-want +got):\n%s", diff)
	}
}

func TestResolveEventStyleOverrides(t *testing.T) {
	s := config.Defaults()
	red := config.Color{255, 0, 0}
	o := model.StyleOverride{
		Special:       ptr("header"),
		FontSize:      ptr(6.0),
		FontFamily:    ptr("times"),
		FontStyle:     ptr("b"),
		Color:         &red,
		PtsBefore:     ptr(1.0),
		PtsAfter:      ptr(2.0),
		HAlign:        ptr("r"),
		AdjustXPts:    ptr(25.0),
		AdjustYPts:    ptr(-15.0),
		IncrementLine: ptr(false),
	}
	got := ResolveEventStyle(o, s)
	want := EventStyle{
		Category:      CategoryHeader,
		Font:          Font{Family: "times", Style: "b", Size: 6},
		Color:         red,
		HAlign:        AlignRight,
		PtsBefore:     1,
		PtsAfter:      2,
		AdjustXPts:    25,
		AdjustYPts:    -15,
		IncrementLine: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEventStyleBadHAlign(t *testing.T) {
	got := ResolveEventStyle(model.StyleOverride{Special: ptr("header"), HAlign: ptr("middle")}, config.Defaults())
	if got.HAlign != AlignCenter {
		t.Errorf("HAlign = %c, want category default C", got.HAlign)
	}
}
