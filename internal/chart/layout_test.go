package chart

import "testing"

func TestNewLayoutMargins(t *testing.T) {
	l := NewLayout(120, 40)

	if l.MarginTop != 4 || l.MarginBottom != 4 {
		t.Errorf("vertical margins = %d/%d, want 10%% of height (4)", l.MarginTop, l.MarginBottom)
	}
	if l.MarginRight != 12 {
		t.Errorf("right margin = %d, want 10%% of width (12)", l.MarginRight)
	}
	if l.MarginLeft != 0 {
		t.Errorf("left margin = %d, want fixed 0", l.MarginLeft)
	}
	if l.BrushRow != 32 {
		t.Errorf("brush row = %d, want 80%% of height (32)", l.BrushRow)
	}
}

func TestNewLayoutRecomputesOnResize(t *testing.T) {
	small := NewLayout(80, 20)
	large := NewLayout(200, 60)

	if small.MarginRight != 8 || large.MarginRight != 20 {
		t.Errorf("right margins = %d and %d, want 8 and 20", small.MarginRight, large.MarginRight)
	}
	if small.BrushRow != 16 || large.BrushRow != 48 {
		t.Errorf("brush rows = %d and %d, want 16 and 48", small.BrushRow, large.BrushRow)
	}
}

func TestNewLayoutDegenerateSizes(t *testing.T) {
	l := NewLayout(-5, -5)
	if l.Width != 0 || l.Height != 0 {
		t.Errorf("negative sizes must clamp to zero, got %dx%d", l.Width, l.Height)
	}
	if l.PlotWidth() < 8 || l.PlotHeight() < 3 {
		t.Errorf("plot area must keep a usable floor, got %dx%d", l.PlotWidth(), l.PlotHeight())
	}
}
