package chart

// Brush is the horizontally-draggable sub-range selector: a half-open index
// window [Start, End) over the fetched points. The zero Brush means "whole
// series".
type Brush struct {
	Start int
	End   int
}

// bounds clamps the window to a series of n points. A zero or inverted brush
// selects everything.
func (b Brush) bounds(n int) (int, int) {
	start, end := b.Start, b.End
	if end <= 0 || end > n {
		end = n
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return 0, n
	}
	return start, end
}

// Reset widens the brush back to the whole series.
func (b Brush) Reset() Brush {
	return Brush{}
}

// Shift moves the window by delta points without changing its width,
// stopping at either edge of the n-point series.
func (b Brush) Shift(delta, n int) Brush {
	start, end := b.bounds(n)
	width := end - start
	start += delta
	if start < 0 {
		start = 0
	}
	if start+width > n {
		start = n - width
	}
	return Brush{Start: start, End: start + width}
}

// Resize grows (positive delta) or shrinks the window at its right edge.
// The window never shrinks below two points.
func (b Brush) Resize(delta, n int) Brush {
	start, end := b.bounds(n)
	end += delta
	if end > n {
		end = n
	}
	if end < start+2 {
		end = start + 2
		if end > n {
			return Brush{Start: start, End: n}
		}
	}
	return Brush{Start: start, End: end}
}

// Span returns the selected window clamped to n points.
func (b Brush) Span(n int) (start, end int) {
	return b.bounds(n)
}
