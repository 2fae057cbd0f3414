package chart

// Layout maps a container's dimensions, in character cells, to chart
// geometry.
// Margins derive from the container: top and bottom are 10% of the height,
// the right margin is 10% of the width, and the left margin is fixed at 0.
// The brush band sits at 80% of the container height. Recomputed on mount
// and on every resize.
type Layout struct {
	Width  int
	Height int

	MarginTop    int
	MarginBottom int
	MarginRight  int
	MarginLeft   int

	// BrushRow is the row index of the brush band.
	BrushRow int
}

// NewLayout computes the geometry for a container of the given size.
func NewLayout(width, height int) Layout {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Layout{
		Width:        width,
		Height:       height,
		MarginTop:    height / 10,
		MarginBottom: height / 10,
		MarginRight:  width / 10,
		MarginLeft:   0,
		BrushRow:     height * 8 / 10,
	}
}

// PlotWidth is the horizontal space left for the plot after margins.
func (l Layout) PlotWidth() int {
	w := l.Width - l.MarginLeft - l.MarginRight
	if w < 8 {
		w = 8
	}
	return w
}

// PlotHeight is the number of rows between the title row and the tick row.
func (l Layout) PlotHeight() int {
	// Rows: title at MarginTop, ticks at BrushRow-1, brush at BrushRow.
	h := l.BrushRow - l.MarginTop - 2
	if h < 3 {
		h = 3
	}
	return h
}
