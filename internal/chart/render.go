package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tickStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	windowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Render draws the series into a block of layout.Height lines: title, plot
// area, tick labels, and the brush band. An empty series still renders the
// axes and title, never a blank view.
func Render(s Series, l Layout, b Brush) string {
	rows := make([]string, l.Height)

	titleRow := l.MarginTop
	tickRow := l.BrushRow - 1
	brushRow := l.BrushRow
	if brushRow >= l.Height {
		brushRow = l.Height - 1
		tickRow = brushRow - 1
	}

	visible := s.Window(b)

	if titleRow >= 0 && titleRow < l.Height {
		rows[titleRow] = " " + titleStyle.Render(s.Config.Title)
	}

	plotTop := titleRow + 1
	plotLines := renderPlot(visible, l)
	for i, line := range plotLines {
		r := plotTop + i
		if r >= 0 && r < tickRow {
			rows[r] = line
		}
	}

	if tickRow >= 0 && tickRow < l.Height {
		rows[tickRow] = renderTicks(visible, l)
	}
	if brushRow >= 0 && brushRow < l.Height {
		rows[brushRow] = renderBrush(len(s.Points), b, l)
	}

	return strings.Join(rows, "\n")
}

// renderPlot produces the plot body. Gaps (NaN values) are left to the
// plotter, which skips them instead of interpolating.
func renderPlot(s Series, l Layout) []string {
	height := l.PlotHeight() - 1
	if height < 2 {
		height = 2
	}

	if s.Empty() {
		lines := make([]string, 0, height+1)
		for i := 0; i < height-1; i++ {
			lines = append(lines, axisStyle.Render("  ┤"))
		}
		lines = append(lines, axisStyle.Render("  └"+strings.Repeat("─", l.PlotWidth()-3)))
		lines = append(lines, "   "+emptyStyle.Render("no data"))
		return lines
	}

	plot := asciigraph.Plot(s.Values(),
		asciigraph.Height(height),
		asciigraph.Width(l.PlotWidth()-8), // leave room for the y-axis gutter
		asciigraph.Precision(1),
	)
	return strings.Split(plot, "\n")
}

// renderTicks labels the visible window's first and last timestamps at the
// configured granularity.
func renderTicks(s Series, l Layout) string {
	if len(s.Points) == 0 {
		return ""
	}
	g := s.Config.TickGranularity()
	left := g.Format(s.Points[0].Time)
	right := g.Format(s.Points[len(s.Points)-1].Time)

	width := l.PlotWidth()
	gap := width - len(left) - len(right) - 2
	if gap < 1 {
		gap = 1
	}
	return "  " + tickStyle.Render(left) + strings.Repeat(" ", gap) + tickStyle.Render(right)
}

// renderBrush draws the sub-range selector: a track as wide as the plot with
// the selected window highlighted in proportion to the full series.
func renderBrush(total int, b Brush, l Layout) string {
	width := l.PlotWidth()
	if width < 4 {
		width = 4
	}
	if total <= 0 {
		return "  " + trackStyle.Render(strings.Repeat("─", width))
	}

	start, end := b.Span(total)
	from := start * width / total
	to := end * width / total
	if to <= from {
		to = from + 1
	}
	if to > width {
		to = width
	}

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(trackStyle.Render(strings.Repeat("─", from)))
	sb.WriteString(windowStyle.Render(strings.Repeat("█", to-from)))
	sb.WriteString(trackStyle.Render(strings.Repeat("─", width-to)))
	return sb.String()
}
