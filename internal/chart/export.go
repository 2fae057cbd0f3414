package chart

import (
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	exportWidth  = 1280
	exportHeight = 720
)

// ExportPNG renders the series as a PNG image. Gaps stay NaN so the plotted
// line breaks instead of bridging missing samples.
func ExportPNG(s Series, w io.Writer) error {
	if len(s.Points) == 0 {
		return fmt.Errorf("chart.ExportPNG: no data to export")
	}

	times := make([]time.Time, 0, len(s.Points))
	values := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		times = append(times, p.Time)
		values = append(values, p.Value)
	}

	// go-chart needs at least two x values to size the plot.
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Second))
		values = append(values, values[0])
	}

	tickFormat := s.Config.TickGranularity()
	graph := gochart.Chart{
		Title:  s.Config.Title,
		Width:  exportWidth,
		Height: exportHeight,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat(formatString(tickFormat)),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    s.Config.YKey,
				XValues: times,
				YValues: values,
			},
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("chart.ExportPNG: %w", err)
	}
	return nil
}

func formatString(g Granularity) string {
	switch g {
	case TickTimeOfDay:
		return "15:04"
	case TickDate:
		return "02/01/2006"
	default:
		return "02/01/2006 15:04"
	}
}
