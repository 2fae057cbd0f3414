// Package chart turns telemetry records plus a configuration into a
// rendered, resizable, brushable line chart. It knows nothing about
// networking or authentication; the dashboard view feeds it already-fetched
// records.
package chart

import (
	"math"
	"time"

	"github.com/sachen-pather/voltboard/pkg/domain"
)

// millisPerDay converts a range span to fractional days.
const millisPerDay = 86_400_000

// Config tells the renderer which record fields to plot and how to label the
// x axis. StartDate/EndDate are optional; when either is absent tick labels
// fall back to the full date-time granularity.
type Config struct {
	XKey  string
	YKey  string
	Title string

	StartDate time.Time
	EndDate   time.Time
}

// SpanDays is the displayed range in fractional days, or 0 when the range is
// not fully specified.
func (c Config) SpanDays() float64 {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return 0
	}
	return float64(c.EndDate.Sub(c.StartDate).Milliseconds()) / millisPerDay
}

// Granularity is the x-axis tick label format, chosen from the range span.
type Granularity int

const (
	// TickDateTime is the fallback when no range is bound.
	TickDateTime Granularity = iota
	// TickTimeOfDay labels ticks as clock time; spans of up to one day.
	TickTimeOfDay
	// TickDate labels ticks as calendar dates; spans over one day.
	TickDate
)

// TickGranularity applies the span rule. The boundary is inclusive: a span
// of exactly 1.0 days still gets time-of-day labels.
func (c Config) TickGranularity() Granularity {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return TickDateTime
	}
	if c.SpanDays() <= 1.0 {
		return TickTimeOfDay
	}
	return TickDate
}

// Format renders t as a tick label at this granularity.
func (g Granularity) Format(t time.Time) string {
	switch g {
	case TickTimeOfDay:
		return t.Format("15:04")
	case TickDate:
		return t.Format("02/01/2006")
	default:
		return t.Format("02/01/2006 15:04")
	}
}

// Point is one plotted sample. Label is the derived categorical x value; the
// raw epoch field is never displayed. Missing marks a record without the y
// field — it plots as a gap, never interpolated.
type Point struct {
	Label   string
	Time    time.Time
	Value   float64
	Missing bool
}

// Series is the preprocessed, plot-ready form of a record set.
type Series struct {
	Config Config
	Points []Point
}

// Build preprocesses records into a Series. The label for each record is its
// epoch-seconds x value promoted to milliseconds and formatted as a local
// date-time string. Records are assumed pre-sorted by timestamp.
func Build(records []domain.Record, cfg Config) Series {
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		ts := rec.Time(cfg.XKey)
		p := Point{
			Label: ts.Format("02/01/2006, 15:04:05"),
			Time:  ts,
		}
		if v, ok := rec.Value(cfg.YKey); ok {
			p.Value = v
		} else {
			p.Value = math.NaN()
			p.Missing = true
		}
		points = append(points, p)
	}
	return Series{Config: cfg, Points: points}
}

// Values returns the y values of the series, NaN at gaps.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Empty reports whether the series has nothing drawable: no points at all,
// or only gaps.
func (s Series) Empty() bool {
	for _, p := range s.Points {
		if !p.Missing {
			return false
		}
	}
	return true
}

// Window returns the sub-series selected by the brush. Narrowing the window
// is a pure slice of already-fetched points; it never refetches.
func (s Series) Window(b Brush) Series {
	n := len(s.Points)
	start, end := b.bounds(n)
	return Series{Config: s.Config, Points: s.Points[start:end]}
}
