package chart

import (
	"math"
	"testing"
	"time"

	"github.com/sachen-pather/voltboard/pkg/domain"
)

func TestTickGranularityBoundary(t *testing.T) {
	start := time.Date(2023, 11, 14, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		end  time.Time
		want Granularity
	}{
		{"half day", start.Add(12 * time.Hour), TickTimeOfDay},
		{"exactly one day", start.Add(24 * time.Hour), TickTimeOfDay}, // inclusive boundary
		{"one day plus 1ms", start.Add(24*time.Hour + time.Millisecond), TickDate},
		{"a month", start.AddDate(0, 1, 0), TickDate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{XKey: "timestamp", YKey: "voltage", StartDate: start, EndDate: tc.end}
			if got := cfg.TickGranularity(); got != tc.want {
				t.Errorf("TickGranularity() = %v, want %v (span %v days)", got, tc.want, cfg.SpanDays())
			}
		})
	}
}

func TestTickGranularityUnboundRange(t *testing.T) {
	cfg := Config{XKey: "timestamp", YKey: "voltage"}
	if got := cfg.TickGranularity(); got != TickDateTime {
		t.Errorf("TickGranularity() without a range = %v, want the date-time fallback", got)
	}
}

func TestGranularityFormat(t *testing.T) {
	ts := time.Date(2023, 11, 14, 9, 5, 0, 0, time.Local)

	if got := TickTimeOfDay.Format(ts); got != "09:05" {
		t.Errorf("time-of-day label = %q, want 09:05", got)
	}
	if got := TickDate.Format(ts); got != "14/11/2023" {
		t.Errorf("date label = %q, want 14/11/2023", got)
	}
	if got := TickDateTime.Format(ts); got != "14/11/2023 09:05" {
		t.Errorf("date-time label = %q, want 14/11/2023 09:05", got)
	}
}

func TestBuildDerivesLabels(t *testing.T) {
	epoch := int64(1700000000)
	records := []domain.Record{{"timestamp": float64(epoch), "voltage": 12.4}}

	s := Build(records, Config{XKey: "timestamp", YKey: "voltage"})
	if len(s.Points) != 1 {
		t.Fatalf("got %d points, want 1", len(s.Points))
	}
	p := s.Points[0]
	if p.Time.Unix() != epoch {
		t.Errorf("point time = %v, want epoch %d", p.Time, epoch)
	}
	// The label is the epoch promoted to wall-clock time, not the raw value.
	want := time.Unix(epoch, 0).Format("02/01/2006, 15:04:05")
	if p.Label != want {
		t.Errorf("label = %q, want %q", p.Label, want)
	}
	if p.Missing || p.Value != 12.4 {
		t.Errorf("point = %+v, want value 12.4 present", p)
	}
}

func TestBuildMissingYKeyIsGap(t *testing.T) {
	records := []domain.Record{
		{"timestamp": 1700000000, "voltage": 12.4},
		{"timestamp": 1700000060}, // sensor dropout
		{"timestamp": 1700000120, "voltage": 12.0},
	}
	s := Build(records, Config{XKey: "timestamp", YKey: "voltage"})

	if len(s.Points) != 3 {
		t.Fatalf("got %d points, want 3 (gaps are kept, not dropped)", len(s.Points))
	}
	if !s.Points[1].Missing {
		t.Error("point without the y field must be marked missing")
	}
	values := s.Values()
	if !math.IsNaN(values[1]) {
		t.Errorf("values[1] = %v, want NaN", values[1])
	}
	if values[0] != 12.4 || values[2] != 12.0 {
		t.Errorf("neighbors changed: %v", values)
	}
	if s.Empty() {
		t.Error("series with real values reported empty")
	}
}

func TestSeriesEmpty(t *testing.T) {
	if !(Series{}).Empty() {
		t.Error("zero series must be empty")
	}
	onlyGaps := Build([]domain.Record{{"timestamp": 1700000000}}, Config{XKey: "timestamp", YKey: "voltage"})
	if !onlyGaps.Empty() {
		t.Error("all-gap series must be empty")
	}
}

func TestSeriesWindow(t *testing.T) {
	records := make([]domain.Record, 10)
	for i := range records {
		records[i] = domain.Record{"timestamp": float64(1700000000 + i*60), "voltage": float64(i)}
	}
	s := Build(records, Config{XKey: "timestamp", YKey: "voltage"})

	w := s.Window(Brush{Start: 2, End: 5})
	if len(w.Points) != 3 {
		t.Fatalf("window has %d points, want 3", len(w.Points))
	}
	if w.Points[0].Value != 2 || w.Points[2].Value != 4 {
		t.Errorf("window = %v..%v, want 2..4", w.Points[0].Value, w.Points[2].Value)
	}

	// The zero brush selects everything.
	if got := len(s.Window(Brush{}).Points); got != 10 {
		t.Errorf("zero brush selected %d points, want 10", got)
	}
}
