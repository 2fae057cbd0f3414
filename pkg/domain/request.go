package domain

import (
	"strings"
	"time"
)

// DateFormat is the 19-character local timestamp the telemetry API expects,
// with no zone suffix.
const DateFormat = "2006-01-02T15:04:05"

// SeriesRequest is one telemetry query. All four fields must be non-blank
// before a request is worth sending.
type SeriesRequest struct {
	DeviceID  string
	DataType  string
	StartDate string
	EndDate   string
}

// Complete reports whether every field has content beyond whitespace.
func (r SeriesRequest) Complete() bool {
	for _, f := range []string{r.DeviceID, r.DataType, r.StartDate, r.EndDate} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Range parses the start and end bounds as local times. A bound that does
// not parse comes back as the zero time; callers treat an unparsable range
// the same as an unbound one.
func (r SeriesRequest) Range() (time.Time, time.Time) {
	start, err := time.ParseInLocation(DateFormat, strings.TrimSpace(r.StartDate), time.Local)
	if err != nil {
		start = time.Time{}
	}
	end, err := time.ParseInLocation(DateFormat, strings.TrimSpace(r.EndDate), time.Local)
	if err != nil {
		end = time.Time{}
	}
	return start, end
}

// DefaultRange is the span shown before the user touches the date fields:
// yesterday at midnight through now, both in local time.
func DefaultRange(now time.Time) (string, string) {
	y := now.AddDate(0, 0, -1)
	start := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, now.Location())
	return start.Format(DateFormat), now.Format(DateFormat)
}
