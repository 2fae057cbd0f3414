// Package domain holds the telemetry data shapes shared by the client and
// the views.
package domain

import "time"

// Record is one telemetry sample as the server returns it: a flat map of
// numeric fields. Which fields are present varies by device and data type;
// only the timestamp field is guaranteed.
type Record map[string]float64

// Value returns the named field and whether the record carries it.
func (r Record) Value(key string) (float64, bool) {
	v, ok := r[key]
	return v, ok
}

// Time interprets the named field as epoch seconds. It returns the zero time
// when the field is absent.
func (r Record) Time(key string) time.Time {
	v, ok := r[key]
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(v), 0)
}
