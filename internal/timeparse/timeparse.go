// Package timeparse resolves the partial date expressions the CLI accepts
// into concrete times. Everything resolves in the reference time's location.
package timeparse

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Defaults supplies the components a partial expression leaves out: Date
// donates year, month and day to a bare clock; Clock donates the time of day
// (including seconds) to a bare date.
type Defaults struct {
	Date  time.Time
	Clock time.Time
}

// Parse resolves expr against now. The accepted forms, told apart by shape:
//
//	now                 the reference time itself
//	15:04               clock on the Defaults.Date day
//	2006-01-02          date at the Defaults.Clock time of day
//	2006-01-02 15:04    fully spelled out
func Parse(expr string, now time.Time, d Defaults) (time.Time, error) {
	loc := now.Location()
	switch len(expr) {
	case len("now"):
		if expr == "now" {
			return now, nil
		}
	case len(clockLayout):
		t, err := time.Parse(clockLayout, expr)
		if err != nil {
			return time.Time{}, fmt.Errorf("timeparse: %q: %w", expr, err)
		}
		date := d.Date.In(loc)
		return time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0, loc), nil
	case len(dateLayout):
		t, err := time.ParseInLocation(dateLayout, expr, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("timeparse: %q: %w", expr, err)
		}
		clock := d.Clock.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, expr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeparse: %q: %w", expr, err)
	}
	return t, nil
}

// DayStart returns t's day at 00:00:00.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns t's day at 23:59:59.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
