package sla

import (
	"math"
	"time"
)

// Business window boundaries, hour of day.
const (
	startHour = 8
	endHour   = 17
)

// Calendar projects instants onto business time: 08:00-17:00 Monday
// through Friday in a fixed location. The zero value uses UTC.
type Calendar struct {
	loc *time.Location
}

// NewCalendar builds a calendar in loc. A nil loc means UTC.
func NewCalendar(loc *time.Location) Calendar {
	return Calendar{loc: loc}
}

func (c Calendar) location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Normalize advances t to the next instant inside the business window.
// Weekends roll to Monday 08:00, pre-window weekday instants snap to
// 08:00 the same day, and post-window instants roll to the next day and
// re-normalize. Instants already inside the window are returned
// unchanged, which makes Normalize idempotent.
func (c Calendar) Normalize(t time.Time) time.Time {
	t = t.In(c.location())
	switch t.Weekday() {
	case time.Saturday:
		return c.dayStart(t.AddDate(0, 0, 2))
	case time.Sunday:
		return c.dayStart(t.AddDate(0, 0, 1))
	}
	if t.Hour() < startHour {
		return c.dayStart(t)
	}
	if t.Hour() >= endHour {
		// Rolling forward can land on Saturday, so normalize again.
		return c.Normalize(c.dayStart(t.AddDate(0, 0, 1)))
	}
	return t
}

// AddBusinessHours returns the instant reached after consuming hours of
// business time starting at t, skipping nights and weekends. Fractional
// hours are supported. Non-positive and non-finite hours return the
// normalized start unchanged.
func (c Calendar) AddBusinessHours(t time.Time, hours float64) time.Time {
	cur := c.Normalize(t)
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return cur
	}
	remaining := hours
	for remaining > 0 {
		available := c.dayEnd(cur).Sub(cur).Hours()
		if remaining <= available {
			return cur.Add(time.Duration(remaining * float64(time.Hour)))
		}
		remaining -= available
		cur = c.Normalize(c.dayStart(cur.AddDate(0, 0, 1)))
	}
	return cur
}

func (c Calendar) dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), startHour, 0, 0, 0, c.location())
}

func (c Calendar) dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), endHour, 0, 0, 0, c.location())
}
