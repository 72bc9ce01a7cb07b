package sla

import (
	"math"
	"strings"
	"time"
)

// Overrides maps a normalized status key to a business-hour SLA offset.
// A missing key means the built-in defaults apply.
type Overrides map[string]float64

// TicketRef carries the ticket fields the deadline engine reads.
// Timestamps are ISO-8601 strings as sent by the upstream API; empty
// strings mean absent.
type TicketRef struct {
	Status          string
	CreatedAt       string
	UpdatedAt       string
	StatusUpdatedAt string
}

// Built-in SLA offsets in business hours. Statuses not listed here and
// not overridden carry no deadline.
var defaultOffsets = map[string]float64{
	"new":         4,
	"in_progress": 72,
}

// Engine computes next-action-due deadlines against a business calendar.
// It is stateless and safe for concurrent use.
type Engine struct {
	cal Calendar
}

// NewEngine builds an engine over cal.
func NewEngine(cal Calendar) Engine {
	return Engine{cal: cal}
}

// Calendar returns the engine's business calendar.
func (e Engine) Calendar() Calendar {
	return e.cal
}

// NextActionDue resolves the ticket's SLA offset and advances its
// reference timestamp by that many business hours. The second return is
// false when no deadline applies: unknown status, missing reference
// timestamp, or an unparseable timestamp. It never panics and never
// mutates its inputs.
func (e Engine) NextActionDue(ticket TicketRef, overrides Overrides) (time.Time, bool) {
	hours, ok := resolveOffset(NormalizeStatus(ticket.Status), overrides)
	if !ok {
		return time.Time{}, false
	}
	ref, ok := e.referenceTime(ticket)
	if !ok {
		return time.Time{}, false
	}
	return e.cal.AddBusinessHours(ref, hours), true
}

// NormalizeStatus lower-cases a status and collapses whitespace runs to
// single underscores, so "In Progress", "in progress" and "in_progress"
// all map to the same key.
func NormalizeStatus(status string) string {
	return strings.Join(strings.Fields(strings.ToLower(status)), "_")
}

func resolveOffset(status string, overrides Overrides) (float64, bool) {
	if v, ok := overrides[status]; ok && v >= 0 && !math.IsInf(v, 0) {
		return v, true
	}
	v, ok := defaultOffsets[status]
	return v, ok
}

// referenceTime picks the first present timestamp by precedence
// status_updated_at > updated_at > created_at and parses it. A present
// but unparseable value yields no reference, not a fallback to the next
// field.
func (e Engine) referenceTime(ticket TicketRef) (time.Time, bool) {
	for _, raw := range []string{ticket.StatusUpdatedAt, ticket.UpdatedAt, ticket.CreatedAt} {
		if raw == "" {
			continue
		}
		t, err := e.parseTimestamp(raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Zoneless layouts are interpreted in the calendar's location.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (e Engine) parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	var lastErr error
	for _, layout := range zonelessLayouts {
		t, err := time.ParseInLocation(layout, raw, e.cal.location())
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
