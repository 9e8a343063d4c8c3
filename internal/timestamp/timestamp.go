// Package timestamp turns caller-supplied match dates into canonical UTC
// instants and maps instants onto reporting days.
package timestamp

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/role-ladder/internal/apperr"
)

const (
	// DateLayout is a calendar day, e.g. "2025-06-01".
	DateLayout = "2006-01-02"
	// InstantLayout is the canonical UTC form every stored instant is rendered in.
	InstantLayout = "2006-01-02T15:04:05.000Z"
)

// Kind says how a raw value must be anchored to the time line.
type Kind int

const (
	// KindDate is a bare calendar day in the local zone. It resolves to local midnight.
	KindDate Kind = iota + 1
	// KindLocalDateTime is a wall clock reading in the local zone without an offset.
	KindLocalDateTime
	// KindInstant is an absolute point in time ("...Z" or an explicit offset).
	KindInstant
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindLocalDateTime:
		return "local-datetime"
	case KindInstant:
		return "instant"
	default:
		return "unknown"
	}
}

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Value is a parsed but not yet anchored date/time.
type Value struct {
	Kind Kind
	// wall holds the clock fields for KindDate and KindLocalDateTime (in UTC as a
	// carrier only) and the absolute time for KindInstant.
	wall time.Time
}

// Parse classifies raw by layout. It never consults a zone.
func Parse(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return Value{Kind: KindDate, wall: t}, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Value{Kind: KindLocalDateTime, wall: t}, nil
		}
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Value{Kind: KindInstant, wall: t.UTC()}, nil
		}
	}
	return Value{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// In anchors v to the time line, reading wall clock values in loc.
// The result is in UTC with millisecond precision.
func (v Value) In(loc *time.Location) time.Time {
	var t time.Time
	switch v.Kind {
	case KindInstant:
		t = v.wall
	default:
		w := v.wall
		t = time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
	}
	return t.UTC().Truncate(time.Millisecond)
}

// Format renders t in the canonical instant layout.
func Format(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// Normalizer anchors local values in the deployment zone and buckets instants
// into days of the reporting zone.
type Normalizer struct {
	local     *time.Location
	reporting *time.Location
}

// NewNormalizer returns a Normalizer. Nil locations default to UTC.
func NewNormalizer(local, reporting *time.Location) *Normalizer {
	if local == nil {
		local = time.UTC
	}
	if reporting == nil {
		reporting = time.UTC
	}
	return &Normalizer{local: local, reporting: reporting}
}

// Normalize parses raw and returns the UTC instant it denotes.
// Malformed input yields an apperr InvalidTimestamp error.
func (n *Normalizer) Normalize(raw string) (time.Time, error) {
	v, err := Parse(raw)
	if err != nil {
		return time.Time{}, apperr.Timestamp(err)
	}
	return v.In(n.local), nil
}

// NormalizeString is Normalize followed by Format.
func (n *Normalizer) NormalizeString(raw string) (string, error) {
	t, err := n.Normalize(raw)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// DayWindow returns the half-open interval [start, end) covering the calendar
// day date in the reporting zone.
func (n *Normalizer) DayWindow(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), n.reporting)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Timestamp(fmt.Errorf("invalid date %q: %w", date, err))
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// DayOf returns the reporting-zone calendar day t falls on.
func (n *Normalizer) DayOf(t time.Time) string {
	return t.In(n.reporting).Format(DateLayout)
}
