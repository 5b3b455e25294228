// Package civil holds the calendar-day date type shared by projects and tasks.
//
// The remote API is loose about date formats: it returns RFC3339 timestamps
// for stored values but echoes back whatever the client sent, which has
// included bare YYYY-MM-DD and US-style M/D/YYYY strings. Date accepts all of
// them and answers day-granularity questions in a caller-supplied location.
package civil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the layout of HTML date inputs and date-only API values.
	InputLayout = "2006-01-02"
)

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

var dayLayouts = []string{
	InputLayout,
	"1/2/2006",
	"01/02/2006",
}

// Date is either an instant (timestamp from the API) or a bare calendar day.
// The zero value means "no date".
type Date struct {
	t        time.Time
	dateOnly bool
}

// Parse recognises every date format the API is known to emit.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, nil
		}
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t, dateOnly: true}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognised date %q", s)
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime wraps an instant.
func FromTime(t time.Time) Date {
	return Date{t: t}
}

// DayOf builds a bare calendar day.
func DayOf(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), dateOnly: true}
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Day returns local midnight of the day d falls on in loc. Bare days keep
// their calendar date regardless of loc. The zero Date yields the zero time.
func (d Date) Day(loc *time.Location) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	if d.dateOnly {
		y, m, dd := d.t.Date()
		return time.Date(y, m, dd, 0, 0, 0, 0, loc)
	}
	return Midnight(d.t, loc)
}

// Stored returns d the way the API keeps it: a bare day becomes the instant
// at UTC midnight of that day. Instants are returned unchanged.
func (d Date) Stored() Date {
	if !d.dateOnly {
		return d
	}
	return Date{t: d.t}
}

// Entered is the calendar day d was submitted as, in InputLayout. The API
// stores a submitted day as UTC midnight, so instants are read back in UTC.
func (d Date) Entered() string {
	return d.Format(InputLayout, time.UTC)
}

// SameDay reports whether d and o fall on the same calendar day in loc.
// A zero Date is never the same day as anything.
func (d Date) SameDay(o Date, loc *time.Location) bool {
	if d.IsZero() || o.IsZero() {
		return false
	}
	return d.Day(loc).Equal(o.Day(loc))
}

// Format renders the day in loc, or "" for the zero Date.
func (d Date) Format(layout string, loc *time.Location) string {
	if d.IsZero() {
		return ""
	}
	return d.Day(loc).Format(layout)
}

// Midnight truncates t to 00:00 of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, dd := t.In(loc).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if d.dateOnly {
		return json.Marshal(d.t.Format(InputLayout))
	}
	return json.Marshal(d.t.Format(time.RFC3339Nano))
}

// UnmarshalJSON is lenient: null and unparseable strings both decode to the
// zero Date so one malformed record does not fail a whole list.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}
