package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	// Embedded zone database so America/New_York resolves on minimal images.
	_ "time/tzdata"
)

// DateFormat is the ISO-8601 calendar date layout used on the wire and in the database.
const DateFormat = "2006-01-02"

// Date is a civil calendar date with day-level granularity and no zone.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date, so NewDate(2025, 3, 0) is 2025-02-28.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// DateIn returns the calendar date of t as observed in loc.
func DateIn(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = DefaultLocation()
	}
	return DateOf(t.In(loc))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Year() int                { return d.y }
func (d Date) Month() time.Month        { return d.m }
func (d Date) Day() int                 { return d.d }
func (d Date) IsZero() bool             { return d.y == 0 && d.m == 0 && d.d == 0 }
func (d Date) Weekday() time.Weekday    { return d.Time().Weekday() }
func (d Date) String() string           { return d.Time().Format(DateFormat) }
func (d Date) Before(x Date) bool       { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool        { return d.Time().After(x.Time()) }
func (d Date) AddDays(n int) Date       { return NewDate(d.y, d.m, d.d+n) }
func (d Date) MonthKey() string         { return d.Time().Format("2006-01") }
func (d Date) Format(lay string) string { return d.Time().Format(lay) }

// Time returns midnight UTC of the date, the representation stored in DATE columns.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is an inclusive interval of calendar dates.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// NewRange builds a range, swapping the bounds when from is after to.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains reports whether date lies within the range, bounds included.
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }

// DefaultLocation is the civil calendar every day boundary is computed in.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}
