// Package clock turns the elapsed-time values of a track log into UTC
// timestamps.
//
// Track logs store each point as milliseconds since local midnight of a
// calendar day that is not part of the file. The operator supplies that day
// as a base date and the zone it was recorded in.
package clock

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DateLayout is the accepted base date format.
	DateLayout = "2006-01-02"

	// TimestampLayout is the GPX time format: seconds precision, always UTC.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrElapsedRange    = errors.New("elapsed time out of range")
	ErrUnknownTimeZone = errors.New("unknown time zone")
)

// BaseDate is a calendar day without time of day or zone.
type BaseDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d BaseDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseBaseDate parses a YYYY-MM-DD date.
func ParseBaseDate(s string) (BaseDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BaseDate{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return BaseDate{}, fmt.Errorf("%w %q (expected YYYY-MM-DD): %v", ErrInvalidDate, s, err)
	}
	y, m, d := t.Date()
	return BaseDate{Year: y, Month: m, Day: d}, nil
}

// ResolveZone returns the zone named by name. An empty name or "Local"
// selects the zone configured for the process.
func ResolveZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimeZone, name, err)
	}
	return loc, nil
}

// ElapsedDuration converts fractional milliseconds to a Duration, rounded to
// the nearest nanosecond.
func ElapsedDuration(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, fmt.Errorf("%w: %v", ErrElapsedRange, ms)
	}
	ns := math.Round(ms * float64(time.Millisecond))
	// float64(math.MaxInt64) rounds up to 2^63, so >= is the overflow check.
	if ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v ms", ErrElapsedRange, ms)
	}
	return time.Duration(ns), nil
}

// Local returns the instant whose wall clock in loc reads base date 00:00
// plus elapsed. The zone offset is the one in effect at that wall time, so a
// track that crosses a daylight saving change keeps its local readings.
func Local(elapsed time.Duration, base BaseDate, loc *time.Location) time.Time {
	sec := int(elapsed / time.Second)
	nsec := int(elapsed % time.Second)
	// time.Date normalizes sec and nsec outside their usual ranges, including
	// negative values.
	return time.Date(base.Year, base.Month, base.Day, 0, 0, sec, nsec, loc)
}

// Format renders t in UTC with whole seconds. Sub-second precision is
// truncated toward the past.
func Format(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Converter converts elapsed milliseconds for one base date and zone.
type Converter struct {
	Base     BaseDate
	Location *time.Location
}

func NewConverter(base BaseDate, loc *time.Location) *Converter {
	if loc == nil {
		loc = time.Local
	}
	return &Converter{Base: base, Location: loc}
}

// Time returns the instant for an elapsed-milliseconds value.
func (c *Converter) Time(ms float64) (time.Time, error) {
	d, err := ElapsedDuration(ms)
	if err != nil {
		return time.Time{}, err
	}
	return Local(d, c.Base, c.Location), nil
}

// Timestamp returns the GPX time string for an elapsed-milliseconds value.
func (c *Converter) Timestamp(ms float64) (string, error) {
	t, err := c.Time(ms)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}
