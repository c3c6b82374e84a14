// Package biztime provides calendar-date helpers.
//
// Subscription dates are calendar days, not instants. A date is represented
// as a time.Time at 00:00 UTC of that day; the business timezone is only
// used to decide which calendar day an instant falls on.
package biztime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultTimezone = "UTC"
	DateLayout      = "2006-01-02"
)

// zone holds the business timezone. The location is published atomically
// so Location never races with Init.
type zone struct {
	once sync.Once
	loc  atomic.Pointer[time.Location]
	err  error
}

var business zone

func (z *zone) init(tz string) error {
	z.once.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			z.err = err
			return
		}
		z.loc.Store(loc)
	})
	return z.err
}

// location falls back to UTC until init has stored a zone.
func (z *zone) location() *time.Location {
	if loc := z.loc.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Init sets the business timezone once. Empty tz means UTC. Later calls
// return the result of the first one.
func Init(tz string) error {
	return business.init(tz)
}

// Location returns the business timezone, or UTC before Init has succeeded.
func Location() *time.Location {
	return business.location()
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateOf returns the business calendar day containing t.
func DateOf(t time.Time) time.Time {
	local := t.In(Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of an already calendar-valued time, keeping
// its UTC year, month and day.
func Truncate(date time.Time) time.Time {
	u := date.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current business calendar day.
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses YYYY-MM-DD into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// AddDays moves a calendar date by n days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AddMonths moves a calendar date by n months keeping the day of month, or
// the last day of the target month when it is shorter (Jan 31 + 1 = Feb 28/29).
func AddMonths(date time.Time, n int) time.Time {
	firstOfTarget := time.Date(date.Year(), date.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := date.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}
