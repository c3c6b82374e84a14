package valueobjects

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var titleCaser = cases.Title(language.English)

var validWeekdays = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseWeekday accepts any casing ("monday", "MONDAY") and returns the
// canonical form.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(titleCaser.String(strings.TrimSpace(s)))
	if !w.IsValid() {
		return "", fmt.Errorf("invalid weekday: %q", s)
	}
	return w, nil
}

// WeekdayOf returns the weekday name of a calendar date.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

func (w Weekday) IsValid() bool {
	_, ok := validWeekdays[w]
	return ok
}

func (w Weekday) String() string {
	return string(w)
}

func (w Weekday) TimeWeekday() time.Weekday {
	return validWeekdays[w]
}
