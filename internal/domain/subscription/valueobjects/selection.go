package valueobjects

import (
	"errors"
	"fmt"

	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
)

var (
	ErrEmptySelection        = errors.New("selection must contain at least one day")
	ErrDuplicateSelectionDay = errors.New("selection contains a day more than once")
	ErrInvalidSelectionDay   = errors.New("invalid selection day")
)

// SelectionDay is one chosen weekday with the meal types wanted on it.
type SelectionDay struct {
	Day       menuvo.Weekday
	MealTypes []menuvo.MealType
}

// Selection is the subscriber's ordered choice of days and meal types. It is
// immutable once created.
type Selection struct {
	days []SelectionDay
}

// NewSelection validates a selection supplied at creation time: at least one
// day, each day at most once, each day with at least one valid meal type.
// Repeated meal types within a day are collapsed.
func NewSelection(days []SelectionDay) (Selection, error) {
	if len(days) == 0 {
		return Selection{}, ErrEmptySelection
	}

	seen := make(map[menuvo.Weekday]bool, len(days))
	out := make([]SelectionDay, 0, len(days))
	for _, d := range days {
		if !d.Day.IsValid() {
			return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelectionDay, d.Day)
		}
		if seen[d.Day] {
			return Selection{}, fmt.Errorf("%w: %s", ErrDuplicateSelectionDay, d.Day)
		}
		seen[d.Day] = true

		if len(d.MealTypes) == 0 {
			return Selection{}, fmt.Errorf("%w: %s has no meal types", ErrInvalidSelectionDay, d.Day)
		}
		meals := make([]menuvo.MealType, 0, len(d.MealTypes))
		seenMeal := make(map[menuvo.MealType]bool, len(d.MealTypes))
		for _, m := range d.MealTypes {
			if !m.IsValid() {
				return Selection{}, fmt.Errorf("%w: %s has invalid meal type %q", ErrInvalidSelectionDay, d.Day, m)
			}
			if seenMeal[m] {
				continue
			}
			seenMeal[m] = true
			meals = append(meals, m)
		}
		out = append(out, SelectionDay{Day: d.Day, MealTypes: meals})
	}

	return Selection{days: out}, nil
}

// ReconstructSelection restores a stored selection as-is, without the
// creation-time checks.
func ReconstructSelection(days []SelectionDay) Selection {
	return Selection{days: copyDays(days)}
}

// Days returns a copy of the selected days in their original order.
func (s Selection) Days() []SelectionDay {
	return copyDays(s.days)
}

func (s Selection) IsEmpty() bool {
	return len(s.days) == 0
}

// Includes reports whether meal was chosen on day.
func (s Selection) Includes(day menuvo.Weekday, meal menuvo.MealType) bool {
	for _, d := range s.days {
		if d.Day != day {
			continue
		}
		for _, m := range d.MealTypes {
			if m == meal {
				return true
			}
		}
	}
	return false
}

func copyDays(days []SelectionDay) []SelectionDay {
	out := make([]SelectionDay, len(days))
	for i, d := range days {
		out[i] = SelectionDay{
			Day:       d.Day,
			MealTypes: append([]menuvo.MealType(nil), d.MealTypes...),
		}
	}
	return out
}
