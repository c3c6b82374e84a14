package valueobjects

import (
	"fmt"
	"strings"
)

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
)

var ValidMealTypes = map[MealType]bool{
	Breakfast: true,
	Lunch:     true,
	Dinner:    true,
}

func ParseMealType(s string) (MealType, error) {
	m := MealType(titleCaser.String(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid meal type: %q", s)
	}
	return m, nil
}

func (m MealType) IsValid() bool {
	return ValidMealTypes[m]
}

func (m MealType) String() string {
	return string(m)
}
