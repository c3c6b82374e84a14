package menu

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	vo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
)

// ScheduleItem is one priced offering of a menu. Price is nullable so that
// stored data with a missing price can be told apart from a free item.
type ScheduleItem struct {
	Day         vo.Weekday
	MealType    vo.MealType
	Name        string
	Description string
	Price       decimal.NullDecimal
}

func NewScheduleItem(day vo.Weekday, mealType vo.MealType, name, description string, price decimal.Decimal) ScheduleItem {
	return ScheduleItem{
		Day:         day,
		MealType:    mealType,
		Name:        name,
		Description: description,
		Price:       decimal.NewNullDecimal(price),
	}
}

func (i ScheduleItem) Validate() error {
	if !i.Day.IsValid() {
		return fmt.Errorf("%w: day %q", ErrInvalidScheduleItem, i.Day)
	}
	if !i.MealType.IsValid() {
		return fmt.Errorf("%w: meal type %q", ErrInvalidScheduleItem, i.MealType)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required for %s %s", ErrInvalidScheduleItem, i.Day, i.MealType)
	}
	if !i.Price.Valid {
		return fmt.Errorf("%w: price is required for %s %s", ErrInvalidScheduleItem, i.Day, i.MealType)
	}
	if i.Price.Decimal.IsNegative() {
		return fmt.Errorf("%w: price must not be negative for %s %s", ErrInvalidScheduleItem, i.Day, i.MealType)
	}
	return nil
}
