package usecases

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	vo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func toScheduleItems(inputs []dto.ScheduleItemInput) ([]menu.ScheduleItem, error) {
	items := make([]menu.ScheduleItem, 0, len(inputs))
	for idx, in := range inputs {
		day, err := vo.ParseWeekday(in.Day)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("schedule[%d]: invalid day", idx), err.Error())
		}
		meal, err := vo.ParseMealType(in.MealType)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("schedule[%d]: invalid meal type", idx), err.Error())
		}

		item := menu.ScheduleItem{
			Day:         day,
			MealType:    meal,
			Name:        in.Name,
			Description: in.Description,
		}
		if in.Price != nil {
			item.Price = decimal.NewNullDecimal(*in.Price)
		}
		items = append(items, item)
	}
	return items, nil
}
