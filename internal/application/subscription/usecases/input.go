package usecases

import (
	"time"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func parseSelection(days []dto.SelectionDayInput) (vo.Selection, error) {
	parsed := make([]vo.SelectionDay, 0, len(days))
	for _, d := range days {
		day, err := menuvo.ParseWeekday(d.Day)
		if err != nil {
			return vo.Selection{}, errors.NewValidationError("invalid selection day", err.Error())
		}
		meals := make([]menuvo.MealType, 0, len(d.MealTypes))
		for _, raw := range d.MealTypes {
			meal, err := menuvo.ParseMealType(raw)
			if err != nil {
				return vo.Selection{}, errors.NewValidationError("invalid selection meal type", err.Error())
			}
			meals = append(meals, meal)
		}
		parsed = append(parsed, vo.SelectionDay{Day: day, MealTypes: meals})
	}

	selection, err := vo.NewSelection(parsed)
	if err != nil {
		return vo.Selection{}, toAppError(err)
	}
	return selection, nil
}

func parseSubscriptionType(s string) (vo.SubscriptionType, error) {
	t, err := vo.ParseSubscriptionType(s)
	if err != nil {
		return "", errors.NewValidationError("subscription type must be weekly or monthly", err.Error())
	}
	return t, nil
}

func parseStartDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.NewValidationError("start date is required")
	}
	d, err := biztime.ParseDate(s)
	if err != nil {
		return time.Time{}, errors.NewValidationError("start date must be YYYY-MM-DD", err.Error())
	}
	return d, nil
}
