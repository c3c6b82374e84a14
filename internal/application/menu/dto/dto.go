package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
)

type ScheduleItemDTO struct {
	Day         string           `json:"day"`
	MealType    string           `json:"meal_type"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price"`
}

type MenuDTO struct {
	ID              string            `json:"id"`
	ChefID          uint              `json:"chef_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DescriptionHTML string            `json:"description_html,omitempty"`
	Schedule        []ScheduleItemDTO `json:"schedule"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ScheduleItemInput is a schedule item as supplied by a chef. Day and meal
// type are parsed case-insensitively.
type ScheduleItemInput struct {
	Day         string
	MealType    string
	Name        string
	Description string
	Price       *decimal.Decimal
}

func ToMenuDTO(m *menu.Menu, descriptionHTML string) *MenuDTO {
	if m == nil {
		return nil
	}

	items := m.Schedule()
	schedule := make([]ScheduleItemDTO, 0, len(items))
	for _, item := range items {
		out := ScheduleItemDTO{
			Day:         item.Day.String(),
			MealType:    item.MealType.String(),
			Name:        item.Name,
			Description: item.Description,
		}
		if item.Price.Valid {
			price := item.Price.Decimal
			out.Price = &price
		}
		schedule = append(schedule, out)
	}

	return &MenuDTO{
		ID:              m.SID(),
		ChefID:          m.ChefID(),
		Title:           m.Title(),
		Description:     m.Description(),
		DescriptionHTML: descriptionHTML,
		Schedule:        schedule,
		CreatedAt:       m.CreatedAt(),
		UpdatedAt:       m.UpdatedAt(),
	}
}
