package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	vo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
)

type MenuMapper interface {
	ToEntity(model *models.MenuModel) (*menu.Menu, error)
	ToModel(entity *menu.Menu) (*models.MenuModel, error)
	ToEntities(models []*models.MenuModel) ([]*menu.Menu, error)
}

type MenuMapperImpl struct{}

func NewMenuMapper() MenuMapper {
	return &MenuMapperImpl{}
}

func (m *MenuMapperImpl) ToEntity(model *models.MenuModel) (*menu.Menu, error) {
	if model == nil {
		return nil, nil
	}

	var records []models.ScheduleItemRecord
	if len(model.Schedule) > 0 {
		if err := json.Unmarshal(model.Schedule, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedule of menu %d: %w", model.ID, err)
		}
	}

	// stored items are not validated here; bad prices are reported by pricing
	schedule := make([]menu.ScheduleItem, 0, len(records))
	for _, r := range records {
		item := menu.ScheduleItem{
			Day:         vo.Weekday(r.Day),
			MealType:    vo.MealType(r.MealType),
			Name:        r.Name,
			Description: r.Description,
		}
		if r.Price != nil {
			price, err := decimal.NewFromString(*r.Price)
			if err != nil {
				return nil, fmt.Errorf("menu %d: %w: price %q", model.ID, menu.ErrInvalidScheduleItem, *r.Price)
			}
			item.Price = decimal.NewNullDecimal(price)
		}
		schedule = append(schedule, item)
	}

	entity, err := menu.ReconstructMenu(
		model.ID,
		model.SID,
		model.ChefID,
		model.Title,
		model.Description,
		schedule,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct menu entity: %w", err)
	}
	return entity, nil
}

func (m *MenuMapperImpl) ToModel(entity *menu.Menu) (*models.MenuModel, error) {
	if entity == nil {
		return nil, nil
	}

	schedule := entity.Schedule()
	records := make([]models.ScheduleItemRecord, 0, len(schedule))
	for _, item := range schedule {
		r := models.ScheduleItemRecord{
			Day:         item.Day.String(),
			MealType:    item.MealType.String(),
			Name:        item.Name,
			Description: item.Description,
		}
		if item.Price.Valid {
			s := item.Price.Decimal.String()
			r.Price = &s
		}
		records = append(records, r)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule: %w", err)
	}

	return &models.MenuModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		ChefID:      entity.ChefID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Schedule:    data,
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *MenuMapperImpl) ToEntities(list []*models.MenuModel) ([]*menu.Menu, error) {
	out := make([]*menu.Menu, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
