package mappers

import (
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	vo "github.com/tiffin-inc/tiffin/internal/domain/delivery/valueobjects"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
)

type DeliveryMapper interface {
	ToEntity(model *models.DeliveryModel) (*delivery.Delivery, error)
	ToModel(entity *delivery.Delivery) *models.DeliveryModel
	ToEntities(list []*models.DeliveryModel) ([]*delivery.Delivery, error)
}

type DeliveryMapperImpl struct{}

func NewDeliveryMapper() DeliveryMapper {
	return &DeliveryMapperImpl{}
}

func (m *DeliveryMapperImpl) ToEntity(model *models.DeliveryModel) (*delivery.Delivery, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.ParseStatus(model.Status)
	if err != nil {
		return nil, err
	}
	day := menuvo.Weekday(model.DayOfWeek)
	meal := menuvo.MealType(model.MealType)
	if !day.IsValid() || !meal.IsValid() {
		return nil, fmt.Errorf("delivery %d has invalid day %q or meal type %q", model.ID, model.DayOfWeek, model.MealType)
	}

	entity, err := delivery.ReconstructDelivery(
		model.ID,
		model.SubscriptionID,
		model.SubscriptionSID,
		model.ChefID,
		model.SubscriberID,
		model.DeliveryDate,
		day,
		meal,
		model.ItemName,
		model.Quantity,
		status,
		model.DeliveredBy,
		model.DeliveredAt,
		model.Notes,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct delivery: %w", err)
	}
	return entity, nil
}

func (m *DeliveryMapperImpl) ToModel(entity *delivery.Delivery) *models.DeliveryModel {
	if entity == nil {
		return nil
	}
	return &models.DeliveryModel{
		ID:              entity.ID(),
		SubscriptionID:  entity.SubscriptionID(),
		SubscriptionSID: entity.SubscriptionSID(),
		ChefID:          entity.ChefID(),
		SubscriberID:    entity.SubscriberID(),
		DeliveryDate:    entity.DeliveryDate(),
		DayOfWeek:       entity.DayOfWeek().String(),
		MealType:        entity.MealType().String(),
		ItemName:        entity.ItemName(),
		Quantity:        entity.Quantity(),
		Status:          entity.Status().String(),
		DeliveredBy:     entity.DeliveredBy(),
		DeliveredAt:     entity.DeliveredAt(),
		Notes:           entity.Notes(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}
}

func (m *DeliveryMapperImpl) ToEntities(list []*models.DeliveryModel) ([]*delivery.Delivery, error) {
	entities := make([]*delivery.Delivery, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
