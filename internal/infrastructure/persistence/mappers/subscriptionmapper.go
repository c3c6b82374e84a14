package mappers

import (
	"encoding/json"
	"fmt"

	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}
	subType := vo.SubscriptionType(model.SubscriptionType)
	if !subType.IsValid() {
		return nil, fmt.Errorf("invalid subscription type: %s", model.SubscriptionType)
	}

	var records []models.SelectionDayRecord
	if len(model.Selection) > 0 {
		if err := json.Unmarshal(model.Selection, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal selection of subscription %d: %w", model.ID, err)
		}
	}
	days := make([]vo.SelectionDay, 0, len(records))
	for _, r := range records {
		meals := make([]menuvo.MealType, 0, len(r.MealTypes))
		for _, meal := range r.MealTypes {
			meals = append(meals, menuvo.MealType(meal))
		}
		days = append(days, vo.SelectionDay{Day: menuvo.Weekday(r.Day), MealTypes: meals})
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.SubscriberID,
		model.ChefID,
		model.MenuID,
		model.MenuSID,
		vo.ReconstructSelection(days),
		subType,
		biztime.Truncate(model.StartDate),
		biztime.Truncate(model.EndDate),
		model.TotalPrice,
		status,
		model.AutoRenew,
		model.ContactEmail,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	days := entity.Selection().Days()
	records := make([]models.SelectionDayRecord, 0, len(days))
	for _, d := range days {
		meals := make([]string, 0, len(d.MealTypes))
		for _, meal := range d.MealTypes {
			meals = append(meals, meal.String())
		}
		records = append(records, models.SelectionDayRecord{Day: d.Day.String(), MealTypes: meals})
	}
	selection, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}

	return &models.SubscriptionModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		SubscriberID:     entity.SubscriberID(),
		ChefID:           entity.ChefID(),
		MenuID:           entity.MenuID(),
		MenuSID:          entity.MenuSID(),
		Selection:        selection,
		SubscriptionType: entity.SubscriptionType().String(),
		StartDate:        entity.StartDate(),
		EndDate:          entity.EndDate(),
		TotalPrice:       entity.TotalPrice(),
		Status:           entity.Status().String(),
		AutoRenew:        entity.AutoRenew(),
		ContactEmail:     entity.ContactEmail(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(list []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	out := make([]*subscription.Subscription, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func PeriodToModel(p *subscription.Period) *models.SubscriptionPeriodModel {
	return &models.SubscriptionPeriodModel{
		ID:             p.ID(),
		SubscriptionID: p.SubscriptionID(),
		Kind:           string(p.Kind()),
		BilledFrom:     p.BilledFrom(),
		BilledThrough:  p.BilledThrough(),
		Price:          p.Price(),
		CreatedAt:      p.CreatedAt(),
	}
}

func PeriodToEntity(model *models.SubscriptionPeriodModel) *subscription.Period {
	return subscription.ReconstructPeriod(
		model.ID,
		model.SubscriptionID,
		subscription.PeriodKind(model.Kind),
		model.BilledFrom,
		model.BilledThrough,
		model.Price,
		model.CreatedAt,
	)
}
