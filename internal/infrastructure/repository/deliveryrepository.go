package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/mappers"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type DeliveryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DeliveryMapper
	logger logger.Interface
}

func NewDeliveryRepository(db *gorm.DB, logger logger.Interface) delivery.Repository {
	return &DeliveryRepositoryImpl{
		db:     db,
		mapper: mappers.NewDeliveryMapper(),
		logger: logger,
	}
}

func (r *DeliveryRepositoryImpl) Create(ctx context.Context, deliveryEntity *delivery.Delivery) error {
	model := r.mapper.ToModel(deliveryEntity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			r.logger.Warnw("delivery already recorded", "subscription_id", model.SubscriptionID, "delivery_date", model.DeliveryDate, "meal_type", model.MealType)
			return delivery.ErrDuplicateDelivery
		}
		r.logger.Errorw("failed to create delivery in database", "error", err)
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	if err := deliveryEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set delivery ID: %w", err)
	}

	r.logger.Infow("delivery created", "id", model.ID, "subscription_id", model.SubscriptionID, "status", model.Status)
	return nil
}

// Update writes the status fields guarded by the loaded version.
func (r *DeliveryRepositoryImpl) Update(ctx context.Context, deliveryEntity *delivery.Delivery) error {
	model := r.mapper.ToModel(deliveryEntity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.DeliveryModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"delivered_by": model.DeliveredBy,
			"delivered_at": model.DeliveredAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update delivery", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update delivery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("delivery version mismatch", "id", model.ID, "version", model.Version-1)
		return delivery.ErrConcurrentUpdate
	}
	return nil
}

func (r *DeliveryRepositoryImpl) FindByKey(ctx context.Context, key delivery.Key) (*delivery.Delivery, error) {
	var model models.DeliveryModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND delivery_date = ? AND day_of_week = ? AND meal_type = ? AND item_name = ?",
			key.SubscriptionID, biztime.Truncate(key.Date), key.Day.String(), key.Meal.String(), key.ItemName).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find delivery", "subscription_id", key.SubscriptionID, "error", err)
		return nil, fmt.Errorf("failed to find delivery: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *DeliveryRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	var list []*models.DeliveryModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("delivery_date ASC, id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list deliveries", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return r.mapper.ToEntities(list)
}

// isDuplicateKey recognises unique violations from drivers that translate
// errors and from the sqlite driver, which does not.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
