package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/mappers"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/id"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set subscription ID", "error", err)
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created successfully", "id", model.ID, "subscriber_id", model.SubscriberID, "menu_id", model.MenuID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	if id.ValidateSubscriptionID(sid) != nil {
		return nil, nil
	}
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

// Update writes the mutable fields guarded by the version the aggregate was
// loaded at. Each aggregate mutation increments the version exactly once.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", subscriptionEntity.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"end_date":      model.EndDate,
			"total_price":   model.TotalPrice,
			"auto_renew":    model.AutoRenew,
			"contact_email": model.ContactEmail,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version mismatch", "id", model.ID, "version", model.Version-1)
		return subscription.ErrConcurrentUpdate
	}

	r.logger.Infow("subscription updated successfully", "id", model.ID, "status", model.Status, "version", model.Version)
	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	var (
		list  []*models.SubscriptionModel
		total int64
	)

	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})

	if filter.SubscriberID != nil {
		query = query.Where("subscriber_id = ?", *filter.SubscriberID)
	}
	if filter.ChefID != nil {
		query = query.Where("chef_id = ?", *filter.ChefID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.SubscriptionType != nil {
		query = query.Where("subscription_type = ?", filter.SubscriptionType.String())
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	if err := query.Order("created_at DESC, id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, total, nil
}

// FindExpired returns active and paused subscriptions whose end date is
// before today.
func (r *SubscriptionRepositoryImpl) FindExpired(ctx context.Context, today time.Time) ([]*subscription.Subscription, error) {
	var list []*models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("end_date < ?", today).
		Where("status IN ?", []string{vo.StatusActive.String(), vo.StatusPaused.String()}).
		Order("end_date ASC, id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to find expired subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, nil
}

// FindDueForRenewal returns active auto-renewing subscriptions ending on or
// before endingOnOrBefore.
func (r *SubscriptionRepositoryImpl) FindDueForRenewal(ctx context.Context, endingOnOrBefore time.Time) ([]*subscription.Subscription, error) {
	var list []*models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("auto_renew = ?", true).
		Where("status = ?", vo.StatusActive.String()).
		Where("end_date <= ?", endingOnOrBefore).
		Order("end_date ASC, id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to find subscriptions due for renewal", "error", err)
		return nil, fmt.Errorf("failed to find subscriptions due for renewal: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, nil
}

type SubscriptionPeriodRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionPeriodRepository(db *gorm.DB, logger logger.Interface) subscription.PeriodRepository {
	return &SubscriptionPeriodRepositoryImpl{db: db, logger: logger}
}

func (r *SubscriptionPeriodRepositoryImpl) Append(ctx context.Context, period *subscription.Period) error {
	model := mappers.PeriodToModel(period)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append subscription period", "subscription_id", model.SubscriptionID, "error", err)
		return fmt.Errorf("failed to append subscription period: %w", err)
	}
	period.SetID(model.ID)
	return nil
}

func (r *SubscriptionPeriodRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Period, error) {
	var list []*models.SubscriptionPeriodModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("billed_from ASC, id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list subscription periods", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list subscription periods: %w", err)
	}

	out := make([]*subscription.Period, 0, len(list))
	for _, model := range list {
		out = append(out, mappers.PeriodToEntity(model))
	}
	return out, nil
}
