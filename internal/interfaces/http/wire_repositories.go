package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/cache"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/repository"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	menuRepo         menu.Repository
	subscriptionRepo subscription.Repository
	periodRepo       subscription.PeriodRepository
	deliveryRepo     delivery.Repository
}

// newRepositories creates all repository instances from the database
// connection. Menu reads go through Redis when a client is given.
func newRepositories(db *gorm.DB, redisClient *redis.Client, log logger.Interface) *repositories {
	var menuRepo menu.Repository = repository.NewMenuRepository(db, log)
	if redisClient != nil {
		menuRepo = cache.NewCachedMenuRepository(menuRepo, redisClient, log)
	}

	return &repositories{
		menuRepo:         menuRepo,
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		periodRepo:       repository.NewSubscriptionPeriodRepository(db, log),
		deliveryRepo:     repository.NewDeliveryRepository(db, log),
	}
}
