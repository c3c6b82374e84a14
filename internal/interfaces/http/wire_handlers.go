package http

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	menuHandler         *handlers.MenuHandler
	subscriptionHandler *handlers.SubscriptionHandler
	deliveryHandler     *handlers.DeliveryHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs

	checks := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	c.hdlrs = &allHandlers{
		menuHandler: handlers.NewMenuHandler(
			ucs.createMenuUC, ucs.updateMenuUC, ucs.getMenuUC, ucs.listChefMenusUC, ucs.deleteMenuUC, c.log,
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			ucs.quoteSubscriptionUC, ucs.createSubscriptionUC, ucs.getSubscriptionUC,
			ucs.listSubscriptionsUC, ucs.updateStatusUC, ucs.renewSubscriptionUC, c.log,
		),
		deliveryHandler: handlers.NewDeliveryHandler(ucs.markDeliveredUC, ucs.listDeliveriesUC, c.log),
		healthHandler:   handlers.NewHealthHandler(checks),
	}
}
