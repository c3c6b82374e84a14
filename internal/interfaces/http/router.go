package http

import (
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/middleware"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log, "/health"))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupMenuRoutes(c.engine, &routes.MenuRouteConfig{
		MenuHandler:          c.hdlrs.menuHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupSubscriptionRoutes(c.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  c.hdlrs.subscriptionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.rateLimiter,
	})

	routes.SetupDeliveryRoutes(c.engine, &routes.DeliveryRouteConfig{
		DeliveryHandler:      c.hdlrs.deliveryHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}
