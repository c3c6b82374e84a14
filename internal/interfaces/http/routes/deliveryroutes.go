package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/permission"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/middleware"
)

type DeliveryRouteConfig struct {
	DeliveryHandler      *handlers.DeliveryHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupDeliveryRoutes configures delivery routes. Only the chef of a
// subscription may mark its meals; the use case checks ownership.
func SetupDeliveryRoutes(engine *gin.Engine, cfg *DeliveryRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.DeliveryHandler
	auth := cfg.AuthMiddleware.RequireAuth()

	deliveries := engine.Group("/deliveries")
	deliveries.Use(auth)
	{
		deliveries.POST("/mark-delivered", perm.RequirePermission(permission.ResourceDelivery, permission.ActionMarkDelivered), h.MarkDelivered)
	}

	engine.GET("/subscriptions/:id/deliveries", auth,
		perm.RequirePermission(permission.ResourceDelivery, permission.ActionRead), h.ListDeliveries)
}
