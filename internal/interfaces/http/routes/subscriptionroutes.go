package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/permission"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig contains dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

// SetupSubscriptionRoutes configures subscription routes.
// All routes require authentication; ownership is checked by the use cases.
// Quote, create and renew are rate limited per user.
// :id is subscription SID (sub_xxx format)
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.SubscriptionHandler
	limit := cfg.RateLimiter.Limit()

	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		subscriptions.POST("/quote", limit, perm.RequirePermission(permission.ResourceSubscription, permission.ActionQuote), h.QuoteSubscription)
		subscriptions.GET("/mine", perm.RequirePermission(permission.ResourceSubscription, permission.ActionRead), h.ListMySubscriptions)
		subscriptions.GET("/chef", perm.RequirePermission(permission.ResourceSubscription, permission.ActionListIncoming), h.ListChefSubscriptions)

		subscriptions.POST("", limit, perm.RequirePermission(permission.ResourceSubscription, permission.ActionCreate), h.CreateSubscription)

		subscriptions.GET("/:id", perm.RequirePermission(permission.ResourceSubscription, permission.ActionRead), h.GetSubscription)
		subscriptions.PATCH("/:id/status", perm.RequirePermission(permission.ResourceSubscription, permission.ActionUpdateStatus), h.UpdateStatus)
		subscriptions.POST("/:id/renew", limit, perm.RequirePermission(permission.ResourceSubscription, permission.ActionRenew), h.RenewSubscription)
	}
}
