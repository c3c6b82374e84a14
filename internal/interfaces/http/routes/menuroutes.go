// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/permission"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/middleware"
)

// MenuRouteConfig contains dependencies for menu routes.
type MenuRouteConfig struct {
	MenuHandler          *handlers.MenuHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMenuRoutes configures menu routes.
// Reads are public; writes require a chef who owns the menu.
// :id is menu SID (menu_xxx format)
func SetupMenuRoutes(engine *gin.Engine, cfg *MenuRouteConfig) {
	perm := cfg.PermissionMiddleware

	menus := engine.Group("/menus")
	{
		menus.GET("/:id", cfg.MenuHandler.GetMenu)

		authed := menus.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		authed.POST("", perm.RequirePermission(permission.ResourceMenu, permission.ActionCreate), cfg.MenuHandler.CreateMenu)
		authed.PUT("/:id", perm.RequirePermission(permission.ResourceMenu, permission.ActionUpdate), cfg.MenuHandler.UpdateMenu)
		authed.DELETE("/:id", perm.RequirePermission(permission.ResourceMenu, permission.ActionDelete), cfg.MenuHandler.DeleteMenu)
	}

	engine.GET("/chefs/:chef_id/menus", cfg.MenuHandler.ListChefMenus)
}
