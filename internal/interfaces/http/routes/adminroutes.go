package routes

import (
	"github.com/gin-gonic/gin"

	"medlog/internal/interfaces/http/handlers"
	"medlog/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for the staff backend routes.
type AdminRouteConfig struct {
	SiteHandler     *handlers.SiteHandler
	TerminalHandler *handlers.TerminalHandler
	UserHandler     *handlers.UserHandler
	LogEntryHandler *handlers.LogEntryHandler
	Auth            *middleware.AuthMiddleware
	Permission      *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures the staff backend. Everything requires a JWT;
// per-route casbin checks separate what admins and auditors may do.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	api := engine.Group("/api/v1")
	api.Use(cfg.Auth.RequireAuth())
	{
		sites := api.Group("/sites")
		{
			sites.POST("", cfg.Permission.RequirePermission("site", "create"), cfg.SiteHandler.Create)
			sites.GET("", cfg.Permission.RequirePermission("site", "read"), cfg.SiteHandler.List)
		}

		terminals := api.Group("/terminals")
		{
			terminals.POST("", cfg.Permission.RequirePermission("terminal", "create"), cfg.TerminalHandler.Create)
			terminals.GET("", cfg.Permission.RequirePermission("terminal", "read"), cfg.TerminalHandler.List)
			terminals.PUT("/:id/active", cfg.Permission.RequirePermission("terminal", "update"), cfg.TerminalHandler.SetActive)
			terminals.POST("/:id/pairing-codes", cfg.Permission.RequirePermission("terminal", "pair"), cfg.TerminalHandler.IssueCode)
			terminals.POST("/:id/revoke-sessions", cfg.Permission.RequirePermission("terminal", "revoke"), cfg.TerminalHandler.RevokeSessions)
			terminals.GET("/:id/sessions", cfg.Permission.RequirePermission("terminal", "read"), cfg.TerminalHandler.ListSessions)
			terminals.GET("/:id/audit-events", cfg.Permission.RequirePermission("audit", "read"), cfg.TerminalHandler.ListAuditEvents)
		}

		users := api.Group("/users")
		{
			users.POST("", cfg.Permission.RequirePermission("user", "create"), cfg.UserHandler.Create)
			users.POST("/:id/site-access", cfg.Permission.RequirePermission("user", "update"), cfg.UserHandler.GrantSiteAccess)
		}

		entries := api.Group("/log-entries")
		{
			entries.GET("", cfg.Permission.RequirePermission("logentry", "read"), cfg.LogEntryHandler.List)
			entries.GET("/photo", cfg.Permission.RequirePermission("logentry", "read"), cfg.LogEntryHandler.Photo)
		}
	}
}
