package routes

import (
	"github.com/gin-gonic/gin"

	"medlog/internal/infrastructure/ratelimit"
	"medlog/internal/interfaces/http/handlers"
	"medlog/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for staff authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	Auth           *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
	LoginRateLimit ratelimit.RateLimitConfig
}

// SetupAuthRoutes configures staff authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login",
			cfg.RateLimit.LimitByIP("login", cfg.LoginRateLimit),
			cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.Auth.RequireAuth(), cfg.AuthHandler.Me)
	}
}
