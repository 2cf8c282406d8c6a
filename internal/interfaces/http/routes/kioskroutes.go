package routes

import (
	"github.com/gin-gonic/gin"

	"medlog/internal/infrastructure/ratelimit"
	"medlog/internal/interfaces/http/handlers"
	"medlog/internal/interfaces/http/middleware"
)

// KioskRouteConfig holds dependencies for the device-facing routes.
type KioskRouteConfig struct {
	KioskHandler      *handlers.KioskHandler
	SessionMiddleware *middleware.TerminalSessionMiddleware
	RateLimit         *middleware.RateLimitMiddleware
	PairRateLimit     ratelimit.RateLimitConfig
}

// SetupKioskRoutes configures the kiosk routes. Every route runs the session
// resolver; only the pairing endpoint itself is reachable unpaired.
func SetupKioskRoutes(engine *gin.Engine, cfg *KioskRouteConfig) {
	kiosk := engine.Group("/kiosk")
	kiosk.Use(cfg.SessionMiddleware.Resolve())
	{
		kiosk.POST("/pair",
			cfg.RateLimit.LimitByIP("pair", cfg.PairRateLimit),
			cfg.KioskHandler.Pair)

		paired := kiosk.Group("")
		paired.Use(middleware.RequirePairing())
		{
			paired.GET("/session", cfg.KioskHandler.Session)
			paired.POST("/unpair", cfg.KioskHandler.Unpair)
			paired.POST("/log-entries", cfg.KioskHandler.CreateLogEntry)
		}
	}
}
