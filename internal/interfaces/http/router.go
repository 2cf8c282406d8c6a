package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	kioskusecases "medlog/internal/application/kiosk/usecases"
	siteusecases "medlog/internal/application/site/usecases"
	terminalusecases "medlog/internal/application/terminal/usecases"
	userusecases "medlog/internal/application/user/usecases"
	"medlog/internal/domain/permission"
	"medlog/internal/infrastructure/auth"
	"medlog/internal/infrastructure/config"
	"medlog/internal/infrastructure/ratelimit"
	"medlog/internal/infrastructure/repository"
	"medlog/internal/infrastructure/token"
	"medlog/internal/interfaces/http/handlers"
	"medlog/internal/interfaces/http/middleware"
	"medlog/internal/interfaces/http/routes"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

// Router wires repositories, use cases, handlers and middleware into a gin
// engine.
type Router struct {
	engine     *gin.Engine
	database   *gorm.DB
	cfg        *config.Config
	redis      *redis.Client
	enforcer   permission.PermissionEnforcer
	photoStore kioskusecases.PhotoStore
	logger     logger.Interface
}

func NewRouter(
	database *gorm.DB,
	cfg *config.Config,
	redisClient *redis.Client,
	enforcer permission.PermissionEnforcer,
	photoStore kioskusecases.PhotoStore,
	log logger.Interface,
) *Router {
	return &Router{
		engine:     gin.New(),
		database:   database,
		cfg:        cfg,
		redis:      redisClient,
		enforcer:   enforcer,
		photoStore: photoStore,
		logger:     log,
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes builds the full route tree.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Repositories
	siteRepo := repository.NewSiteRepository(r.database)
	terminalRepo := repository.NewTerminalRepository(r.database)
	codeRepo := repository.NewPairingCodeRepository(r.database)
	sessionRepo := repository.NewTerminalSessionRepository(r.database)
	userRepo := repository.NewUserRepository(r.database)
	entryRepo := repository.NewLogEntryRepository(r.database)
	auditRepo := repository.NewAuditEventRepository(r.database)

	txManager := db.NewTransactionManager(r.database)
	tokenGen := token.NewTokenGenerator()
	jwtService := auth.NewJWTService(r.cfg.Auth.JWT.Secret, r.cfg.Auth.JWT.AccessExpMinutes)
	passwordHasher := auth.NewBcryptPasswordHasher(r.cfg.Auth.Password.BcryptCost)

	var limiter ratelimit.RateLimiter
	if r.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(r.redis)
	}

	// Use cases
	pairUC := terminalusecases.NewPairTerminalUseCase(
		codeRepo, terminalRepo, sessionRepo, auditRepo, tokenGen, txManager, r.cfg.Session, r.logger)
	resolveUC := terminalusecases.NewResolveTerminalUseCase(sessionRepo, terminalRepo, tokenGen, r.logger)
	issueCodeUC := terminalusecases.NewIssuePairingCodeUseCase(
		codeRepo, terminalRepo, auditRepo, txManager, r.cfg.Pairing, r.logger)
	revokeUC := terminalusecases.NewRevokeSessionsUseCase(sessionRepo, terminalRepo, auditRepo, r.logger)
	createTerminalUC := terminalusecases.NewCreateTerminalUseCase(terminalRepo, siteRepo, r.logger)
	setActiveUC := terminalusecases.NewSetTerminalActiveUseCase(terminalRepo, sessionRepo, auditRepo, r.logger)
	listTerminalsUC := terminalusecases.NewListTerminalsUseCase(terminalRepo)
	listSessionsUC := terminalusecases.NewListTerminalSessionsUseCase(sessionRepo, terminalRepo)
	listAuditUC := terminalusecases.NewListAuditEventsUseCase(auditRepo, terminalRepo)

	createSiteUC := siteusecases.NewCreateSiteUseCase(siteRepo, r.logger)
	listSitesUC := siteusecases.NewListSitesUseCase(siteRepo, userRepo)

	loginUC := userusecases.NewLoginUseCase(userRepo, passwordHasher, jwtService, r.logger)
	currentUserUC := userusecases.NewGetCurrentUserUseCase(userRepo)
	createUserUC := userusecases.NewCreateUserUseCase(userRepo, passwordHasher, r.enforcer, r.logger)
	grantAccessUC := userusecases.NewGrantSiteAccessUseCase(userRepo, siteRepo, r.logger)

	registerEntryUC := kioskusecases.NewRegisterLogEntryUseCase(entryRepo, r.photoStore, r.logger)
	listEntriesUC := kioskusecases.NewListLogEntriesUseCase(entryRepo, userRepo)

	// Middleware
	sessionMW := middleware.NewTerminalSessionMiddleware(resolveUC, r.logger)
	authMW := middleware.NewAuthMiddleware(jwtService, r.logger)
	permissionMW := middleware.NewPermissionMiddleware(r.enforcer, r.logger)
	rateLimitMW := middleware.NewRateLimitMiddleware(limiter, r.logger)

	// Handlers
	kioskHandler := handlers.NewKioskHandler(pairUC, registerEntryUC, r.cfg.Cookie)
	terminalHandler := handlers.NewTerminalHandler(
		createTerminalUC, listTerminalsUC, setActiveUC, issueCodeUC, revokeUC, listSessionsUC, listAuditUC)
	siteHandler := handlers.NewSiteHandler(createSiteUC, listSitesUC)
	authHandler := handlers.NewAuthHandler(loginUC, currentUserUC)
	userHandler := handlers.NewUserHandler(createUserUC, grantAccessUC)
	logEntryHandler := handlers.NewLogEntryHandler(listEntriesUC, r.photoStore)

	routes.SetupKioskRoutes(r.engine, &routes.KioskRouteConfig{
		KioskHandler:      kioskHandler,
		SessionMiddleware: sessionMW,
		RateLimit:         rateLimitMW,
		PairRateLimit: ratelimit.RateLimitConfig{
			RequestsPerMinute: r.cfg.RateLimit.PairPerMinute,
			RequestsPerHour:   r.cfg.RateLimit.PairPerHour,
		},
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: authHandler,
		Auth:        authMW,
		RateLimit:   rateLimitMW,
		LoginRateLimit: ratelimit.RateLimitConfig{
			RequestsPerMinute: r.cfg.RateLimit.LoginPerMinute,
		},
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		SiteHandler:     siteHandler,
		TerminalHandler: terminalHandler,
		UserHandler:     userHandler,
		LogEntryHandler: logEntryHandler,
		Auth:            authMW,
		Permission:      permissionMW,
	})
}
