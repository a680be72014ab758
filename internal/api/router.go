package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cabrix/dispatch-api/internal/api/handler"
	"github.com/cabrix/dispatch-api/internal/api/middleware"
	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/service"
	"github.com/cabrix/dispatch-api/internal/infrastructure/config"
	mongodb "github.com/cabrix/dispatch-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cabrix/dispatch-api/internal/infrastructure/db/redis"
	"github.com/cabrix/dispatch-api/internal/infrastructure/http/handlers"
	"github.com/cabrix/dispatch-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with every route registered and starts
// the audit dispatcher. Workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cabrix"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	companies := mongodb.NewCompanyRepository(db)
	vehicles := mongodb.NewVehicleRepository(db)
	trips := mongodb.NewTripRepository(db)
	events := mongodb.NewTripEventRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.TokenTTL)

	// --- Audit pipeline ---
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, events, log)
	audit.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(users, sessions, cfg.JWTSecret, cfg.OperatorDomain, cfg.TokenTTL, log)
	companyService := service.NewCompanyService(companies, users, log)
	userService := service.NewUserService(users, companies, log)
	vehicleService := service.NewVehicleService(vehicles, log)
	tripService := service.NewTripService(trips, users, vehicles, companies, audit, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.OperatorDomain)
	companyHandler := handler.NewCompanyHandler(companyService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	tripHandler := handler.NewTripHandler(tripService)

	authed := middleware.Auth(cfg.JWTSecret, sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	platformAdmin := middleware.PlatformAdmin()

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/companies", companyHandler.Register)

	// --- Authenticated routes ---
	e.POST("/api/logout", authHandler.Logout, authed)

	e.GET("/api/companies", companyHandler.List, authed)
	e.GET("/api/companies/:id", companyHandler.Get, authed)

	e.GET("/api/trips", tripHandler.List, authed)
	e.POST("/api/trips", tripHandler.Create, authed)
	e.GET("/api/trips/:id", tripHandler.Get, authed)
	e.PUT("/api/trips/:id", tripHandler.Update, authed)
	e.DELETE("/api/trips/:id", tripHandler.Delete, authed, adminOnly)

	// User and vehicle management belong to the operator's dispatch desk:
	// role admin alone is not enough, the account must be a platform admin.
	e.GET("/api/users", userHandler.List, authed, adminOnly, platformAdmin)
	e.POST("/api/users", userHandler.Create, authed, adminOnly, platformAdmin)

	e.GET("/api/vehicles", vehicleHandler.List, authed)
	e.POST("/api/vehicles", vehicleHandler.Create, authed, adminOnly, platformAdmin)
	e.PUT("/api/vehicles/:id", vehicleHandler.Update, authed, adminOnly, platformAdmin)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	return e
}
