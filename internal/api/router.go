package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockpile/inventory-system/internal/api/handler"
	"github.com/stockpile/inventory-system/internal/api/middleware"
	"github.com/stockpile/inventory-system/internal/core/service"
	"github.com/stockpile/inventory-system/internal/infrastructure/config"
	mongodb "github.com/stockpile/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stockpile/inventory-system/internal/infrastructure/db/redis"
	"github.com/stockpile/inventory-system/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered,
// plus the activity dispatcher, which must be started by the caller.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	tokenStore := redisdb.NewTokenStore(rdb)
	prefStore := redisdb.NewPreferenceStore(rdb)
	dedup := redisdb.NewDedupChecker(rdb)

	authRepo := mongodb.NewAuthRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	activityService := service.NewActivityService(activityRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)

	authService := service.NewAuthService(authRepo, tokenStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RequireConfirmation, log)
	resourceService := service.NewResourceService(resourceRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	activityHandler := handler.NewActivityHandler(activityService)
	preferenceHandler := handler.NewPreferenceHandler(prefStore)

	authMiddleware := middleware.Auth(cfg.Auth.JWTSecret, tokenStore)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/confirm", authHandler.Confirm)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Guarded routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/resources", resourceHandler.Create)
	v1.GET("/resources", resourceHandler.List)
	v1.GET("/resources/:id", resourceHandler.Get)
	v1.PUT("/resources/:id", resourceHandler.Update)
	v1.DELETE("/resources/:id", resourceHandler.Delete)
	v1.GET("/stats", resourceHandler.Stats)
	v1.GET("/activity", activityHandler.List)
	v1.GET("/profile", authHandler.Me)
	v1.PATCH("/profile", authHandler.UpdateProfile)
	v1.GET("/preferences/theme", preferenceHandler.GetTheme)
	v1.PUT("/preferences/theme", preferenceHandler.SetTheme)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
