package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/controllers"
	"medequip-system/internal/repositories"
	"medequip-system/internal/services"
	"medequip-system/pkg/config"
	"medequip-system/pkg/middleware"
	"medequip-system/pkg/service"
)

// InitRouter builds the whole dependency graph and mounts every route group
// under /api. Auth routes are public, everything else requires a bearer
// token, and the admin gate guards the mutating inventory routes.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, cfg *config.Config, logger *zap.Logger) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn)
	deviceRepo := repositories.NewDeviceRepository(dbConn)
	usageRepo := repositories.NewUsageRepository(dbConn)
	usageRequestRepo := repositories.NewUsageRequestRepository(dbConn)
	faultRepairRepo := repositories.NewFaultRepairRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn)
	purchaseRequestRepo := repositories.NewPurchaseRequestRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// One status cache instance feeds every service that reads or
	// invalidates derived statuses.
	statusResolver := services.NewStatusResolver(faultRepairRepo, maintenanceRepo, usageRepo, logger)
	statusCache := services.NewStatusCache(statusResolver, time.Now, logger)

	// Services.
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg, logger)
	userService := services.NewUserService(userRepo, statusCache, logger)
	deviceService := services.NewDeviceService(deviceRepo, statusCache, logger)
	usageService := services.NewUsageService(usageRepo, deviceRepo, userRepo, statusCache, logger)
	usageRequestService := services.NewUsageRequestService(usageRequestRepo, logger)
	faultRepairService := services.NewFaultRepairService(faultRepairRepo, deviceRepo, statusCache, logger)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, deviceRepo, statusCache, logger)
	purchaseRequestService := services.NewPurchaseRequestService(purchaseRequestRepo, logger)
	statsService := services.NewStatsService(deviceRepo, faultRepairRepo, maintenanceRepo, usageRepo, purchaseRequestRepo, logger)

	// Controllers.
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	deviceCtrl := controllers.NewDeviceController(deviceService, logger)
	usageCtrl := controllers.NewUsageController(usageService, logger)
	usageRequestCtrl := controllers.NewUsageRequestController(usageRequestService, logger)
	faultRepairCtrl := controllers.NewFaultRepairController(faultRepairService, logger)
	maintenanceCtrl := controllers.NewMaintenanceController(maintenanceService, logger)
	purchaseRequestCtrl := controllers.NewPurchaseRequestController(purchaseRequestService, logger)
	statsCtrl := controllers.NewStatsController(statsService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
	runDeviceRouter(secureGroup, deviceCtrl, authMW)
	runUsageRouter(secureGroup, usageCtrl, authMW)
	runUsageRequestRouter(secureGroup, usageRequestCtrl, authMW)
	runFaultRepairRouter(secureGroup, faultRepairCtrl, authMW)
	runMaintenanceRouter(secureGroup, maintenanceCtrl, authMW)
	runPurchaseRequestRouter(secureGroup, purchaseRequestCtrl, authMW)
	runStatsRouter(secureGroup, statsCtrl, authMW)

	logger.Info("InitRouter: all routes registered")
}
