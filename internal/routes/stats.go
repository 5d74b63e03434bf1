package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runStatsRouter(secure *echo.Group, statsCtrl *controllers.StatsController, authMW *middleware.AuthMiddleware) {
	statsGroup := secure.Group("/stats")
	{
		statsGroup.GET("/dashboard", statsCtrl.GetDashboardStats)
		statsGroup.GET("/monthly", statsCtrl.GetMonthlyBreakdown)
		statsGroup.GET("/maintenance_due", statsCtrl.GetDevicesDueForMaintenance)
	}
}
