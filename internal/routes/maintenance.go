package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runMaintenanceRouter(secure *echo.Group, maintenanceCtrl *controllers.MaintenanceController, authMW *middleware.AuthMiddleware) {
	maintenanceGroup := secure.Group("/maintenances")
	{
		maintenanceGroup.GET("", maintenanceCtrl.GetMaintenances)
		maintenanceGroup.GET("/export", maintenanceCtrl.ExportMaintenances)
		maintenanceGroup.GET("/providers", maintenanceCtrl.GetProviders)
		maintenanceGroup.GET("/in_maintenance", maintenanceCtrl.GetDevicesInMaintenance)
		maintenanceGroup.GET("/device/:id", maintenanceCtrl.GetDeviceMaintenanceHistory)
		maintenanceGroup.POST("", maintenanceCtrl.CreateMaintenance, authMW.AdminOnly)
		maintenanceGroup.PUT("/:id", maintenanceCtrl.UpdateMaintenance, authMW.AdminOnly)
		maintenanceGroup.DELETE("/:id", maintenanceCtrl.DeleteMaintenance, authMW.AdminOnly)
	}
}
