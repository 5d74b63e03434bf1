package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runUsageRouter(secure *echo.Group, usageCtrl *controllers.UsageController, authMW *middleware.AuthMiddleware) {
	usageGroup := secure.Group("/usages")
	{
		usageGroup.GET("", usageCtrl.GetUsages)
		usageGroup.GET("/export", usageCtrl.ExportUsages)
		usageGroup.GET("/departments", usageCtrl.GetDepartments)
		usageGroup.GET("/in_use", usageCtrl.GetDevicesInUse)
		usageGroup.GET("/device/:id", usageCtrl.GetDeviceUsageHistory)
		usageGroup.POST("", usageCtrl.CreateUsages)
		usageGroup.PUT("/:id", usageCtrl.UpdateUsage, authMW.AdminOnly)
		usageGroup.DELETE("/:id", usageCtrl.DeleteUsage, authMW.AdminOnly)
	}
}
