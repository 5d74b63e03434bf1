package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runDeviceRouter(secure *echo.Group, deviceCtrl *controllers.DeviceController, authMW *middleware.AuthMiddleware) {
	deviceGroup := secure.Group("/devices")
	{
		deviceGroup.GET("", deviceCtrl.GetDevices)
		deviceGroup.GET("/export", deviceCtrl.ExportDevices)
		deviceGroup.GET("/manufacturers", deviceCtrl.GetManufacturers)
		deviceGroup.GET("/storage_locations", deviceCtrl.GetStorageLocations)
		deviceGroup.GET("/code/:code", deviceCtrl.FindDeviceByCode)
		deviceGroup.GET("/:id", deviceCtrl.FindDevice)
		deviceGroup.POST("", deviceCtrl.CreateDevice, authMW.AdminOnly)
		deviceGroup.PUT("/:id", deviceCtrl.UpdateDevice, authMW.AdminOnly)
		deviceGroup.DELETE("/:id", deviceCtrl.DeleteDevice, authMW.AdminOnly)
	}
}
