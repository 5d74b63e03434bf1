package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runFaultRepairRouter(secure *echo.Group, faultRepairCtrl *controllers.FaultRepairController, authMW *middleware.AuthMiddleware) {
	faultGroup := secure.Group("/fault_repairs")
	{
		faultGroup.GET("", faultRepairCtrl.GetFaultRepairs)
		faultGroup.GET("/export", faultRepairCtrl.ExportFaultRepairs)
		faultGroup.GET("/mine", faultRepairCtrl.GetMyReports)
		faultGroup.GET("/repairing", faultRepairCtrl.GetRepairingDevices)
		faultGroup.GET("/faulty_devices", faultRepairCtrl.GetFaultyDevices)
		faultGroup.GET("/device/:id", faultRepairCtrl.GetDeviceFaultHistory)
		faultGroup.POST("", faultRepairCtrl.ReportFault)
		faultGroup.PUT("/:id", faultRepairCtrl.UpdateReport)
		faultGroup.PUT("/:id/decision", faultRepairCtrl.UpdateDecision, authMW.AdminOnly)
		faultGroup.PUT("/:id/repair", faultRepairCtrl.UpdateRepairInfo, authMW.AdminOnly)
	}
}
