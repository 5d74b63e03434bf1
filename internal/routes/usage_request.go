package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runUsageRequestRouter(secure *echo.Group, requestCtrl *controllers.UsageRequestController, authMW *middleware.AuthMiddleware) {
	requestGroup := secure.Group("/usage_requests")
	{
		requestGroup.GET("", requestCtrl.GetRequests, authMW.AdminOnly)
		requestGroup.GET("/mine", requestCtrl.GetMyRequests)
		requestGroup.GET("/departments", requestCtrl.GetDepartments)
		requestGroup.POST("", requestCtrl.CreateRequest)
		requestGroup.PUT("/:id", requestCtrl.UpdateRequest)
		requestGroup.PUT("/:id/status", requestCtrl.UpdateRequestStatus, authMW.AdminOnly)
		requestGroup.DELETE("/:id", requestCtrl.DeleteRequest)
	}
}
