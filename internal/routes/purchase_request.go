package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runPurchaseRequestRouter(secure *echo.Group, requestCtrl *controllers.PurchaseRequestController, authMW *middleware.AuthMiddleware) {
	requestGroup := secure.Group("/purchase_requests")
	{
		requestGroup.GET("", requestCtrl.GetRequests, authMW.AdminOnly)
		requestGroup.GET("/export", requestCtrl.ExportRequests, authMW.AdminOnly)
		requestGroup.GET("/mine", requestCtrl.GetMyRequests)
		requestGroup.POST("", requestCtrl.CreateRequest)
		requestGroup.PUT("/:id", requestCtrl.UpdateRequest)
		requestGroup.PUT("/:id/status", requestCtrl.UpdateRequestStatus, authMW.AdminOnly)
		requestGroup.DELETE("/:id", requestCtrl.DeleteRequest)
	}
}
