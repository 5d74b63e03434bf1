package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runUserRouter(secure *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	userGroup := secure.Group("/users")
	{
		userGroup.GET("", userCtrl.GetUsers)
		userGroup.GET("/export", userCtrl.ExportUsers, authMW.AdminOnly)
		userGroup.GET("/departments", userCtrl.GetDepartments)
		userGroup.GET("/:id", userCtrl.GetUser)
		userGroup.PUT("/:id", userCtrl.UpdateUser, authMW.AdminOnly)
		userGroup.DELETE("/:id", userCtrl.DeleteUser, authMW.AdminOnly)
	}
}
