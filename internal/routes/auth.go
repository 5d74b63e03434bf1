package routes

import (
	"github.com/labstack/echo/v4"

	"medequip-system/internal/controllers"
	"medequip-system/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.Refresh)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.POST("/register", authCtrl.Register, authMW.Auth, authMW.AdminOnly)
		authGroup.PUT("/change_password", authCtrl.ChangePassword, authMW.Auth)
	}
}
