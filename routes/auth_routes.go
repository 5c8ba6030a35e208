package routes

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/controllers"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine, authController *controllers.AuthController) {
	anonymous := r.Group("/")
	anonymous.Use(middleware.AnonymousOnly())
	{
		anonymous.GET("/register", authController.RegisterPage)
		anonymous.POST("/register", authController.Register)
		anonymous.GET("/login", authController.LoginPage)
		anonymous.POST("/login", authController.Login)
	}
	r.GET("/logout", authController.Logout)
}
