package routes

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/controllers"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(
	r *gin.Engine,
	adminController *controllers.AdminController,
	attractionController *controllers.AttractionController,
	reviewController *controllers.ReviewController,
	pageController *controllers.PageController,
) {
	admin := r.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/admin", adminController.Dashboard)
		admin.GET("/user", pageController.Users)
		admin.POST("/make_admin/:user_id", adminController.MakeAdmin)
		admin.POST("/remove_admin/:user_id", adminController.RemoveAdmin)

		admin.POST("/approve_attraction/:id", attractionController.Approve)
		admin.POST("/reject_attraction/:id", attractionController.Reject)

		admin.POST("/approve_review/:id", reviewController.Approve)
		admin.POST("/reject_review/:id", reviewController.Reject)
		admin.POST("/delete_review/:id", reviewController.Delete)
	}
}
