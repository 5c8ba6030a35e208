package routes

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/controllers"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAttractionRoutes(r *gin.Engine, attractionController *controllers.AttractionController) {
	r.GET("/attraction/:id", attractionController.Detail)

	r.GET("/my_pending", middleware.RequireLogin("Please log in to view your pending attractions"), attractionController.MyPending)

	submit := r.Group("/")
	submit.Use(middleware.RequireLogin("Please log in to add an attraction"))
	{
		submit.GET("/add_attraction", attractionController.AddPage)
		submit.POST("/add_attraction", attractionController.Add)
	}

	// Ownership is checked per attraction by the service.
	owner := r.Group("/")
	owner.Use(middleware.RequireLogin("Please log in to manage your attractions"))
	{
		owner.GET("/pending_attraction/:id", attractionController.PendingDetail)
		owner.GET("/edit_attraction/:id", attractionController.EditPage)
		owner.POST("/edit_attraction/:id", attractionController.Edit)
		owner.POST("/delete_attraction/:id", attractionController.Delete)
	}
}
