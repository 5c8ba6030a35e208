package routes

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(r *gin.Engine, reviewController *controllers.ReviewController) {
	r.GET("/add_review/:id", reviewController.AddPage)
	r.POST("/add_review/:id", reviewController.Add)
	r.POST("/report_review/:id", reviewController.Report)
}
