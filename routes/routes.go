package routes

import (
	"fmt"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/controllers"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/storage"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/templates"
	"github.com/gin-gonic/gin"
)

// Dependencies is everything the HTTP layer needs.
type Dependencies struct {
	Store     store.Store
	Services  *services.Services
	Sessions  *middleware.SessionManager
	Images    *storage.Uploader
	StaticDir string
}

// NewEngine builds the gin engine with middleware, templates and every
// route.
func NewEngine(deps Dependencies) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(deps.Sessions.Middleware())
	r.Use(middleware.SameOrigin())

	tmpl, err := templates.Parse(deps.Images.URL)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	SetupRoutes(r, deps)
	return r, nil
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	svc := deps.Services
	pageController := controllers.NewPageController(svc.Attractions, svc.Admin, deps.Store)
	authController := controllers.NewAuthController(svc.Auth, deps.Sessions)
	attractionController := controllers.NewAttractionController(svc.Attractions, svc.Reviews, deps.Images)
	reviewController := controllers.NewReviewController(svc.Reviews, svc.Attractions)
	adminController := controllers.NewAdminController(svc.Admin)

	r.GET("/", pageController.Home)
	r.GET("/home", pageController.Home)
	r.GET("/browse", pageController.Browse)
	r.GET("/healthz", pageController.Healthz)
	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}

	SetupAuthRoutes(r, authController)
	SetupAttractionRoutes(r, attractionController)
	SetupReviewRoutes(r, reviewController)
	SetupAdminRoutes(r, adminController, attractionController, reviewController, pageController)
}
