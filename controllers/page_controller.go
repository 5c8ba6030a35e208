package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type PageController struct {
	Attractions *services.AttractionService
	Admin       *services.AdminService
	Store       Pinger
}

func NewPageController(attractions *services.AttractionService, admin *services.AdminService, store Pinger) *PageController {
	return &PageController{Attractions: attractions, Admin: admin, Store: store}
}

func (pc *PageController) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", gin.H{"Title": "Home"})
}

func (pc *PageController) Browse(c *gin.Context) {
	search := c.Query("search")
	attractions, err := pc.Attractions.Browse(c.Request.Context(), search)
	if err != nil {
		fail(c, err, "/home")
		return
	}
	render(c, http.StatusOK, "browse.html", gin.H{
		"Title":       "Browse",
		"Search":      search,
		"Attractions": attractions,
	})
}

func (pc *PageController) Users(c *gin.Context) {
	users, err := pc.Admin.Users(c.Request.Context(), utils.GetSession(c))
	if err != nil {
		fail(c, err, "/home")
		return
	}
	render(c, http.StatusOK, "users.html", gin.H{"Title": "Users", "Users": users})
}

func (pc *PageController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := pc.Store.Ping(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
