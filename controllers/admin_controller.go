package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{Admin: admin}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	dashboard, err := ac.Admin.Dashboard(c.Request.Context(), utils.GetSession(c))
	if err != nil {
		fail(c, err, "/home")
		return
	}
	render(c, http.StatusOK, "admin.html", gin.H{"Title": "Admin", "Dashboard": dashboard})
}

func (ac *AdminController) MakeAdmin(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "User not found", "/admin")
		return
	}
	user, err := ac.Admin.MakeAdmin(c.Request.Context(), utils.GetSession(c), userID)
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/home")
		return
	}
	if err != nil {
		fail(c, err, "/admin")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, fmt.Sprintf("%s is now an admin", user.FirstName), "/admin")
}

func (ac *AdminController) RemoveAdmin(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "User not found", "/admin")
		return
	}
	user, err := ac.Admin.RemoveAdmin(c.Request.Context(), utils.GetSession(c), userID)
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/home")
		return
	}
	if err != nil {
		fail(c, err, "/admin")
		return
	}
	if user != nil {
		utils.Flash(c, utils.FlashSuccess, fmt.Sprintf("%s is no longer an admin", user.FirstName))
	}
	redirect(c, "/admin")
}
