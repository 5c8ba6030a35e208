package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const msgSomethingWentWrong = "Something went wrong, please try again"

// render fills in the data every page needs: the session for the navbar
// and any pending flash messages.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = utils.GetSession(c)
	data["Flashes"] = utils.ConsumeFlashes(c)
	c.HTML(status, page, data)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func flashAndRedirect(c *gin.Context, category, message, location string) {
	utils.Flash(c, category, message)
	redirect(c, location)
}

// severity picks the alert class for a service error.
func severity(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidState):
		return utils.FlashWarning
	case errors.Is(err, services.ErrNoChange):
		return utils.FlashInfo
	default:
		return utils.FlashDanger
	}
}

// flashError queues err as a flash message. Errors without a user facing
// message are logged and replaced by a generic one.
func flashError(c *gin.Context, err error) {
	msg, ok := services.UserMessage(err)
	if !ok {
		log.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		_ = c.Error(err)
		utils.Flash(c, utils.FlashDanger, msgSomethingWentWrong)
		return
	}
	utils.Flash(c, severity(err), msg)
}

// fail flashes err and sends the visitor to location.
func fail(c *gin.Context, err error, location string) {
	flashError(c, err)
	redirect(c, location)
}

// paramID reads a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
