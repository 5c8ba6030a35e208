package middleware

import (
	"net/http"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
)

// RequireLogin sends anonymous visitors to the login page with message.
func RequireLogin(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetSession(c) == nil {
			utils.Flash(c, utils.FlashWarning, message)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin sends everyone without the admin flag back home.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := utils.GetSession(c)
		if session == nil || !session.IsAdmin {
			utils.Flash(c, utils.FlashDanger, "You are not authorised")
			c.Redirect(http.StatusFound, "/home")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly keeps logged in users away from the login and register
// pages.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetSession(c) != nil {
			c.Redirect(http.StatusFound, "/home")
			c.Abort()
			return
		}
		c.Next()
	}
}
