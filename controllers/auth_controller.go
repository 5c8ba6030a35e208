package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/types"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth     *services.AuthService
	Sessions *middleware.SessionManager
}

func NewAuthController(auth *services.AuthService, sessions *middleware.SessionManager) *AuthController {
	return &AuthController{Auth: auth, Sessions: sessions}
}

func (ac *AuthController) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": types.RegisterForm{}})
}

func (ac *AuthController) Register(c *gin.Context) {
	var form types.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Flash(c, utils.FlashDanger, types.ValidationMessage(err))
		form.Password = ""
		render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": form})
		return
	}

	_, err := ac.Auth.Register(c.Request.Context(), services.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if errors.Is(err, services.ErrValidation) {
		flashError(c, err)
		form.Password = ""
		render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": form})
		return
	}
	if err != nil {
		fail(c, err, "/register")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "You are registered", "/home")
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Form": types.LoginForm{}})
}

func (ac *AuthController) Login(c *gin.Context) {
	var form types.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Flash(c, utils.FlashDanger, types.ValidationMessage(err))
		render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Form": types.LoginForm{Email: form.Email}})
		return
	}

	session, err := ac.Auth.Login(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, services.ErrValidation) {
		flashError(c, err)
		render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Form": types.LoginForm{Email: form.Email}})
		return
	}
	if err != nil {
		fail(c, err, "/login")
		return
	}

	if err := ac.Sessions.Start(c, session); err != nil {
		fail(c, err, "/login")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, fmt.Sprintf("%s, you are successfully logged in", session.Username), "/home")
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.Sessions.End(c)
	redirect(c, "/home")
}
