package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	FirstName string `form:"first_name" binding:"required,max=50"`
	LastName  string `form:"last_name" binding:"required,max=50"`
	Email     string `form:"email" binding:"required,email,max=100"`
	Password  string `form:"password" binding:"required,min=6,max=72"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// AttractionForm is used for both submissions and edits. The optional image
// part is read separately since browsers send it empty when no file is
// chosen.
type AttractionForm struct {
	Name        string `form:"attraction_name" binding:"required,max=100"`
	Description string `form:"description" binding:"max=1000"`
	Location    string `form:"location" binding:"max=100"`
}

type ReviewForm struct {
	Name   string `form:"name" binding:"max=50"`
	Rating int    `form:"rating" binding:"required,min=1,max=5"`
	Review string `form:"review" binding:"max=1000"`
}

var fieldLabels = map[string]string{
	"FirstName":   "First name",
	"LastName":    "Last name",
	"Email":       "Email",
	"Password":    "Password",
	"Name":        "Name",
	"Description": "Description",
	"Location":    "Location",
	"Rating":      "Rating",
	"Review":      "Review",
}

// ValidationMessage turns a binding error into one line fit for a flash
// message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again"
	}

	fe := verrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("%s must be at least %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("%s must be at most %s", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(label))
	}
}
