package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/types"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews     *services.ReviewService
	Attractions *services.AttractionService
}

func NewReviewController(reviews *services.ReviewService, attractions *services.AttractionService) *ReviewController {
	return &ReviewController{Reviews: reviews, Attractions: attractions}
}

func (rc *ReviewController) AddPage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "Attraction not found", "/browse")
		return
	}
	attraction, err := rc.Attractions.Find(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "/browse")
		return
	}
	render(c, http.StatusOK, "add_review.html", gin.H{"Title": "Add Review", "Attraction": attraction})
}

func (rc *ReviewController) Add(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "Attraction not found", "/browse")
		return
	}

	var form types.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		flashAndRedirect(c, utils.FlashDanger, types.ValidationMessage(err), fmt.Sprintf("/add_review/%d", id))
		return
	}

	_, err := rc.Reviews.Add(c.Request.Context(), utils.GetSession(c), id, services.ReviewInput{
		Name:   form.Name,
		Rating: form.Rating,
		Review: form.Review,
	})
	if errors.Is(err, services.ErrValidation) {
		fail(c, err, fmt.Sprintf("/add_review/%d", id))
		return
	}
	if err != nil {
		fail(c, err, "/browse")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Review added successfully!", "/browse")
}

// Report flags a review and returns the visitor to the page they came from.
func (rc *ReviewController) Report(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "Review not found", "/browse")
		return
	}
	if _, err := rc.Reviews.Report(c.Request.Context(), id); err != nil {
		fail(c, err, "/browse")
		return
	}

	flashAndRedirect(c, utils.FlashWarning, "Review reported. Admins will review it.", refererPath(c, "/browse"))
}

// refererPath keeps only the path of the Referer header so the redirect
// never leaves this site.
func refererPath(c *gin.Context, fallback string) string {
	u, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return u.RequestURI()
}

func (rc *ReviewController) Approve(c *gin.Context) {
	rc.moderate(c, func(s *utils.Session, id int) error {
		_, err := rc.Reviews.Approve(c.Request.Context(), s, id)
		return err
	}, utils.FlashSuccess, "Review approved")
}

func (rc *ReviewController) Reject(c *gin.Context) {
	rc.moderate(c, func(s *utils.Session, id int) error {
		return rc.Reviews.Reject(c.Request.Context(), s, id)
	}, utils.FlashWarning, "Review rejected")
}

func (rc *ReviewController) Delete(c *gin.Context) {
	rc.moderate(c, func(s *utils.Session, id int) error {
		return rc.Reviews.Delete(c.Request.Context(), s, id)
	}, utils.FlashSuccess, "Review deleted")
}

func (rc *ReviewController) moderate(c *gin.Context, action func(*utils.Session, int) error, category, message string) {
	id, ok := paramID(c, "id")
	if !ok {
		flashAndRedirect(c, utils.FlashDanger, "Review not found", "/admin")
		return
	}
	err := action(utils.GetSession(c), id)
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/home")
		return
	}
	if err != nil {
		fail(c, err, "/admin")
		return
	}
	flashAndRedirect(c, category, message, "/admin")
}
