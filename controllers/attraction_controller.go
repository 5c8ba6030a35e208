package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/storage"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/types"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const imageField = "image"

type AttractionController struct {
	Attractions *services.AttractionService
	Reviews     *services.ReviewService
	Images      *storage.Uploader
}

func NewAttractionController(attractions *services.AttractionService, reviews *services.ReviewService, images *storage.Uploader) *AttractionController {
	return &AttractionController{Attractions: attractions, Reviews: reviews, Images: images}
}

func (ac *AttractionController) notFound(c *gin.Context, location string) {
	flashAndRedirect(c, utils.FlashDanger, "Attraction not found", location)
}

// Detail shows an approved attraction with its unreported reviews.
func (ac *AttractionController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, "/browse")
		return
	}
	ctx := c.Request.Context()

	attraction, err := ac.Attractions.Approved(ctx, id)
	if err != nil {
		fail(c, err, "/browse")
		return
	}
	reviews, err := ac.Reviews.ForAttraction(ctx, id, false)
	if err != nil {
		fail(c, err, "/browse")
		return
	}
	render(c, http.StatusOK, "attraction.html", gin.H{
		"Title":      attraction.Name,
		"Attraction": attraction,
		"Reviews":    reviews,
	})
}

// PendingDetail shows an attraction in any status, with every review, to
// admins and to the attraction's owner.
func (ac *AttractionController) PendingDetail(c *gin.Context) {
	back := "/my_pending"
	if session := utils.GetSession(c); session != nil && session.IsAdmin {
		back = "/admin"
	}
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, back)
		return
	}
	ctx := c.Request.Context()

	attraction, err := ac.Attractions.Inspect(ctx, utils.GetSession(c), id)
	if err != nil {
		fail(c, err, back)
		return
	}
	reviews, err := ac.Reviews.ForAttraction(ctx, id, true)
	if err != nil {
		fail(c, err, back)
		return
	}
	render(c, http.StatusOK, "pending_attraction.html", gin.H{
		"Title":      attraction.Name,
		"Attraction": attraction,
		"Reviews":    reviews,
	})
}

func (ac *AttractionController) MyPending(c *gin.Context) {
	attractions, err := ac.Attractions.MyPending(c.Request.Context(), utils.GetSession(c))
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/login")
		return
	}
	if err != nil {
		fail(c, err, "/home")
		return
	}
	render(c, http.StatusOK, "my_pending.html", gin.H{"Title": "My submissions", "Attractions": attractions})
}

func (ac *AttractionController) AddPage(c *gin.Context) {
	render(c, http.StatusOK, "add_attraction.html", gin.H{"Title": "Add Attraction"})
}

// imageUpload returns the chosen file, or nil when the image part is
// missing or was submitted without a file.
func imageUpload(c *gin.Context) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Filename == "" {
		return nil, nil
	}
	return fh, nil
}

// bindAttraction reads the form and stores any uploaded image. On failure
// it has already flashed the reason.
func (ac *AttractionController) bindAttraction(c *gin.Context) (services.AttractionInput, bool) {
	var form types.AttractionForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Flash(c, utils.FlashDanger, types.ValidationMessage(err))
		return services.AttractionInput{Name: form.Name, Description: form.Description, Location: form.Location}, false
	}
	in := services.AttractionInput{
		Name:        form.Name,
		Description: form.Description,
		Location:    form.Location,
	}

	fh, err := imageUpload(c)
	if err != nil {
		flashError(c, err)
		return in, false
	}
	image, err := ac.Images.Store(c.Request.Context(), fh)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		utils.Flash(c, utils.FlashDanger, "The image is too large")
		return in, false
	case errors.Is(err, storage.ErrUnsupportedImage), errors.Is(err, storage.ErrInvalidFilename):
		utils.Flash(c, utils.FlashDanger, "Please upload a JPEG, PNG, GIF or WebP image")
		return in, false
	case err != nil:
		flashError(c, err)
		return in, false
	}
	in.Image = image
	return in, true
}

// discardImage removes an upload that no attraction refers to.
func (ac *AttractionController) discardImage(c *gin.Context, image string) {
	if err := ac.Images.Discard(c.Request.Context(), image); err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Str("image", image).Msg("could not remove unused image")
	}
}

func (ac *AttractionController) Add(c *gin.Context) {
	in, ok := ac.bindAttraction(c)
	if !ok {
		render(c, http.StatusOK, "add_attraction.html", gin.H{
			"Title":      "Add Attraction",
			"Attraction": &models.Attraction{Name: in.Name, Description: in.Description, Location: in.Location},
		})
		return
	}

	attraction, err := ac.Attractions.Submit(c.Request.Context(), utils.GetSession(c), in)
	if err != nil {
		ac.discardImage(c, in.Image)
	}
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/login")
		return
	}
	if err != nil {
		fail(c, err, "/add_attraction")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, fmt.Sprintf("%s has been added and is pending approval", attraction.Name), "/browse")
}

func (ac *AttractionController) EditPage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, "/my_pending")
		return
	}
	attraction, err := ac.Attractions.CheckEditable(c.Request.Context(), utils.GetSession(c), id)
	if err != nil {
		fail(c, err, "/my_pending")
		return
	}
	render(c, http.StatusOK, "edit_attraction.html", gin.H{"Title": "Edit Attraction", "Attraction": attraction})
}

func (ac *AttractionController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, "/my_pending")
		return
	}
	ctx := c.Request.Context()
	session := utils.GetSession(c)

	// Check the guards before accepting an upload for the attraction.
	current, err := ac.Attractions.CheckEditable(ctx, session, id)
	if err != nil {
		fail(c, err, "/my_pending")
		return
	}

	in, ok := ac.bindAttraction(c)
	if !ok {
		draft := *current
		draft.Name, draft.Description, draft.Location = in.Name, in.Description, in.Location
		render(c, http.StatusOK, "edit_attraction.html", gin.H{"Title": "Edit Attraction", "Attraction": &draft})
		return
	}

	if _, err := ac.Attractions.Edit(ctx, session, id, in); err != nil {
		ac.discardImage(c, in.Image)
		fail(c, err, "/my_pending")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Attraction updated successfully!", "/my_pending")
}

func (ac *AttractionController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, "/my_pending")
		return
	}
	if err := ac.Attractions.Delete(c.Request.Context(), utils.GetSession(c), id); err != nil {
		fail(c, err, "/my_pending")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Attraction deleted successfully!", "/my_pending")
}

func (ac *AttractionController) Approve(c *gin.Context) {
	ac.moderate(c, models.StatusApproved)
}

func (ac *AttractionController) Reject(c *gin.Context) {
	ac.moderate(c, models.StatusRejected)
}

func (ac *AttractionController) moderate(c *gin.Context, to models.AttractionStatus) {
	id, ok := paramID(c, "id")
	if !ok {
		ac.notFound(c, "/admin")
		return
	}
	attraction, err := ac.Attractions.Moderate(c.Request.Context(), utils.GetSession(c), id, to)
	if errors.Is(err, services.ErrForbidden) {
		fail(c, err, "/home")
		return
	}
	if err != nil {
		fail(c, err, "/admin")
		return
	}

	if to == models.StatusApproved {
		flashAndRedirect(c, utils.FlashSuccess, fmt.Sprintf("Attraction '%s' approved", attraction.Name), "/admin")
		return
	}
	flashAndRedirect(c, utils.FlashWarning, fmt.Sprintf("Attraction '%s' rejected", attraction.Name), "/admin")
}
