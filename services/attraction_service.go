package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/rs/zerolog/log"
)

const msgAttractionNotFound = "Attraction not found"

// AttractionInput is a submission or an edit. An empty Image keeps the
// current image on edit.
type AttractionInput struct {
	Name        string
	Description string
	Location    string
	Image       string
}

type AttractionService struct {
	store store.Store
	ids   *IDAllocator
}

func NewAttractionService(st store.Store, ids *IDAllocator) *AttractionService {
	return &AttractionService{store: st, ids: ids}
}

func (s *AttractionService) find(ctx context.Context, id int) (*models.Attraction, error) {
	a, err := s.store.Attractions().FindByAttractionID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(msgAttractionNotFound)
	}
	return a, err
}

// Find returns an attraction in any status. Reviews may be added to any
// attraction that exists.
func (s *AttractionService) Find(ctx context.Context, id int) (*models.Attraction, error) {
	return s.find(ctx, id)
}

// Submit stores a new attraction owned by the session user, awaiting
// moderation.
func (s *AttractionService) Submit(ctx context.Context, sess *utils.Session, in AttractionInput) (*models.Attraction, error) {
	if err := requireLogin(sess, "Please log in to add an attraction"); err != nil {
		return nil, err
	}

	attraction := models.Attraction{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Image:       in.Image,
		Status:      models.StatusPending,
		CreatedBy:   sess.UserID,
	}
	_, err := s.ids.Allocate(ctx, KindAttraction, s.store.Attractions().IDs, func(id int) error {
		attraction.AttractionID = id
		return s.store.Attractions().Create(ctx, &attraction)
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int("attraction_id", attraction.AttractionID).
		Int("created_by", attraction.CreatedBy).
		Msg("attraction submitted")
	return &attraction, nil
}

// CheckEditable returns the attraction if the session user may edit it.
func (s *AttractionService) CheckEditable(ctx context.Context, sess *utils.Session, id int) (*models.Attraction, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwner(a.CreatedBy, sess) {
		return nil, forbidden("You do not have permission to edit this attraction")
	}
	if !a.Status.Editable() {
		return nil, invalidState("You can only edit pending or rejected attractions")
	}
	return a, nil
}

// Edit applies the owner's changes. Editing a rejected attraction
// resubmits it for moderation.
func (s *AttractionService) Edit(ctx context.Context, sess *utils.Session, id int, in AttractionInput) (*models.Attraction, error) {
	a, err := s.CheckEditable(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	a.Name = strings.TrimSpace(in.Name)
	a.Description = strings.TrimSpace(in.Description)
	a.Location = strings.TrimSpace(in.Location)
	if in.Image != "" {
		a.Image = in.Image
	}
	if a.Status == models.StatusRejected && a.Status.CanTransition(models.StatusPending) {
		a.Status = models.StatusPending
	}

	if err := s.store.Attractions().Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete withdraws a submission. Only the owner may do so, and only while it
// is pending.
func (s *AttractionService) Delete(ctx context.Context, sess *utils.Session, id int) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !IsOwner(a.CreatedBy, sess) {
		return forbidden("You do not have permission to delete this attraction")
	}
	if !a.Status.Deletable() {
		return invalidState("You can only delete pending attractions")
	}

	if err := s.store.Attractions().Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Int("attraction_id", id).Msg("attraction deleted")
	return nil
}

// Moderate moves a pending attraction to approved or rejected.
func (s *AttractionService) Moderate(ctx context.Context, sess *utils.Session, id int, to models.AttractionStatus) (*models.Attraction, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if to != models.StatusApproved && to != models.StatusRejected {
		return nil, invalid("Unknown moderation decision")
	}

	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusPending || !a.Status.CanTransition(to) {
		return nil, invalidState("Only pending attractions can be approved or rejected")
	}

	a.Status = to
	if err := s.store.Attractions().Update(ctx, a); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int("attraction_id", id).
		Str("status", string(to)).
		Int("moderator", sess.UserID).
		Msg("attraction moderated")
	return a, nil
}

// Browse lists approved attractions whose name contains search, ignoring
// case. An empty search lists all of them.
func (s *AttractionService) Browse(ctx context.Context, search string) ([]models.Attraction, error) {
	return s.store.Attractions().List(ctx, store.AttractionFilter{
		Status:       models.StatusApproved,
		NameContains: strings.TrimSpace(search),
	})
}

// Approved returns a publicly visible attraction.
func (s *AttractionService) Approved(ctx context.Context, id int) (*models.Attraction, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusApproved {
		return nil, notFound(msgAttractionNotFound)
	}
	return a, nil
}

// Inspect returns an attraction in any status to an admin or to its owner.
func (s *AttractionService) Inspect(ctx context.Context, sess *utils.Session, id int) (*models.Attraction, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsAdmin(sess) && !IsOwner(a.CreatedBy, sess) {
		return nil, forbidden("You do not have permission to view this attraction")
	}
	return a, nil
}

// MyPending lists the session user's attractions that are not yet approved.
func (s *AttractionService) MyPending(ctx context.Context, sess *utils.Session) ([]models.Attraction, error) {
	if err := requireLogin(sess, "Please log in to view your pending attractions"); err != nil {
		return nil, err
	}
	return s.store.Attractions().List(ctx, store.AttractionFilter{
		CreatedBy:     sess.UserID,
		ExcludeStatus: models.StatusApproved,
	})
}

// PendingQueue lists every attraction waiting for moderation.
func (s *AttractionService) PendingQueue(ctx context.Context) ([]models.Attraction, error) {
	return s.store.Attractions().List(ctx, store.AttractionFilter{Status: models.StatusPending})
}
