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

const (
	msgReviewNotFound    = "Review not found"
	msgReviewNotReported = "Review has not been reported"
)

type ReviewInput struct {
	Name   string
	Rating int
	Review string
}

type ReviewService struct {
	store store.Store
	ids   *IDAllocator
}

func NewReviewService(st store.Store, ids *IDAllocator) *ReviewService {
	return &ReviewService{store: st, ids: ids}
}

func (s *ReviewService) find(ctx context.Context, id int) (*models.Review, error) {
	rv, err := s.store.Reviews().FindByReviewID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(msgReviewNotFound)
	}
	return rv, err
}

// findReported loads a review an admin wants to act on. Admins only act on
// reviews a visitor has flagged.
func (s *ReviewService) findReported(ctx context.Context, sess *utils.Session, id int) (*models.Review, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	rv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rv.Reported {
		return nil, invalidState(msgReviewNotReported)
	}
	return rv, nil
}

// reviewerName is the logged-in user's first name, else the name typed in
// the form, else Anonymous.
func (s *ReviewService) reviewerName(ctx context.Context, sess *utils.Session, typed string) (string, error) {
	if sess.Authenticated() {
		user, err := s.store.Users().FindByUserID(ctx, sess.UserID)
		switch {
		case err == nil:
			return user.FirstName, nil
		case errors.Is(err, store.ErrNotFound):
			return sess.Username, nil
		default:
			return "", err
		}
	}
	if name := strings.TrimSpace(typed); name != "" {
		return name, nil
	}
	return models.AnonymousReviewer, nil
}

// Add records a review against an existing attraction. Visitors do not
// need to be logged in.
func (s *ReviewService) Add(ctx context.Context, sess *utils.Session, attractionID int, in ReviewInput) (*models.Review, error) {
	if _, err := s.store.Attractions().FindByAttractionID(ctx, attractionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(msgAttractionNotFound)
		}
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("Rating must be between 1 and 5")
	}

	name, err := s.reviewerName(ctx, sess, in.Name)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		AttractionID: attractionID,
		FirstName:    name,
		Rating:       in.Rating,
		Review:       strings.TrimSpace(in.Review),
		Reported:     false,
	}
	_, err = s.ids.Allocate(ctx, KindReview, s.store.Reviews().IDs, func(id int) error {
		review.ReviewID = id
		return s.store.Reviews().Create(ctx, &review)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Report flags a review for the admins. Reporting twice is harmless.
func (s *ReviewService) Report(ctx context.Context, id int) (*models.Review, error) {
	rv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.Reported {
		return rv, nil
	}

	rv.Reported = true
	if err := s.store.Reviews().Update(ctx, rv); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Int("review_id", id).Msg("review reported")
	return rv, nil
}

// Approve keeps a reported review and clears the flag.
func (s *ReviewService) Approve(ctx context.Context, sess *utils.Session, id int) (*models.Review, error) {
	rv, err := s.findReported(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	rv.Reported = false
	if err := s.store.Reviews().Update(ctx, rv); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Int("review_id", id).Int("moderator", sess.UserID).Msg("review approved")
	return rv, nil
}

// Reject removes a reported review.
func (s *ReviewService) Reject(ctx context.Context, sess *utils.Session, id int) error {
	return s.remove(ctx, sess, id, "review rejected")
}

// Delete removes a reported review from the admin queue.
func (s *ReviewService) Delete(ctx context.Context, sess *utils.Session, id int) error {
	return s.remove(ctx, sess, id, "review deleted")
}

func (s *ReviewService) remove(ctx context.Context, sess *utils.Session, id int, event string) error {
	if _, err := s.findReported(ctx, sess, id); err != nil {
		return err
	}
	if err := s.store.Reviews().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(msgReviewNotFound)
		}
		return err
	}
	log.Ctx(ctx).Info().Int("review_id", id).Int("moderator", sess.UserID).Msg(event)
	return nil
}

// ForAttraction lists the reviews of one attraction. Reported reviews are
// hidden from the public page.
func (s *ReviewService) ForAttraction(ctx context.Context, attractionID int, includeReported bool) ([]models.Review, error) {
	filter := store.ReviewFilter{AttractionID: attractionID}
	if !includeReported {
		filter.Reported = store.Bool(false)
	}
	return s.store.Reviews().List(ctx, filter)
}

// ReportedQueue lists flagged reviews with the name of their attraction.
func (s *ReviewService) ReportedQueue(ctx context.Context) ([]models.ReportedReview, error) {
	reviews, err := s.store.Reviews().List(ctx, store.ReviewFilter{Reported: store.Bool(true)})
	if err != nil {
		return nil, err
	}

	names := make(map[int]string)
	queue := make([]models.ReportedReview, 0, len(reviews))
	for _, rv := range reviews {
		name, ok := names[rv.AttractionID]
		if !ok {
			name = "Unknown"
			a, err := s.store.Attractions().FindByAttractionID(ctx, rv.AttractionID)
			switch {
			case err == nil:
				name = a.Name
			case !errors.Is(err, store.ErrNotFound):
				return nil, err
			}
			names[rv.AttractionID] = name
		}
		queue = append(queue, models.ReportedReview{Review: rv, AttractionName: name})
	}
	return queue, nil
}
