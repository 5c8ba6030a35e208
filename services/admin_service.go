package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/rs/zerolog/log"
)

const msgUserNotFound = "User not found"

type AdminEntry struct {
	Admin models.Admin
	User  *models.User
}

type Dashboard struct {
	Users              []models.User
	PendingAttractions []models.Attraction
	ReportedReviews    []models.ReportedReview
	Admins             []AdminEntry
}

type AdminService struct {
	store       store.Store
	ids         *IDAllocator
	attractions *AttractionService
	reviews     *ReviewService
}

func NewAdminService(st store.Store, ids *IDAllocator, attractions *AttractionService, reviews *ReviewService) *AdminService {
	return &AdminService{store: st, ids: ids, attractions: attractions, reviews: reviews}
}

func (s *AdminService) findUser(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.store.Users().FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(msgUserNotFound)
	}
	return user, err
}

// Dashboard gathers everything the moderation page shows.
func (s *AdminService) Dashboard(ctx context.Context, sess *utils.Session) (*Dashboard, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	users, err := s.store.Users().List(ctx, store.UserFilter{ExcludeUserID: sess.UserID})
	if err != nil {
		return nil, err
	}
	pending, err := s.attractions.PendingQueue(ctx)
	if err != nil {
		return nil, err
	}
	reported, err := s.reviews.ReportedQueue(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.store.Admins().List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]AdminEntry, 0, len(admins))
	for _, a := range admins {
		entry := AdminEntry{Admin: a}
		if user, err := s.store.Users().FindByUserID(ctx, a.UserID); err == nil {
			entry.User = user
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &Dashboard{
		Users:              users,
		PendingAttractions: pending,
		ReportedReviews:    reported,
		Admins:             entries,
	}, nil
}

// Users lists every registered user.
func (s *AdminService) Users(ctx context.Context, sess *utils.Session) ([]models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx, store.UserFilter{})
}

// MakeAdmin grants admin privileges to userID. The grantee sees them from
// their next login.
func (s *AdminService) MakeAdmin(ctx context.Context, sess *utils.Session, userID int) (*models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.grant(ctx, user); err != nil {
		return user, err
	}
	log.Ctx(ctx).Info().Int("user_id", userID).Int("granted_by", sess.UserID).Msg("admin granted")
	return user, nil
}

// Grant makes the user with email an admin without a session. It exists to
// bootstrap the first admin from the command line.
func (s *AdminService) Grant(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(msgUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.grant(ctx, user); err != nil {
		return user, err
	}
	log.Ctx(ctx).Info().Int("user_id", user.UserID).Msg("admin granted from command line")
	return user, nil
}

// grant checks for an existing grant while holding the admin id lock, so a
// user never ends up with two admin records.
func (s *AdminService) grant(ctx context.Context, user *models.User) error {
	_, err := s.ids.Allocate(ctx, KindAdmin, s.store.Admins().IDs, func(id int) error {
		_, err := s.store.Admins().FindByUserID(ctx, user.UserID)
		if err == nil {
			return noChange(fmt.Sprintf("%s is already an admin", user.FirstName))
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return s.store.Admins().Create(ctx, &models.Admin{AdminID: id, UserID: user.UserID})
	})
	return err
}

// RemoveAdmin revokes userID's admin grant. Sessions already carrying the
// admin flag keep it until they log in again.
func (s *AdminService) RemoveAdmin(ctx context.Context, sess *utils.Session, userID int) (*models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	admin, err := s.store.Admins().FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, noChange("User is not an admin")
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.Admins().Delete(ctx, admin.AdminID); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Int("user_id", userID).Int("revoked_by", sess.UserID).Msg("admin revoked")

	user, err := s.store.Users().FindByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return user, err
}
