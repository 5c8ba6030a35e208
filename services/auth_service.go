package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const msgEmailTaken = "Email is already in use. Pick another one."

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService struct {
	store store.Store
	ids   *IDAllocator
}

func NewAuthService(st store.Store, ids *IDAllocator) *AuthService {
	return &AuthService{store: st, ids: ids}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the next free user id and a bcrypt hash of
// the password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	_, err := s.store.Users().FindByEmail(ctx, email)
	if err == nil {
		return nil, invalid(msgEmailTaken)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Password:  string(hash),
	}
	_, err = s.ids.Allocate(ctx, KindUser, s.store.Users().IDs, func(id int) error {
		user.UserID = id
		return s.store.Users().Create(ctx, &user)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, invalid(msgEmailTaken)
	}
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int("user_id", user.UserID).Msg("user registered")
	return &user, nil
}

// Login checks the credentials and builds the session. The admin flag is
// looked up here once and then trusted until the next login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*utils.Session, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, invalid("Sorry, try again")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalid("Sorry, try again")
	}

	isAdmin := true
	if _, err := s.store.Admins().FindByUserID(ctx, user.UserID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		isAdmin = false
	}

	return &utils.Session{
		UserID:   user.UserID,
		Username: user.FirstName,
		IsAdmin:  isAdmin,
	}, nil
}
