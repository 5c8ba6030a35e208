// Package store holds the entity collections. Every entity kind is keyed by
// its own dense integer id rather than the database surrogate key.
package store

import (
	"context"
	"errors"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Store interface {
	Users() UserRepository
	Admins() AdminRepository
	Attractions() AttractionRepository
	Reviews() ReviewRepository
	Ping(ctx context.Context) error
}

type UserFilter struct {
	ExcludeUserID int
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUserID(ctx context.Context, userID int) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	IDs(ctx context.Context) ([]int, error)
	Update(ctx context.Context, user *models.User) error
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByUserID(ctx context.Context, userID int) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	IDs(ctx context.Context) ([]int, error)
	Delete(ctx context.Context, adminID int) error
}

// AttractionFilter fields are ANDed; zero values are ignored.
type AttractionFilter struct {
	Status        models.AttractionStatus
	ExcludeStatus models.AttractionStatus
	CreatedBy     int
	NameContains  string
}

type AttractionRepository interface {
	Create(ctx context.Context, attraction *models.Attraction) error
	FindByAttractionID(ctx context.Context, attractionID int) (*models.Attraction, error)
	List(ctx context.Context, filter AttractionFilter) ([]models.Attraction, error)
	IDs(ctx context.Context) ([]int, error)
	Update(ctx context.Context, attraction *models.Attraction) error
	Delete(ctx context.Context, attractionID int) error
}

type ReviewFilter struct {
	AttractionID int
	Reported     *bool
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByReviewID(ctx context.Context, reviewID int) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
	IDs(ctx context.Context) ([]int, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID int) error
}

// Bool is a small helper for optional filter fields.
func Bool(v bool) *bool {
	return &v
}
