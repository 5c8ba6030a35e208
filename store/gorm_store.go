package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"gorm.io/gorm"
)

// GormStore keeps the four collections in a relational database through gorm.
// The gorm.DB should be opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Users() UserRepository             { return &gormUsers{db: s.DB} }
func (s *GormStore) Admins() AdminRepository           { return &gormAdmins{db: s.DB} }
func (s *GormStore) Attractions() AttractionRepository { return &gormAttractions{db: s.DB} }
func (s *GormStore) Reviews() ReviewRepository         { return &gormReviews{db: s.DB} }

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates or updates the tables for every entity kind.
func (s *GormStore) AutoMigrate() error {
	return s.DB.AutoMigrate(&models.User{}, &models.Admin{}, &models.Attraction{}, &models.Review{})
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func deleteResult(res *gorm.DB) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUsers) FindByUserID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *gormUsers) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if filter.ExcludeUserID != 0 {
		q = q.Where("user_id <> ?", filter.ExcludeUserID)
	}

	var users []models.User
	if err := q.Order("user_id").Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *gormUsers) IDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&models.User{}).Order("user_id").Pluck("user_id", &ids).Error
	return ids, translateError(err)
}

func (r *gormUsers) Update(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

type gormAdmins struct {
	db *gorm.DB
}

func (r *gormAdmins) Create(ctx context.Context, admin *models.Admin) error {
	return translateError(r.db.WithContext(ctx).Create(admin).Error)
}

func (r *gormAdmins) FindByUserID(ctx context.Context, userID int) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}

func (r *gormAdmins) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.WithContext(ctx).Order("admin_id").Find(&admins).Error; err != nil {
		return nil, translateError(err)
	}
	return admins, nil
}

func (r *gormAdmins) IDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Order("admin_id").Pluck("admin_id", &ids).Error
	return ids, translateError(err)
}

func (r *gormAdmins) Delete(ctx context.Context, adminID int) error {
	return deleteResult(r.db.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&models.Admin{}))
}

type gormAttractions struct {
	db *gorm.DB
}

func (r *gormAttractions) Create(ctx context.Context, attraction *models.Attraction) error {
	return translateError(r.db.WithContext(ctx).Create(attraction).Error)
}

func (r *gormAttractions) FindByAttractionID(ctx context.Context, attractionID int) (*models.Attraction, error) {
	var attraction models.Attraction
	if err := r.db.WithContext(ctx).Where("attraction_id = ?", attractionID).First(&attraction).Error; err != nil {
		return nil, translateError(err)
	}
	return &attraction, nil
}

func (r *gormAttractions) List(ctx context.Context, filter AttractionFilter) ([]models.Attraction, error) {
	q := r.db.WithContext(ctx).Model(&models.Attraction{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ExcludeStatus != "" {
		q = q.Where("status <> ?", filter.ExcludeStatus)
	}
	if filter.CreatedBy != 0 {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.NameContains != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+likeEscaper.Replace(strings.ToLower(filter.NameContains))+"%")
	}

	var attractions []models.Attraction
	if err := q.Order("attraction_id").Find(&attractions).Error; err != nil {
		return nil, translateError(err)
	}
	return attractions, nil
}

func (r *gormAttractions) IDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&models.Attraction{}).Order("attraction_id").Pluck("attraction_id", &ids).Error
	return ids, translateError(err)
}

func (r *gormAttractions) Update(ctx context.Context, attraction *models.Attraction) error {
	return translateError(r.db.WithContext(ctx).Save(attraction).Error)
}

func (r *gormAttractions) Delete(ctx context.Context, attractionID int) error {
	return deleteResult(r.db.WithContext(ctx).Where("attraction_id = ?", attractionID).Delete(&models.Attraction{}))
}

type gormReviews struct {
	db *gorm.DB
}

func (r *gormReviews) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Create(review).Error)
}

func (r *gormReviews) FindByReviewID(ctx context.Context, reviewID int) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&review).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *gormReviews) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.AttractionID != 0 {
		q = q.Where("attraction_id = ?", filter.AttractionID)
	}
	if filter.Reported != nil {
		q = q.Where("reported = ?", *filter.Reported)
	}

	var reviews []models.Review
	if err := q.Order("review_id").Find(&reviews).Error; err != nil {
		return nil, translateError(err)
	}
	return reviews, nil
}

func (r *gormReviews) IDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&models.Review{}).Order("review_id").Pluck("review_id", &ids).Error
	return ids, translateError(err)
}

func (r *gormReviews) Update(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Save(review).Error)
}

func (r *gormReviews) Delete(ctx context.Context, reviewID int) error {
	return deleteResult(r.db.WithContext(ctx).Where("review_id = ?", reviewID).Delete(&models.Review{}))
}
