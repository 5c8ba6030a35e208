package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"golang.org/x/text/cases"
)

// MemoryStore keeps every collection in process memory. It backs local
// development (STORE=memory) and the test suites.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         uint
	users       map[int]models.User
	admins      map[int]models.Admin
	attractions map[int]models.Attraction
	reviews     map[int]models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int]models.User),
		admins:      make(map[int]models.Admin),
		attractions: make(map[int]models.Attraction),
		reviews:     make(map[int]models.Review),
	}
}

func (s *MemoryStore) Users() UserRepository             { return memUsers{s} }
func (s *MemoryStore) Admins() AdminRepository           { return memAdmins{s} }
func (s *MemoryStore) Attractions() AttractionRepository { return memAttractions{s} }
func (s *MemoryStore) Reviews() ReviewRepository         { return memReviews{s} }

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// nextSeq must be called with mu held for writing.
func (s *MemoryStore) nextSeq() uint {
	s.seq++
	return s.seq
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.UserID]; ok {
		return ErrDuplicate
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = r.s.nextSeq()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.UserID] = *user
	return nil
}

func (r memUsers) FindByUserID(_ context.Context, userID int) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) List(_ context.Context, filter UserFilter) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []models.User
	for _, id := range sortedKeys(r.s.users) {
		if filter.ExcludeUserID != 0 && id == filter.ExcludeUserID {
			continue
		}
		users = append(users, r.s.users[id])
	}
	return users, nil
}

func (r memUsers) IDs(_ context.Context) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.users), nil
}

func (r memUsers) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.UserID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.UserID] = *user
	return nil
}

type memAdmins struct{ s *MemoryStore }

func (r memAdmins) Create(_ context.Context, admin *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.admins[admin.AdminID]; ok {
		return ErrDuplicate
	}
	admin.ID = r.s.nextSeq()
	admin.CreatedAt = time.Now()
	r.s.admins[admin.AdminID] = *admin
	return nil
}

func (r memAdmins) FindByUserID(_ context.Context, userID int) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range sortedKeys(r.s.admins) {
		if a := r.s.admins[id]; a.UserID == userID {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r memAdmins) List(_ context.Context) ([]models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var admins []models.Admin
	for _, id := range sortedKeys(r.s.admins) {
		admins = append(admins, r.s.admins[id])
	}
	return admins, nil
}

func (r memAdmins) IDs(_ context.Context) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.admins), nil
}

func (r memAdmins) Delete(_ context.Context, adminID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.admins[adminID]; !ok {
		return ErrNotFound
	}
	delete(r.s.admins, adminID)
	return nil
}

type memAttractions struct{ s *MemoryStore }

func (r memAttractions) Create(_ context.Context, attraction *models.Attraction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attractions[attraction.AttractionID]; ok {
		return ErrDuplicate
	}
	now := time.Now()
	attraction.ID = r.s.nextSeq()
	attraction.CreatedAt, attraction.UpdatedAt = now, now
	r.s.attractions[attraction.AttractionID] = *attraction
	return nil
}

func (r memAttractions) FindByAttractionID(_ context.Context, attractionID int) (*models.Attraction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attractions[attractionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r memAttractions) List(_ context.Context, filter AttractionFilter) ([]models.Attraction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	fold := cases.Fold()
	needle := fold.String(filter.NameContains)

	var attractions []models.Attraction
	for _, id := range sortedKeys(r.s.attractions) {
		a := r.s.attractions[id]
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ExcludeStatus != "" && a.Status == filter.ExcludeStatus {
			continue
		}
		if filter.CreatedBy != 0 && a.CreatedBy != filter.CreatedBy {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(a.Name), needle) {
			continue
		}
		attractions = append(attractions, a)
	}
	return attractions, nil
}

func (r memAttractions) IDs(_ context.Context) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.attractions), nil
}

func (r memAttractions) Update(_ context.Context, attraction *models.Attraction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attractions[attraction.AttractionID]; !ok {
		return ErrNotFound
	}
	attraction.UpdatedAt = time.Now()
	r.s.attractions[attraction.AttractionID] = *attraction
	return nil
}

func (r memAttractions) Delete(_ context.Context, attractionID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attractions[attractionID]; !ok {
		return ErrNotFound
	}
	delete(r.s.attractions, attractionID)
	return nil
}

type memReviews struct{ s *MemoryStore }

func (r memReviews) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[review.ReviewID]; ok {
		return ErrDuplicate
	}
	now := time.Now()
	review.ID = r.s.nextSeq()
	review.CreatedAt, review.UpdatedAt = now, now
	r.s.reviews[review.ReviewID] = *review
	return nil
}

func (r memReviews) FindByReviewID(_ context.Context, reviewID int) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rv, ok := r.s.reviews[reviewID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rv, nil
}

func (r memReviews) List(_ context.Context, filter ReviewFilter) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var reviews []models.Review
	for _, id := range sortedKeys(r.s.reviews) {
		rv := r.s.reviews[id]
		if filter.AttractionID != 0 && rv.AttractionID != filter.AttractionID {
			continue
		}
		if filter.Reported != nil && rv.Reported != *filter.Reported {
			continue
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

func (r memReviews) IDs(_ context.Context) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedKeys(r.s.reviews), nil
}

func (r memReviews) Update(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[review.ReviewID]; !ok {
		return ErrNotFound
	}
	review.UpdatedAt = time.Now()
	r.s.reviews[review.ReviewID] = *review
	return nil
}

func (r memReviews) Delete(_ context.Context, reviewID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[reviewID]; !ok {
		return ErrNotFound
	}
	delete(r.s.reviews, reviewID)
	return nil
}
