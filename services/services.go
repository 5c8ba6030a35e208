// Package services holds the moderation rules: id allocation, ownership and
// admin guards, the attraction status machine and review dispositions.
package services

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
)

type Services struct {
	Auth        *AuthService
	Attractions *AttractionService
	Reviews     *ReviewService
	Admin       *AdminService
}

func New(st store.Store, locker Locker) *Services {
	ids := NewIDAllocator(locker)
	attractions := NewAttractionService(st, ids)
	reviews := NewReviewService(st, ids)
	return &Services{
		Auth:        NewAuthService(st, ids),
		Attractions: attractions,
		Reviews:     reviews,
		Admin:       NewAdminService(st, ids, attractions, reviews),
	}
}
