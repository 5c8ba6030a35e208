package models

import (
	"time"
)

const AnonymousReviewer = "Anonymous"

type Review struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ReviewID     int       `gorm:"uniqueIndex;not null" json:"reviewId"`
	AttractionID int       `gorm:"index;not null" json:"attractionId"`
	FirstName    string    `gorm:"type:varchar(50)" json:"firstName"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review       string    `gorm:"type:varchar(1000)" json:"review"`
	Reported     bool      `gorm:"default:false;index" json:"reported"`
}

// ReportedReview pairs a flagged review with the name of the attraction it
// was left on, for the admin queue.
type ReportedReview struct {
	Review         Review
	AttractionName string
}
