package models

import (
	"time"
)

type AttractionStatus string

const (
	StatusPending  AttractionStatus = "pending"
	StatusApproved AttractionStatus = "approved"
	StatusRejected AttractionStatus = "rejected"
)

func (s AttractionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Editable reports whether the creator may still change the submission.
func (s AttractionStatus) Editable() bool {
	return s == StatusPending || s == StatusRejected
}

// Deletable reports whether the creator may withdraw the submission.
func (s AttractionStatus) Deletable() bool {
	return s == StatusPending
}

// CanTransition reports whether moving from s to next is a defined
// transition. Nothing leaves approved.
func (s AttractionStatus) CanTransition(next AttractionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusPending || next == StatusApproved || next == StatusRejected
	case StatusRejected:
		return next == StatusPending
	}
	return false
}

type Attraction struct {
	ID           uint             `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	AttractionID int              `gorm:"uniqueIndex;not null" json:"attractionId"`
	Name         string           `gorm:"type:varchar(100);not null" json:"name"`
	Description  string           `gorm:"type:varchar(1000)" json:"description"`
	Location     string           `gorm:"type:varchar(100)" json:"location"`
	Image        string           `gorm:"type:varchar(255)" json:"image"` // relative path, e.g. images/museum.jpg
	Status       AttractionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedBy    int              `gorm:"index" json:"createdBy"`
}
