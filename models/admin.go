package models

import (
	"time"
)

// Admin is a grant of elevated privilege to the user referenced by UserID.
type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	AdminID   int       `gorm:"uniqueIndex;not null" json:"admin_id"`
	UserID    int       `gorm:"index;not null" json:"user_id"`
}
