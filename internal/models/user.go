package models

import "time"

// User represents an application user.
// Password holds the bcrypt hash only and never serializes to JSON.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:255;not null" json:"name"`
	Email           string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password        string `gorm:"size:255;not null" json:"-"`
	IsAdmin         bool   `gorm:"default:false" json:"is_admin"`
	NumTransactions int    `gorm:"default:0" json:"num_transactions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
