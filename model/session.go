package model

import (
	"time"

	"gorm.io/gorm"
)

// Session records an issued admin session token. Expired or soft-deleted rows
// are treated as logged out.
type Session struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"column:user_id;index;not null"`
	SessionToken string    `json:"session_token" gorm:"column:session_token;type:varchar(512);index;not null"`
	IPAddress    string    `json:"ip_address" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent    string    `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"column:expires_at;index"`
}
