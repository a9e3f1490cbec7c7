package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a back-office account. Public visitors never get one; only admins
// and moderators log in.
type User struct {
	gorm.Model
	Name           string     `json:"name" gorm:"column:name;type:varchar(150)"`
	Email          string     `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null"`
	Password       string     `json:"-" gorm:"column:password;type:varchar(191)"`
	PasswordSalt   string     `json:"-" gorm:"column:password_salt;type:varchar(64)"`
	RoleID         uint32     `json:"role_id" gorm:"column:role_id"`
	FailedAttempts int        `json:"failed_attempts" gorm:"column:failed_attempts;default:0"`
	LockedUntil    *time.Time `json:"locked_until" gorm:"column:locked_until"`
}
