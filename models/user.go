package models

import (
	"strings"
	"time"
)

// UnusablePasswordPrefix marks accounts that authenticate only through a
// social provider. Hashes starting with it never validate.
const UnusablePasswordPrefix = "!"

// User is the local account a social login is linked to
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:254;index" json:"email"`
	Password  string    `gorm:"size:128" json:"-"` // bcrypt hash, or "!..." when unusable
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasUsablePassword reports whether the account can sign in with a password
// at all. Accounts created through a provider carry an unusable sentinel.
func (u *User) HasUsablePassword() bool {
	return u.Password != "" && !strings.HasPrefix(u.Password, UnusablePasswordPrefix)
}

// UserSocialAuth links a local user to one identity at an external provider.
// The (provider, uid) pair is unique across the table.
type UserSocialAuth struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `json:"-"`
	Provider  string    `gorm:"size:32;uniqueIndex:idx_provider_uid,priority:1" json:"provider"`
	UID       string    `gorm:"column:uid;size:255;uniqueIndex:idx_provider_uid,priority:2" json:"uid"`
	ExtraData JSONMap   `gorm:"column:extra_data;type:text" json:"extra_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSocialAuth) TableName() string {
	return "social_auth_usersocialauth"
}
