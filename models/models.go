package models

import (
	"time"
)

// Nonce is a one-time value guarding replay in an OpenID handshake
type Nonce struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ServerURL string `gorm:"column:server_url;size:255;uniqueIndex:idx_nonce_server_ts_salt,priority:1" json:"server_url"`
	Timestamp int64  `gorm:"uniqueIndex:idx_nonce_server_ts_salt,priority:2" json:"timestamp"`
	Salt      string `gorm:"size:40;uniqueIndex:idx_nonce_server_ts_salt,priority:3" json:"salt"`
}

func (Nonce) TableName() string {
	return "social_auth_nonce"
}

// Association is a stored OpenID provider handshake credential. The secret
// is kept base64 encoded, never raw.
type Association struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ServerURL string `gorm:"column:server_url;size:255;uniqueIndex:idx_assoc_server_handle,priority:1" json:"server_url"`
	Handle    string `gorm:"size:255;uniqueIndex:idx_assoc_server_handle,priority:2" json:"handle"`
	Secret    string `gorm:"size:255" json:"-"`
	Issued    int64  `json:"issued"`
	Lifetime  int64  `json:"lifetime"`
	AssocType string `gorm:"column:assoc_type;size:64" json:"assoc_type"`
}

func (Association) TableName() string {
	return "social_auth_association"
}

// ExpiresAt returns the unix timestamp past which the association is stale.
func (a *Association) ExpiresAt() int64 {
	return a.Issued + a.Lifetime
}

// Code is an emailed verification code
type Code struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"size:200;uniqueIndex:idx_code_email,priority:2" json:"email"`
	Code  string `gorm:"size:32;index;uniqueIndex:idx_code_email,priority:1" json:"code"`
}

func (Code) TableName() string {
	return "social_auth_code"
}

// Partial is serialized in-progress multi-step authentication state,
// resumable by token
type Partial struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"size:32;index" json:"token"`
	Data      JSONMap   `gorm:"type:text" json:"data"`
	NextStep  int       `gorm:"column:next_step" json:"next_step"`
	Backend   string    `gorm:"size:32" json:"backend"`
	CreatedAt time.Time `json:"created_at"`
}

func (Partial) TableName() string {
	return "social_auth_partial"
}
