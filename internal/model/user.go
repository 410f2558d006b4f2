package model

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the identity record. The password digest never serializes to JSON;
// callers that need a transport shape use the server package's user payload.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	Username     string  `bun:"username,notnull,unique" json:"username"`
	Email        string  `bun:"email,notnull,unique" json:"email"`
	PasswordHash string  `bun:"password_hash,notnull" json:"-"`
	FullName     string  `bun:"full_name,notnull" json:"full_name"`
	StudentID    *string `bun:"student_id,unique,nullzero" json:"student_id,omitempty"`
	Role         Role    `bun:"role,notnull" json:"role"`

	AvatarURL string `bun:"avatar_url" json:"avatar_url,omitempty"`
	Bio       string `bun:"bio" json:"bio,omitempty"`
	Phone     string `bun:"phone" json:"phone,omitempty"`
	QQ        string `bun:"qq" json:"qq,omitempty"`
	WeChat    string `bun:"wechat" json:"wechat,omitempty"`
	Dormitory string `bun:"dormitory" json:"dormitory,omitempty"`
	Hometown  string `bun:"hometown" json:"hometown,omitempty"`

	IsActive  bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}
