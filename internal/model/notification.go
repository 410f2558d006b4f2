package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Notification is a per-user message created when someone comments on a
// user's media item or replies to their comment.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:ntf"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	Title            string    `bun:"title,notnull" json:"title"`
	Message          string    `bun:"message,notnull" json:"message"`
	UserID           int64     `bun:"user_id,notnull" json:"user_id"`
	IsRead           bool      `bun:"is_read,notnull,default:false" json:"is_read"`
	RelatedCommentID *int64    `bun:"related_comment_id,nullzero" json:"related_comment_id,omitempty"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
