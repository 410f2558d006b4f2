package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment belongs to a media item. Comments form a forest through ParentID;
// a nil parent marks a root comment. Deleting a comment removes its direct
// replies only, never deeper descendants.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	Content     string     `bun:"content,notnull" json:"content"`
	MediaItemID int64      `bun:"media_item_id,notnull" json:"media_item_id"`
	AuthorID    int64      `bun:"author_id,notnull" json:"author_id"`
	ParentID    *int64     `bun:"parent_id,nullzero" json:"parent_id,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// OwnerID identifies the user allowed to mutate this record.
func (c *Comment) OwnerID() int64 {
	return c.AuthorID
}
