package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Activity is a class event that media items attach to.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:act"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Title        string     `bun:"title,notnull" json:"title"`
	Description  string     `bun:"description" json:"description,omitempty"`
	ActivityDate *time.Time `bun:"activity_date,nullzero" json:"activity_date,omitempty"`
	Location     string     `bun:"location" json:"location,omitempty"`
	CreatorID    int64      `bun:"creator_id,notnull" json:"creator_id"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// OwnerID identifies the user allowed to mutate this record.
func (a *Activity) OwnerID() int64 {
	return a.CreatorID
}
