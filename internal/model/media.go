package model

import (
	"time"

	"github.com/uptrace/bun"
)

// MediaType distinguishes stored photos from videos.
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

// IsValid reports whether the value is a known media type.
func (m MediaType) IsValid() bool {
	return m == MediaTypePhoto || m == MediaTypeVideo
}

// MediaItem is an uploaded photo or video attached to an activity.
// FilePath is relative to the upload root so the frontend can prefix it
// with the static /uploads mount.
type MediaItem struct {
	bun.BaseModel `bun:"table:media_items,alias:med"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	Filename         string    `bun:"filename,notnull" json:"filename"`
	OriginalFilename string    `bun:"original_filename,notnull" json:"original_filename"`
	FilePath         string    `bun:"file_path,notnull" json:"file_path"`
	FileSize         int64     `bun:"file_size" json:"file_size"`
	MediaType        MediaType `bun:"media_type,notnull" json:"media_type"`
	Title            string    `bun:"title" json:"title,omitempty"`
	Description      string    `bun:"description" json:"description,omitempty"`
	ActivityID       int64     `bun:"activity_id,notnull" json:"activity_id"`
	UploaderID       int64     `bun:"uploader_id,notnull" json:"uploader_id"`
	UploadTime       time.Time `bun:"upload_time,nullzero,notnull,default:current_timestamp" json:"upload_time"`
	ViewsCount       int64     `bun:"views_count,notnull,default:0" json:"views_count"`
}

// OwnerID identifies the user allowed to mutate this record.
func (m *MediaItem) OwnerID() int64 {
	return m.UploaderID
}
