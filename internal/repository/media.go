package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// MediaFilter narrows media listings; zero values mean no filtering.
type MediaFilter struct {
	ActivityID int64
	MediaType  model.MediaType
	Offset     int
	Limit      int
}

// Media persists uploaded photo/video records.
type Media interface {
	GetByID(ctx context.Context, id int64) (*model.MediaItem, error)
	List(ctx context.Context, filter MediaFilter) ([]*model.MediaItem, error)
	Create(ctx context.Context, item *model.MediaItem) (*model.MediaItem, error)
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (MediaStats, error)
}

// MediaStats summarizes stored media and accumulated views.
type MediaStats struct {
	TotalMedia  int   `json:"total_media"`
	TotalPhotos int   `json:"total_photos"`
	TotalVideos int   `json:"total_videos"`
	TotalViews  int64 `json:"total_views"`
}

type media struct {
	db *bun.DB
}

// NewMediaRepository creates the bun-backed media store.
func NewMediaRepository(db *bun.DB) Media {
	return &media{db: db}
}

func (r *media) GetByID(ctx context.Context, id int64) (*model.MediaItem, error) {
	record := &model.MediaItem{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateNotFound(err, "media item")
	}
	return record, nil
}

func (r *media) List(ctx context.Context, filter MediaFilter) ([]*model.MediaItem, error) {
	var records []*model.MediaItem
	q := r.db.NewSelect().Model(&records).Order("id ASC")

	if filter.ActivityID > 0 {
		q = q.Where("activity_id = ?", filter.ActivityID)
	}
	if filter.MediaType != "" {
		q = q.Where("media_type = ?", filter.MediaType)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list media items")
	}
	return records, nil
}

func (r *media) Create(ctx context.Context, item *model.MediaItem) (*model.MediaItem, error) {
	if item.UploadTime.IsZero() {
		item.UploadTime = time.Now()
	}

	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create media item")
	}
	return item, nil
}

// IncrementViews bumps the counter in a single statement so concurrent reads
// never lose an increment.
func (r *media) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.NewUpdate().
		Model((*model.MediaItem)(nil)).
		Set("views_count = views_count + 1").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to increment views")
	}
	return nil
}

func (r *media) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*model.MediaItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete media item")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewRecordNotFound("media item")
	}

	return nil
}

func (r *media) Stats(ctx context.Context) (MediaStats, error) {
	var stats MediaStats

	total, err := r.db.NewSelect().Model((*model.MediaItem)(nil)).Count(ctx)
	if err != nil {
		return MediaStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count media items")
	}

	photos, err := r.db.NewSelect().Model((*model.MediaItem)(nil)).
		Where("media_type = ?", model.MediaTypePhoto).
		Count(ctx)
	if err != nil {
		return MediaStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count photos")
	}

	videos, err := r.db.NewSelect().Model((*model.MediaItem)(nil)).
		Where("media_type = ?", model.MediaTypeVideo).
		Count(ctx)
	if err != nil {
		return MediaStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count videos")
	}

	var views int64
	err = r.db.NewSelect().
		Model((*model.MediaItem)(nil)).
		ColumnExpr("COALESCE(SUM(views_count), 0)").
		Scan(ctx, &views)
	if err != nil {
		return MediaStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to sum views")
	}

	stats.TotalMedia = total
	stats.TotalPhotos = photos
	stats.TotalVideos = videos
	stats.TotalViews = views

	return stats, nil
}
