package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// Activities persists class events.
type Activities interface {
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	List(ctx context.Context, offset, limit int) ([]*model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	Update(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (ActivityStats, error)
}

// ActivityStats splits activities by their date relative to now. Undated
// activities count toward the total only.
type ActivityStats struct {
	Total     int `json:"total_activities"`
	Upcoming  int `json:"upcoming_activities"`
	Completed int `json:"completed_activities"`
}

type activities struct {
	db *bun.DB
}

// NewActivitiesRepository creates the bun-backed activity store.
func NewActivitiesRepository(db *bun.DB) Activities {
	return &activities{db: db}
}

func (r *activities) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	record := &model.Activity{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateNotFound(err, "activity")
	}
	return record, nil
}

func (r *activities) List(ctx context.Context, offset, limit int) ([]*model.Activity, error) {
	var records []*model.Activity
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list activities")
	}
	return records, nil
}

func (r *activities) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	if _, err := r.db.NewInsert().Model(activity).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create activity")
	}
	return activity, nil
}

func (r *activities) Update(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	now := time.Now()
	activity.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(activity).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update activity")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, NewRecordNotFound("activity")
	}

	return activity, nil
}

func (r *activities) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*model.Activity)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete activity")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewRecordNotFound("activity")
	}

	return nil
}

func (r *activities) Stats(ctx context.Context) (ActivityStats, error) {
	var stats ActivityStats
	now := time.Now()

	total, err := r.db.NewSelect().Model((*model.Activity)(nil)).Count(ctx)
	if err != nil {
		return ActivityStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count activities")
	}

	upcoming, err := r.db.NewSelect().Model((*model.Activity)(nil)).
		Where("activity_date > ?", now).
		Count(ctx)
	if err != nil {
		return ActivityStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count upcoming activities")
	}

	completed, err := r.db.NewSelect().Model((*model.Activity)(nil)).
		Where("activity_date <= ?", now).
		Count(ctx)
	if err != nil {
		return ActivityStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count completed activities")
	}

	stats.Total = total
	stats.Upcoming = upcoming
	stats.Completed = completed

	return stats, nil
}
