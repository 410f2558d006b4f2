package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// NotificationFilter narrows ListByUser.
type NotificationFilter struct {
	UnreadOnly bool
	Offset     int
	Limit      int
}

// NotificationStats summarizes a user's notification counts.
type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
}

// Notifications persists per-user notifications. Every mutation is scoped by
// user id so one user can never touch another's rows.
type Notifications interface {
	ListByUser(ctx context.Context, userID int64, filter NotificationFilter) ([]*model.Notification, error)
	Create(ctx context.Context, notification *model.Notification) (*model.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	Stats(ctx context.Context, userID int64) (*NotificationStats, error)
}

type notifications struct {
	db *bun.DB
}

// NewNotificationsRepository creates the bun-backed notification store.
func NewNotificationsRepository(db *bun.DB) Notifications {
	return &notifications{db: db}
}

func (r *notifications) ListByUser(ctx context.Context, userID int64, filter NotificationFilter) ([]*model.Notification, error) {
	var records []*model.Notification
	q := r.db.NewSelect().
		Model(&records).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list notifications")
	}
	return records, nil
}

func (r *notifications) Create(ctx context.Context, notification *model.Notification) (*model.Notification, error) {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if _, err := r.db.NewInsert().Model(notification).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create notification")
	}
	return notification, nil
}

func (r *notifications) MarkRead(ctx context.Context, userID, id int64) error {
	res, err := r.db.NewUpdate().
		Model((*model.Notification)(nil)).
		Set("is_read = ?", true).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to mark notification read")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewRecordNotFound("notification")
	}
	return nil
}

func (r *notifications) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*model.Notification)(nil)).
		Set("is_read = ?", true).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to mark notifications read")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count marked notifications")
	}
	return affected, nil
}

func (r *notifications) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.NewDelete().
		Model((*model.Notification)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete notification")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewRecordNotFound("notification")
	}
	return nil
}

func (r *notifications) Stats(ctx context.Context, userID int64) (*NotificationStats, error) {
	total, err := r.db.NewSelect().
		Model((*model.Notification)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to count notifications")
	}

	unread, err := r.db.NewSelect().
		Model((*model.Notification)(nil)).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to count unread notifications")
	}

	return &NotificationStats{
		Total:  total,
		Unread: unread,
		Read:   total - unread,
	}, nil
}
