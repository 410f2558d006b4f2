package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// Comments persists the comment forest.
type Comments interface {
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListRootsForMedia(ctx context.Context, mediaItemID int64, offset, limit int) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	DeleteWithReplies(ctx context.Context, id int64) error
}

type comments struct {
	db *bun.DB
}

// NewCommentsRepository creates the bun-backed comment store.
func NewCommentsRepository(db *bun.DB) Comments {
	return &comments{db: db}
}

func (r *comments) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	record := &model.Comment{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateNotFound(err, "comment")
	}
	return record, nil
}

// ListRootsForMedia returns top-level comments only; replies hang off their
// parent and are fetched by the client as needed.
func (r *comments) ListRootsForMedia(ctx context.Context, mediaItemID int64, offset, limit int) ([]*model.Comment, error) {
	var records []*model.Comment
	err := r.db.NewSelect().
		Model(&records).
		Where("media_item_id = ?", mediaItemID).
		Where("parent_id IS NULL").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list comments")
	}
	return records, nil
}

func (r *comments) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	if _, err := r.db.NewInsert().Model(comment).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create comment")
	}
	return comment, nil
}

// DeleteWithReplies removes a comment and its direct replies in one
// transaction. The cascade is one level deep only: replies-to-replies are
// left alone, matching the product's flat reply UI.
func (r *comments) DeleteWithReplies(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Comment)(nil)).
			Where("parent_id = ?", id).
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete comment replies")
		}

		res, err := tx.NewDelete().
			Model((*model.Comment)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to delete comment")
		}

		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return NewRecordNotFound("comment")
		}

		return nil
	})
}
