// Package repository persists classlog records through bun. Each repository
// is an interface over hand-written bun queries; conflicts and missing rows
// are translated into the rich error taxonomy at this boundary so callers
// never see raw driver errors.
package repository

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// Manager exposes all repositories plus the shared transaction runner.
type Manager interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() Users
	Activities() Activities
	Media() Media
	Comments() Comments
	Notifications() Notifications
}

type mngr struct {
	db            *bun.DB
	users         Users
	activities    Activities
	media         Media
	comments      Comments
	notifications Notifications
}

// NewManager builds every repository over one bun handle.
func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:            db,
		users:         NewUsersRepository(db),
		activities:    NewActivitiesRepository(db),
		media:         NewMediaRepository(db),
		comments:      NewCommentsRepository(db),
		notifications: NewNotificationsRepository(db),
	}
}

func (m *mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *mngr) Users() Users                 { return m.users }
func (m *mngr) Activities() Activities       { return m.activities }
func (m *mngr) Media() Media                 { return m.media }
func (m *mngr) Comments() Comments           { return m.comments }
func (m *mngr) Notifications() Notifications { return m.notifications }

// CreateTables bootstraps the schema at startup. Unique constraints declared
// on the models are the real arbiter for registration races; the in-code
// pre-checks only produce friendlier errors.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*model.User)(nil),
		(*model.Activity)(nil),
		(*model.MediaItem)(nil),
		(*model.Comment)(nil),
		(*model.Notification)(nil),
	}

	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create table")
		}
	}

	return nil
}
