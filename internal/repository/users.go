package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/classlog/classlog/internal/model"
)

// Users is the credential store: lookups by each unique identifier plus
// registration and profile persistence.
type Users interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, error)
	Register(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
	Stats(ctx context.Context) (UserStats, error)
}

// UserStats summarizes accounts by role and activity.
type UserStats struct {
	Total    int `json:"total_users"`
	Students int `json:"students_count"`
	Teachers int `json:"teachers_count"`
	Admins   int `json:"admins_count"`
	Active   int `json:"active_users"`
}

type users struct {
	db *bun.DB
}

// NewUsersRepository creates the bun-backed credential store.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *users) GetByStudentID(ctx context.Context, studentID string) (*model.User, error) {
	return r.getBy(ctx, "student_id", studentID)
}

func (r *users) getBy(ctx context.Context, column string, value any) (*model.User, error) {
	record := &model.User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateNotFound(err, "user")
	}
	return record, nil
}

func (r *users) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	var records []*model.User
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return records, nil
}

// Register stores a new account. Uniqueness is pre-checked in a fixed order
// (username, email, then student id when present) so the common case gets a
// precise conflict; the UNIQUE constraints settle concurrent registrations,
// and a constraint loss is translated back into the same Conflict(field).
// A failed registration leaves no partial record: it is a single insert.
func (r *users) Register(ctx context.Context, user *model.User) (*model.User, error) {
	if _, err := r.GetByUsername(ctx, user.Username); err == nil {
		return nil, NewConflict("username")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return nil, NewConflict("email")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if user.StudentID != nil && *user.StudentID != "" {
		if _, err := r.GetByStudentID(ctx, *user.StudentID); err == nil {
			return nil, NewConflict("student_id")
		} else if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	prepareUserDefaults(user)

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, translateUserConstraint(err)
	}

	return user, nil
}

func (r *users) Update(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, translateUserConstraint(err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, NewRecordNotFound("user")
	}

	return user, nil
}

func (r *users) Stats(ctx context.Context) (UserStats, error) {
	var stats UserStats
	counts := []struct {
		dst   *int
		apply func(*bun.SelectQuery) *bun.SelectQuery
	}{
		{&stats.Total, func(q *bun.SelectQuery) *bun.SelectQuery { return q }},
		{&stats.Students, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("role = ?", model.RoleStudent)
		}},
		{&stats.Teachers, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("role = ?", model.RoleTeacher)
		}},
		{&stats.Admins, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("role = ?", model.RoleAdmin)
		}},
		{&stats.Active, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("is_active = ?", true)
		}},
	}

	for _, c := range counts {
		n, err := c.apply(r.db.NewSelect().Model((*model.User)(nil))).Count(ctx)
		if err != nil {
			return UserStats{}, errors.Wrap(err, errors.CategoryInternal, "failed to count users")
		}
		*c.dst = n
	}

	return stats, nil
}

func prepareUserDefaults(record *model.User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = model.RoleStudent
	}

	record.IsActive = true

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
}
