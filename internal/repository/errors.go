package repository

import (
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
)

// NewRecordNotFound builds the 404-family error every repository returns for
// a missing row.
func NewRecordNotFound(resource string) *errors.Error {
	return errors.New(resource+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("NOT_FOUND").
		WithMetadata(map[string]any{"resource": resource})
}

// NewConflict builds the duplicate-value error for a uniqueness failure. The
// API reports duplicates as 400s, so the code stays CodeBadRequest while the
// category keeps the conflict semantics.
func NewConflict(field string) *errors.Error {
	return errors.New("duplicate "+field, errors.CategoryConflict).
		WithCode(errors.CodeBadRequest).
		WithTextCode("DUPLICATE_" + strings.ToUpper(field)).
		WithMetadata(map[string]any{"field": field})
}

// translateNotFound maps the driver's empty-result error into the taxonomy.
func translateNotFound(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NewRecordNotFound(resource)
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to load "+resource)
}

// userConstraintColumns maps constraint text back to the conflicting field.
// SQLite reports "UNIQUE constraint failed: users.username"; Postgres names
// the index instead, so both spellings are checked.
var userConstraintColumns = []struct {
	needle string
	field  string
}{
	{"users.username", "username"},
	{"users_username", "username"},
	{"users.email", "email"},
	{"users_email", "email"},
	{"users.student_id", "student_id"},
	{"users_student_id", "student_id"},
}

// translateUserConstraint converts a storage-level uniqueness violation into
// the same Conflict(field) the pre-checks produce. The constraint is the
// true arbiter of a registration race; this keeps the loser's error typed.
func translateUserConstraint(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "duplicate key value") {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store user")
	}

	for _, c := range userConstraintColumns {
		if strings.Contains(msg, c.needle) {
			return NewConflict(c.field)
		}
	}

	return errors.Wrap(err, errors.CategoryConflict, "user violates a uniqueness constraint").
		WithCode(errors.CodeBadRequest)
}
