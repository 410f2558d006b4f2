package auth

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/classlog/classlog/internal/model"
)

// UserStore is the slice of the credential store the resolver needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionResolver turns a raw bearer token into an authenticated identity.
// It performs exactly one store read per request; the account's active flag
// is re-checked every time rather than trusted from the token.
type SessionResolver struct {
	tokens *TokenService
	users  UserStore
	logger Logger
}

// NewSessionResolver wires the token service and user store together.
func NewSessionResolver(tokens *TokenService, users UserStore, logger Logger) *SessionResolver {
	if logger == nil {
		logger = defLogger{}
	}
	return &SessionResolver{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// Resolve validates the raw token and loads the subject's current record.
// Every failure maps to the 401 family; callers never learn which stage
// failed beyond the rich error's text code.
func (r *SessionResolver) Resolve(ctx context.Context, rawToken string) (Identity, error) {
	claims, err := r.tokens.Validate(rawToken)
	if err != nil {
		return Identity{}, err
	}

	user, err := r.users.GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.IsNotFound(err) {
			return Identity{}, ErrUnknownSubject
		}
		return Identity{}, errors.Wrap(err, errors.CategoryInternal, "failed to load token subject")
	}

	if !user.IsActive {
		r.logger.Warn("rejected token for inactive account", "username", user.Username)
		return Identity{}, ErrInactiveAccount
	}

	return Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Login verifies a username/password pair and issues a session token for it.
// Unknown users and wrong passwords collapse into the same credential error;
// a disabled account is reported separately since the credentials were good.
func (r *SessionResolver) Login(ctx context.Context, username, password string) (string, Identity, error) {
	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", Identity{}, ErrMismatchedHashAndPassword
		}
		return "", Identity{}, errors.Wrap(err, errors.CategoryInternal, "failed to load user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", Identity{}, err
	}

	if !user.IsActive {
		return "", Identity{}, ErrAccountDisabled
	}

	identity := Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	token, err := r.tokens.Issue(identity)
	if err != nil {
		return "", Identity{}, err
	}

	return token, identity, nil
}
