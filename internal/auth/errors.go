package auth

import (
	"github.com/goliatone/go-errors"
)

// ErrMismatchedHashAndPassword is returned for any credential failure so a
// caller cannot distinguish a wrong password from an unknown user.
var ErrMismatchedHashAndPassword = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrNoEmptyPassword rejects hashing an empty string.
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMPTY_PASSWORD")

// ErrTokenExpired is returned once a token's expiry instant has passed.
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenInvalidSignature is returned when the payload does not match its
// signature. Checked before expiry so a forged token never reads as merely
// expired.
var ErrTokenInvalidSignature = errors.New("session token signature mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_BAD_SIGNATURE")

// ErrTokenMalformed is returned for tokens that do not parse at all.
var ErrTokenMalformed = errors.New("session token malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrUnknownSubject is returned when a valid token names a user that no
// longer exists.
var ErrUnknownSubject = errors.New("unknown token subject", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("UNKNOWN_SUBJECT")

// ErrInactiveAccount is returned when the subject exists but is disabled.
// Activity status is re-checked on every request, not cached in the token.
var ErrInactiveAccount = errors.New("account is inactive", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INACTIVE_ACCOUNT")

// ErrAccountDisabled is the login-time variant of an inactive account. The
// original API reports this as a 400 rather than a 401 because the
// credentials themselves were correct.
var ErrAccountDisabled = errors.New("account has been disabled", errors.CategoryAuth).
	WithCode(errors.CodeBadRequest).
	WithTextCode("ACCOUNT_DISABLED")

// ErrForbidden is the uniform denial for ownership/role failures. Distinct
// from the 401 family: the session is valid, the actor just may not act.
var ErrForbidden = errors.New("insufficient permissions for this resource", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("FORBIDDEN")
