package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Logger is the minimal logging surface auth components need.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defLogger struct{}

func (defLogger) Debug(msg string, args ...any) { fmt.Printf("[DBG] AUTH "+newline(msg), args...) }
func (defLogger) Info(msg string, args ...any)  { fmt.Printf("[INF] AUTH "+newline(msg), args...) }
func (defLogger) Warn(msg string, args ...any)  { fmt.Printf("[WRN] AUTH "+newline(msg), args...) }
func (defLogger) Error(msg string, args ...any) { fmt.Printf("[ERR] AUTH "+newline(msg), args...) }

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

const tokenIssuer = "classlog"

// TokenService issues and validates stateless HS256 session tokens. It holds
// the only copy of the signing secret; validation is a pure computation with
// no store access and no lock.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	logger     Logger
}

// NewTokenService creates a TokenService with the process-wide signing key.
func NewTokenService(signingKey []byte, ttl time.Duration, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenService{
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger,
	}
}

// Issue seals a token for the identity using the configured TTL.
func (ts *TokenService) Issue(identity Identity) (string, error) {
	return ts.IssueWithTTL(identity, ts.ttl)
}

// IssueWithTTL seals a token that expires ttl from now. Issuance keeps no
// state: two tokens for the same subject are independent and each remains
// valid until its own expiry.
func (ts *TokenService) IssueWithTTL(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:      identity.ID,
		UserRole: string(identity.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signed, nil
}

// Validate parses and verifies a token string. jwt/v5 recomputes the
// signature over the claimed payload before validating claims, so a forged
// token fails as ErrTokenInvalidSignature even when its expiry is in the
// future. Expiry is a hard boundary: no leeway is configured.
func (ts *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
