package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
)

var testSigningKey = []byte("test-signing-key-32-bytes-long!!")

func testIdentity() auth.Identity {
	return auth.Identity{
		ID:       42,
		Username: "zhang.wei",
		Role:     model.RoleStudent,
	}
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := auth.NewTokenService(testSigningKey, time.Hour, nil)

	token, err := svc.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "zhang.wei", claims.Username())
	assert.Equal(t, int64(42), claims.UID)
	assert.Equal(t, string(model.RoleStudent), claims.UserRole)
}

func TestTokenServiceExpiredToken(t *testing.T) {
	svc := auth.NewTokenService(testSigningKey, time.Hour, nil)

	token, err := svc.IssueWithTTL(testIdentity(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenServiceTamperedToken(t *testing.T) {
	svc := auth.NewTokenService(testSigningKey, time.Hour, nil)

	// An expired payload carrying another token's signature must fail on the
	// signature, never on the expiry.
	expired, err := svc.IssueWithTTL(testIdentity(), -time.Minute)
	require.NoError(t, err)

	other, err := svc.Issue(auth.Identity{ID: 7, Username: "li.na", Role: model.RoleTeacher})
	require.NoError(t, err)

	expiredParts := strings.Split(expired, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, expiredParts, 3)
	require.Len(t, otherParts, 3)

	tampered := expiredParts[0] + "." + expiredParts[1] + "." + otherParts[2]

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, auth.ErrTokenInvalidSignature)
}

func TestTokenServiceWrongKey(t *testing.T) {
	issuer := auth.NewTokenService(testSigningKey, time.Hour, nil)
	verifier := auth.NewTokenService([]byte("a completely different secret!!!"), time.Hour, nil)

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalidSignature)
}

func TestTokenServiceMalformedToken(t *testing.T) {
	svc := auth.NewTokenService(testSigningKey, time.Hour, nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty string", token: ""},
		{name: "Garbage", token: "not-a-token"},
		{name: "Two segments", token: "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		})
	}
}

func TestTokenServiceIndependentTokens(t *testing.T) {
	svc := auth.NewTokenService(testSigningKey, time.Hour, nil)

	first, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	second, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	// Issuing a second token never invalidates the first.
	_, err = svc.Validate(first)
	assert.NoError(t, err)
	_, err = svc.Validate(second)
	assert.NoError(t, err)
}
