package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/classlog/classlog/internal/auth"
)

const identityKey = "identity"

// requireAuth extracts the bearer token from the Authorization header,
// resolves it into an identity, and stores the identity in the request
// locals. Requests without a valid token never reach the handler.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	raw, err := extractBearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	identity, err := s.resolver.Resolve(c.Context(), raw)
	if err != nil {
		return err
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// currentIdentity returns the identity stored by requireAuth. Handlers are
// only registered behind the middleware so the local is always set.
func currentIdentity(c *fiber.Ctx) auth.Identity {
	identity, _ := c.Locals(identityKey).(auth.Identity)
	return identity
}

func extractBearerToken(header string) (string, error) {
	const scheme = "Bearer"

	if len(header) > len(scheme)+1 && strings.EqualFold(header[:len(scheme)], scheme) {
		if token := strings.TrimSpace(header[len(scheme):]); token != "" {
			return token, nil
		}
	}

	return "", auth.ErrTokenMalformed
}
