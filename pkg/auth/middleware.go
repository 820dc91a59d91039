package auth

import (
	"strings"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const contextKeyUserID = "auth_user_id"

// Middleware authenticates write routes with a bearer token. When disabled
// (AUTH_ENABLED unset) every request passes through untouched.
type Middleware struct {
	tokens  *TokenService
	enabled bool
}

// NewMiddleware creates the auth middleware
func NewMiddleware(tokens *TokenService, enabled bool) *Middleware {
	return &Middleware{
		tokens:  tokens,
		enabled: enabled,
	}
}

// Require returns a handler that rejects requests without a valid token
func (m *Middleware) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return ErrMissingToken()
		}

		claims, err := m.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return err
		}

		c.Locals(contextKeyUserID, claims.UserID)
		return c.Next()
	}
}

// UserIDFromContext returns the authenticated user, if any
func UserIDFromContext(c *fiber.Ctx) (kernel.UserID, bool) {
	id, ok := c.Locals(contextKeyUserID).(kernel.UserID)
	return id, ok
}
