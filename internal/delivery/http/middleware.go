package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/auth"
	"github.com/trilhasbrasil/backend/internal/domain"
)

const userKey = "user"

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token. The 401 body
// tells the client where to send the user to sign in.
func RequireAuth(sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := sessions.Verify(c.Context(), bearerToken(c))
		if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
			return fail(err, "Failed to verify session")
		}
		if err != nil {
			return &APIError{
				Code:     fiber.StatusUnauthorized,
				Message:  "Authentication required",
				Redirect: "/login?next=" + url.QueryEscape(c.Path()),
			}
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) domain.User {
	user, _ := c.Locals(userKey).(domain.User)
	return user
}
