package http

import (
	"github.com/gofiber/fiber/v2"
)

type signInRequest struct {
	AccessToken string `json:"access_token"`
}

// SignIn verifies the access token from the body or Authorization header
// and announces the session
func (h *Handler) SignIn(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		var req signInRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		token = req.AccessToken
	}
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "access_token is required")
	}

	user, err := h.svc.Sessions.SignIn(c.Context(), token)
	if err != nil {
		return fail(err, "Failed to sign in")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// SignOut ends the current session; the user's active hikes are stopped
// by the sign-out subscribers
func (h *Handler) SignOut(c *fiber.Ctx) error {
	h.svc.Sessions.SignOut(currentUser(c))
	return c.JSON(fiber.Map{"success": true})
}

// Me returns the authenticated user
func (h *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"user":    currentUser(c),
	})
}
