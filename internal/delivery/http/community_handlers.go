package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/service"
)

// GetFavoriteStatus reports whether the current user saved the trail
func (h *Handler) GetFavoriteStatus(c *fiber.Ctx) error {
	ok, err := h.svc.Community.IsFavorite(c.Context(), currentUser(c).ID, c.Params("id"))
	if err != nil {
		return fail(err, "Failed to check favorite")
	}
	return c.JSON(fiber.Map{"favorite": ok})
}

// AddFavorite saves the trail for the current user
func (h *Handler) AddFavorite(c *fiber.Ctx) error {
	if err := h.svc.Community.AddFavorite(c.Context(), currentUser(c).ID, c.Params("id")); err != nil {
		return fail(err, "Failed to save favorite")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorite": true})
}

// RemoveFavorite unsaves the trail
func (h *Handler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.svc.Community.RemoveFavorite(c.Context(), currentUser(c).ID, c.Params("id")); err != nil {
		return fail(err, "Failed to remove favorite")
	}
	return c.JSON(fiber.Map{"favorite": false})
}

// ListFavorites returns the trails the current user saved
func (h *Handler) ListFavorites(c *fiber.Ctx) error {
	trails, err := h.svc.Community.FavoriteTrails(c.Context(), currentUser(c).ID)
	if err != nil {
		return fail(err, "Failed to fetch favorites")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    trails,
		"count":   len(trails),
	})
}

// ListReviews returns a trail's reviews with their average
func (h *Handler) ListReviews(c *fiber.Ctx) error {
	summary, err := h.svc.Community.Reviews(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to fetch reviews")
	}
	return c.JSON(summary)
}

// AddReview stores a review by the current user
func (h *Handler) AddReview(c *fiber.Ctx) error {
	var in service.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	review, err := h.svc.Community.AddReview(c.Context(), currentUser(c).ID, c.Params("id"), in)
	if err != nil {
		return fail(err, "Failed to save review")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    review,
	})
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.svc.Community.Profile(c.Context(), currentUser(c))
	if err != nil {
		return fail(err, "Failed to fetch profile")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

// UpdateProfile replaces the editable profile fields
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var in service.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := h.svc.Community.UpdateProfile(c.Context(), currentUser(c).ID, in)
	if err != nil {
		return fail(err, "Failed to save profile")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}
