package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/domain"
)

type hikeView struct {
	domain.Hike
	Elapsed string `json:"elapsed"`
}

func viewHike(h domain.Hike) hikeView {
	return hikeView{Hike: h, Elapsed: h.Elapsed()}
}

// StartHike begins recording on the trail in the path
func (h *Handler) StartHike(c *fiber.Ctx) error {
	hike, err := h.svc.Hikes.Start(c.Context(), currentUser(c).ID, c.Params("id"))
	if err != nil {
		return fail(err, "Failed to start hike")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    viewHike(hike),
	})
}

// ListHikes returns active and finished hikes of the current user
func (h *Handler) ListHikes(c *fiber.Ctx) error {
	hikes, err := h.svc.Hikes.List(c.Context(), currentUser(c).ID)
	if err != nil {
		return fail(err, "Failed to fetch hikes")
	}
	views := make([]hikeView, 0, len(hikes))
	for _, hk := range hikes {
		views = append(views, viewHike(hk))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}

// GetHike returns one hike
func (h *Handler) GetHike(c *fiber.Ctx) error {
	hike, err := h.svc.Hikes.Get(c.Context(), currentUser(c).ID, c.Params("id"))
	if err != nil {
		return fail(err, "Failed to fetch hike")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    viewHike(hike),
	})
}

type hikeAction func(ctx context.Context, userID, hikeID string) (domain.Hike, error)

func (h *Handler) hikeTransition(action hikeAction, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hike, err := action(c.Context(), currentUser(c).ID, c.Params("id"))
		if err != nil {
			return fail(err, failure)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    viewHike(hike),
		})
	}
}

// PauseHike suspends a recording
func (h *Handler) PauseHike(c *fiber.Ctx) error {
	return h.hikeTransition(h.svc.Hikes.Pause, "Failed to pause hike")(c)
}

// ResumeHike continues a paused recording
func (h *Handler) ResumeHike(c *fiber.Ctx) error {
	return h.hikeTransition(h.svc.Hikes.Resume, "Failed to resume hike")(c)
}

// StopHike ends a recording and stores it
func (h *Handler) StopHike(c *fiber.Ctx) error {
	return h.hikeTransition(h.svc.Hikes.Stop, "Failed to stop hike")(c)
}
