package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/auth"
	"github.com/trilhasbrasil/backend/internal/service"
)

// Services groups everything the handlers depend on
type Services struct {
	Weather   *service.WeatherService
	Catalog   *service.CatalogService
	Maps      *service.MapService
	Community *service.CommunityService
	Hikes     *service.HikeService
	Sessions  *auth.Sessions
	Repo      service.DataRepository
}

// Handler contains all HTTP handlers
type Handler struct {
	svc Services
}

// NewHandler creates a new handler
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status, store := "ok", "ok"
	code := fiber.StatusOK
	if err := h.svc.Repo.Health(c.Context()); err != nil {
		status, store = "degraded", err.Error()
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "trilhas-backend",
		"version": "1.0.0",
		"store":   store,
	})
}

// GetWeather returns the 5 day forecast for ?location=
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Location parameter is required")
	}

	report, err := h.svc.Weather.GetForecast(c.Context(), location)
	if err != nil {
		return fail(err, "Failed to fetch weather data")
	}

	return c.JSON(report)
}
