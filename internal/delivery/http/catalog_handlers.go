package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// ListParks returns parks, optionally filtered by ?region=
func (h *Handler) ListParks(c *fiber.Ctx) error {
	parks, err := h.svc.Catalog.ListParks(c.Context(), c.Query("region"))
	if err != nil {
		return fail(err, "Failed to fetch parks")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    parks,
		"count":   len(parks),
	})
}

// GetPark returns one park by slug or uuid
func (h *Handler) GetPark(c *fiber.Ctx) error {
	park, err := h.svc.Catalog.GetPark(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to fetch park")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    park,
	})
}

// GetParkTrails returns the trails of a park
func (h *Handler) GetParkTrails(c *fiber.Ctx) error {
	park, trails, err := h.svc.Catalog.ParkTrails(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to fetch park trails")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"park":    park,
		"data":    trails,
		"count":   len(trails),
	})
}

// ListTrails returns trails filtered by ?park= and ?difficulty=
func (h *Handler) ListTrails(c *fiber.Ctx) error {
	trails, err := h.svc.Catalog.ListTrails(c.Context(), domain.TrailFilter{
		ParkID:     c.Query("park"),
		Difficulty: domain.Difficulty(c.Query("difficulty")),
	})
	if err != nil {
		return fail(err, "Failed to fetch trails")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    trails,
		"count":   len(trails),
	})
}

// TopRatedTrails returns the best rated trails
func (h *Handler) TopRatedTrails(c *fiber.Ctx) error {
	trails, err := h.svc.Catalog.TopRated(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch trails")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    trails,
	})
}

// NearbyTrails returns the trails closest to ?lat=&lng=
func (h *Handler) NearbyTrails(c *fiber.Ctx) error {
	lat, err := optionalFloat(c, "lat")
	if err != nil {
		return err
	}
	lng, err := optionalFloat(c, "lng")
	if err != nil {
		return err
	}

	trails, err := h.svc.Catalog.Nearby(c.Context(), lat, lng)
	if err != nil {
		return fail(err, "Failed to fetch nearby trails")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    trails,
	})
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" parameter")
	}
	return &v, nil
}

// GetTrail returns one trail
func (h *Handler) GetTrail(c *fiber.Ctx) error {
	trail, err := h.svc.Catalog.GetTrail(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to fetch trail")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    trail,
	})
}

// GetTrailMap returns one trail as GeoJSON
func (h *Handler) GetTrailMap(c *fiber.Ctx) error {
	fc, err := h.svc.Maps.TrailMap(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to build trail map")
	}
	return geoJSON(c, fc)
}

// GetParkMap returns a park's trails as GeoJSON
func (h *Handler) GetParkMap(c *fiber.Ctx) error {
	fc, err := h.svc.Maps.ParkMap(c.Context(), c.Params("id"))
	if err != nil {
		return fail(err, "Failed to build park map")
	}
	return geoJSON(c, fc)
}

// GetOverviewMap returns every trail as GeoJSON, highlighting ?selected=
func (h *Handler) GetOverviewMap(c *fiber.Ctx) error {
	fc, err := h.svc.Maps.OverviewMap(c.Context(), c.Query("selected"))
	if err != nil {
		return fail(err, "Failed to build map")
	}
	return geoJSON(c, fc)
}

func geoJSON(c *fiber.Ctx, v interface{ MarshalJSON() ([]byte, error) }) error {
	body, err := v.MarshalJSON()
	if err != nil {
		return fail(err, "Failed to encode map")
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}
