package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// AppConfig returns the fiber settings the handlers depend on. Immutable is
// required: user ids and route params outlive the request in the hike
// sessions and the in-memory store, and fasthttp reuses request buffers.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: ErrorHandler,
	}
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, svc Services) {
	handler := NewHandler(svc)
	protected := RequireAuth(svc.Sessions)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Weather is also served outside the versioned API for the frontend
	app.Get("/weather", handler.GetWeather)

	api := app.Group("/api/v1")
	{
		api.Get("/weather", handler.GetWeather)

		// Catalog
		api.Get("/parks", handler.ListParks)
		api.Get("/parks/:id", handler.GetPark)
		api.Get("/parks/:id/trails", handler.GetParkTrails)
		api.Get("/parks/:id/map", handler.GetParkMap)
		api.Get("/trails", handler.ListTrails)
		api.Get("/trails/nearby", handler.NearbyTrails)
		api.Get("/trails/top", handler.TopRatedTrails)
		api.Get("/trails/:id", handler.GetTrail)
		api.Get("/trails/:id/map", handler.GetTrailMap)
		api.Get("/trails/:id/reviews", handler.ListReviews)
		api.Get("/map", handler.GetOverviewMap)

		// Auth
		api.Post("/auth/session", handler.SignIn)
		api.Delete("/auth/session", protected, handler.SignOut)
		api.Get("/me", protected, handler.Me)

		// Community
		api.Get("/trails/:id/favorite", protected, handler.GetFavoriteStatus)
		api.Post("/trails/:id/favorite", protected, handler.AddFavorite)
		api.Delete("/trails/:id/favorite", protected, handler.RemoveFavorite)
		api.Get("/favorites", protected, handler.ListFavorites)
		api.Post("/trails/:id/reviews", protected, handler.AddReview)
		api.Get("/profile", protected, handler.GetProfile)
		api.Put("/profile", protected, handler.UpdateProfile)

		// Hike recording
		api.Post("/trails/:id/hikes", protected, handler.StartHike)
		api.Get("/hikes", protected, handler.ListHikes)
		api.Get("/hikes/:id", protected, handler.GetHike)
		api.Post("/hikes/:id/pause", protected, handler.PauseHike)
		api.Post("/hikes/:id/resume", protected, handler.ResumeHike)
		api.Post("/hikes/:id/stop", protected, handler.StopHike)
	}
}
