package domain

import (
	"context"
)

// CatalogRepository serves parks and trails
type CatalogRepository interface {
	// ListParks returns parks ordered by name, optionally filtered by region
	ListParks(ctx context.Context, region string) ([]Park, error)

	// GetPark looks a park up by its short id or uuid
	GetPark(ctx context.Context, id string) (Park, error)

	// ListTrails returns trails ordered by name
	ListTrails(ctx context.Context, filter TrailFilter) ([]Trail, error)

	// GetTrail looks a trail up by id
	GetTrail(ctx context.Context, id string) (Trail, error)
}

// CommunityRepository persists user generated content
type CommunityRepository interface {
	// AddFavorite saves a trail for a user; adding twice is not an error
	AddFavorite(ctx context.Context, fav Favorite) error

	// RemoveFavorite deletes a saved trail
	RemoveFavorite(ctx context.Context, userID, trailID string) error

	// IsFavorite reports whether the user saved the trail
	IsFavorite(ctx context.Context, userID, trailID string) (bool, error)

	// ListFavorites returns the user's favorites, newest first
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)

	// SaveReview persists a review
	SaveReview(ctx context.Context, review Review) error

	// ListReviews returns the reviews of a trail with authors, newest first
	ListReviews(ctx context.Context, trailID string) ([]Review, error)

	// GetProfile returns a user's profile
	GetProfile(ctx context.Context, userID string) (Profile, error)

	// SaveProfile creates or updates a profile
	SaveProfile(ctx context.Context, profile Profile) error
}

// HikeRepository persists finished hikes
type HikeRepository interface {
	// SaveHike persists a finished recording
	SaveHike(ctx context.Context, hike Hike) error

	// ListHikes returns a user's finished hikes, newest first
	ListHikes(ctx context.Context, userID string) ([]Hike, error)
}

// DataRepository defines the interface for data persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type DataRepository interface {
	CatalogRepository
	CommunityRepository
	HikeRepository

	// Health checks database connectivity
	Health(ctx context.Context) error
}
