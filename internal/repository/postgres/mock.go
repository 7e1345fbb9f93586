package postgres

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/repository/seed"
)

// MockRepository implements domain.DataRepository in memory for demo mode
// and tests. The catalog is seeded; everything else starts empty.
type MockRepository struct {
	mu        sync.RWMutex
	parks     []domain.Park
	trails    []domain.Trail
	favorites map[string]map[string]domain.Favorite // user -> trail -> favorite
	reviews   []domain.Review
	profiles  map[string]domain.Profile
	hikes     []domain.Hike
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		parks:     seed.Parks(),
		trails:    seed.Trails(),
		favorites: make(map[string]map[string]domain.Favorite),
		profiles:  make(map[string]domain.Profile),
	}
}

// ListParks returns seeded parks ordered by name
func (r *MockRepository) ListParks(ctx context.Context, region string) ([]domain.Park, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Park, 0, len(r.parks))
	for _, p := range r.parks {
		if region == "" || p.Region == region {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetPark matches either the short id or the uuid
func (r *MockRepository) GetPark(ctx context.Context, id string) (domain.Park, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parks {
		if p.ID == id || p.UUID == id {
			return p, nil
		}
	}
	return domain.Park{}, fmt.Errorf("mock: park %q: %w", id, domain.ErrNotFound)
}

// ListTrails returns seeded trails ordered by name
func (r *MockRepository) ListTrails(ctx context.Context, filter domain.TrailFilter) ([]domain.Trail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trail, 0, len(r.trails))
	for _, t := range r.trails {
		if filter.ParkID != "" && t.ParkID != filter.ParkID {
			continue
		}
		if filter.Difficulty != "" && t.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetTrail looks a seeded trail up by id
func (r *MockRepository) GetTrail(ctx context.Context, id string) (domain.Trail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.trails {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trail{}, fmt.Errorf("mock: trail %q: %w", id, domain.ErrNotFound)
}

// AddFavorite keeps the first favorite when added twice
func (r *MockRepository) AddFavorite(ctx context.Context, fav domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byTrail, ok := r.favorites[fav.UserID]
	if !ok {
		byTrail = make(map[string]domain.Favorite)
		r.favorites[fav.UserID] = byTrail
	}
	if _, exists := byTrail[fav.TrailID]; !exists {
		byTrail[fav.TrailID] = fav
	}
	return nil
}

// RemoveFavorite is a no-op when the favorite does not exist
func (r *MockRepository) RemoveFavorite(ctx context.Context, userID, trailID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.favorites[userID], trailID)
	return nil
}

// IsFavorite reports whether the user saved the trail
func (r *MockRepository) IsFavorite(ctx context.Context, userID, trailID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.favorites[userID][trailID]
	return ok, nil
}

// ListFavorites returns the user's favorites, newest first
func (r *MockRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Favorite, 0, len(r.favorites[userID]))
	for _, f := range r.favorites[userID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SaveReview appends a review
func (r *MockRepository) SaveReview(ctx context.Context, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.Author = nil
	r.reviews = append(r.reviews, review)
	return nil
}

// ListReviews returns the trail's reviews with author profiles, newest first
func (r *MockRepository) ListReviews(ctx context.Context, trailID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Review, 0)
	for _, rv := range r.reviews {
		if rv.TrailID != trailID {
			continue
		}
		if p, ok := r.profiles[rv.UserID]; ok {
			rv.Author = &domain.ProfileSummary{FullName: p.FullName, Username: p.Username, AvatarURL: p.AvatarURL}
		}
		out = append(out, rv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetProfile returns a stored profile
func (r *MockRepository) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return domain.Profile{}, fmt.Errorf("mock: profile %q: %w", userID, domain.ErrNotFound)
	}
	return p, nil
}

// SaveProfile creates or replaces a profile, keeping its creation time
func (r *MockRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	r.profiles[profile.ID] = profile
	return nil
}

// SaveHike appends a finished hike
func (r *MockRepository) SaveHike(ctx context.Context, hike domain.Hike) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hikes = append(r.hikes, hike)
	return nil
}

// ListHikes returns the user's hikes, newest first
func (r *MockRepository) ListHikes(ctx context.Context, userID string) ([]domain.Hike, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Hike, 0)
	for _, h := range r.hikes {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

var _ domain.DataRepository = (*MockRepository)(nil)
