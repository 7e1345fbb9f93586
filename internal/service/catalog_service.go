package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/pkg/utils"
)

const (
	nearbyLimit      = 6
	localLimit       = 3
	topRatedLimit    = 6
	defaultLocalArea = "Distrito Federal"
)

// CatalogService serves parks and trails
type CatalogService struct {
	repo DataRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo DataRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListParks returns all parks, optionally restricted to a region
func (s *CatalogService) ListParks(ctx context.Context, region string) ([]domain.Park, error) {
	return s.repo.ListParks(ctx, strings.TrimSpace(region))
}

// GetPark returns a park by slug or uuid
func (s *CatalogService) GetPark(ctx context.Context, id string) (domain.Park, error) {
	return s.repo.GetPark(ctx, id)
}

// ListTrails returns trails matching filter
func (s *CatalogService) ListTrails(ctx context.Context, filter domain.TrailFilter) ([]domain.Trail, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, domain.NewValidationError("difficulty", "unknown difficulty %q", filter.Difficulty)
	}
	return s.repo.ListTrails(ctx, filter)
}

// GetTrail returns a trail by id
func (s *CatalogService) GetTrail(ctx context.Context, id string) (domain.Trail, error) {
	return s.repo.GetTrail(ctx, id)
}

// ParkTrails resolves the park first so either of its ids can be used
func (s *CatalogService) ParkTrails(ctx context.Context, parkID string) (domain.Park, []domain.Trail, error) {
	park, err := s.repo.GetPark(ctx, parkID)
	if err != nil {
		return domain.Park{}, nil, err
	}
	trails, err := s.repo.ListTrails(ctx, domain.TrailFilter{ParkID: park.UUID})
	if err != nil {
		return domain.Park{}, nil, fmt.Errorf("catalog: failed to list trails of %s: %w", park.ID, err)
	}
	return park, trails, nil
}

// Nearby returns the trails closest to the user. Without a position it
// falls back to the shortest trails of the Federal District.
func (s *CatalogService) Nearby(ctx context.Context, lat, lng *float64) ([]domain.NearbyTrail, error) {
	trails, err := s.repo.ListTrails(ctx, domain.TrailFilter{})
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list trails: %w", err)
	}

	if lat == nil || lng == nil {
		out := make([]domain.NearbyTrail, 0, localLimit)
		for _, t := range trails {
			if strings.Contains(t.Location, defaultLocalArea) {
				out = append(out, domain.NearbyTrail{Trail: t})
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
		if len(out) > localLimit {
			out = out[:localLimit]
		}
		return out, nil
	}

	if *lat < -90 || *lat > 90 {
		return nil, domain.NewValidationError("lat", "must be between -90 and 90")
	}
	if *lng < -180 || *lng > 180 {
		return nil, domain.NewValidationError("lng", "must be between -180 and 180")
	}

	out := make([]domain.NearbyTrail, 0, len(trails))
	for _, t := range trails {
		nt := domain.NearbyTrail{Trail: t}
		if t.Coordinates != nil {
			d := utils.DistanceKm(*lat, *lng, t.Coordinates.Lat, t.Coordinates.Lng)
			nt.DistanceFromUserKm = &d
		}
		out = append(out, nt)
	}
	sort.SliceStable(out, func(i, j int) bool { return distanceOrInf(out[i]) < distanceOrInf(out[j]) })
	if len(out) > nearbyLimit {
		out = out[:nearbyLimit]
	}
	return out, nil
}

func distanceOrInf(t domain.NearbyTrail) float64 {
	if t.DistanceFromUserKm == nil {
		return math.Inf(1)
	}
	return *t.DistanceFromUserKm
}

// TopRated returns the best rated trails
func (s *CatalogService) TopRated(ctx context.Context) ([]domain.Trail, error) {
	trails, err := s.repo.ListTrails(ctx, domain.TrailFilter{})
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list trails: %w", err)
	}
	sort.SliceStable(trails, func(i, j int) bool { return trails[i].Rating > trails[j].Rating })
	if len(trails) > topRatedLimit {
		trails = trails[:topRatedLimit]
	}
	return trails, nil
}
