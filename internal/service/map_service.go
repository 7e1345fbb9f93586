package service

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/trilhasbrasil/backend/internal/domain"
)

const (
	waypointColor = "#4f46e5"
	defaultColor  = "#3b82f6"
)

// TrailColor is the stroke color of a trail path on the map
func TrailColor(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return "#22c55e"
	case domain.DifficultyModerate:
		return "#eab308"
	case domain.DifficultyHard:
		return "#ef4444"
	case domain.DifficultyExtreme:
		return "#8b5cf6"
	default:
		return defaultColor
	}
}

// MapService renders trails as GeoJSON for the map views
type MapService struct {
	repo DataRepository
}

// NewMapService creates a new map service
func NewMapService(repo DataRepository) *MapService {
	return &MapService{repo: repo}
}

// TrailMap renders a single trail
func (s *MapService) TrailMap(ctx context.Context, trailID string) (*geojson.FeatureCollection, error) {
	trail, err := s.repo.GetTrail(ctx, trailID)
	if err != nil {
		return nil, err
	}
	return BuildTrailMap([]domain.Trail{trail}, trail.ID), nil
}

// ParkMap renders every trail of a park
func (s *MapService) ParkMap(ctx context.Context, parkID string) (*geojson.FeatureCollection, error) {
	park, err := s.repo.GetPark(ctx, parkID)
	if err != nil {
		return nil, err
	}
	trails, err := s.repo.ListTrails(ctx, domain.TrailFilter{ParkID: park.UUID})
	if err != nil {
		return nil, fmt.Errorf("map: failed to list trails: %w", err)
	}
	return BuildTrailMap(trails, ""), nil
}

// OverviewMap renders all trails, highlighting selectedID when set
func (s *MapService) OverviewMap(ctx context.Context, selectedID string) (*geojson.FeatureCollection, error) {
	trails, err := s.repo.ListTrails(ctx, domain.TrailFilter{})
	if err != nil {
		return nil, fmt.Errorf("map: failed to list trails: %w", err)
	}
	return BuildTrailMap(trails, selectedID), nil
}

// BuildTrailMap turns trails into a FeatureCollection. Paths with at least
// two points become LineStrings, other trails a trailhead Point. The bbox is
// the selected trail's path bound when there is one, else the union of all
// path bounds, else the union of every feature.
func BuildTrailMap(trails []domain.Trail, selectedID string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	var (
		collective, selected, markers orb.Bound
		hasPath, hasSelected, hasMark bool
	)

	extendMarkers := func(p orb.Point) {
		if !hasMark {
			markers = p.Bound()
			hasMark = true
			return
		}
		markers = markers.Extend(p)
	}

	for _, t := range trails {
		isSelected := t.ID == selectedID

		switch {
		case len(t.Path) >= 2:
			line := make(orb.LineString, 0, len(t.Path))
			for _, c := range t.Path {
				line = append(line, orb.Point{c.Lng, c.Lat})
			}

			f := geojson.NewFeature(line)
			f.ID = t.ID
			f.Properties = trailProperties(t, "path", isSelected)
			weight := 5
			opacity := 0.8
			if isSelected {
				weight, opacity = 7, 1.0
			}
			f.Properties["weight"] = weight
			f.Properties["opacity"] = opacity
			fc.Append(f)

			b := line.Bound()
			if hasPath {
				collective = collective.Union(b)
			} else {
				collective, hasPath = b, true
			}
			if isSelected {
				selected, hasSelected = b, true
			}
		case t.Coordinates != nil:
			p := orb.Point{t.Coordinates.Lng, t.Coordinates.Lat}
			f := geojson.NewFeature(p)
			f.ID = t.ID
			f.Properties = trailProperties(t, "trailhead", isSelected)
			fc.Append(f)
			extendMarkers(p)
		}

		for _, w := range t.Waypoints {
			p := orb.Point{w.Lng, w.Lat}
			f := geojson.NewFeature(p)
			f.Properties = geojson.Properties{
				"kind":    "waypoint",
				"name":    w.Name,
				"trailId": t.ID,
				"color":   waypointColor,
			}
			fc.Append(f)
			extendMarkers(p)
		}
	}

	switch {
	case hasSelected:
		fc.BBox = geojson.NewBBox(selected)
	case hasPath:
		fc.BBox = geojson.NewBBox(collective)
	case hasMark:
		fc.BBox = geojson.NewBBox(markers)
	}
	return fc
}

func trailProperties(t domain.Trail, kind string, selected bool) geojson.Properties {
	return geojson.Properties{
		"kind":       kind,
		"name":       t.Name,
		"difficulty": string(t.Difficulty),
		"color":      TrailColor(t.Difficulty),
		"selected":   selected,
		"url":        "/trilhas/" + t.ID,
	}
}
