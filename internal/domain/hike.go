package domain

import (
	"fmt"
	"time"
)

// HikeStatus is the state of a recording session
type HikeStatus string

const (
	HikeRecording HikeStatus = "recording"
	HikePaused    HikeStatus = "paused"
	HikeStopped   HikeStatus = "stopped"
)

// Hike represents a trail recording in progress or finished
type Hike struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	TrailID        string       `json:"trail_id"`
	Status         HikeStatus   `json:"status"`
	ElapsedSeconds int          `json:"elapsed_seconds"`
	DistanceKm     float64      `json:"distance_km"`
	ElevationGainM int          `json:"elevation_gain_m"`
	Position       *Coordinates `json:"position,omitempty"`
	StartedAt      time.Time    `json:"started_at"`
	EndedAt        *time.Time   `json:"ended_at,omitempty"`
}

// Elapsed formats the elapsed time as HH:MM:SS
func (h Hike) Elapsed() string {
	hrs := h.ElapsedSeconds / 3600
	mins := (h.ElapsedSeconds % 3600) / 60
	secs := h.ElapsedSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
