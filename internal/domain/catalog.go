package domain

// Difficulty is the trail difficulty grade shown to hikers
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Fácil"
	DifficultyModerate Difficulty = "Moderado"
	DifficultyHard     Difficulty = "Difícil"
	DifficultyExtreme  Difficulty = "Extrema"
)

// Valid reports whether d is one of the known grades
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}

// Park represents a national or state park
type Park struct {
	ID          string  `json:"id"`
	UUID        string  `json:"uuid"`
	Name        string  `json:"nome"`
	State       string  `json:"estado"`
	Region      string  `json:"regiao"`
	Location    string  `json:"localizacao"`
	Area        string  `json:"area"`
	TrailCount  int     `json:"trilhas"`
	Visitors    string  `json:"visitantes"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"imagem"`
	Description string  `json:"descricao"`
	Featured    bool    `json:"destaque"`
}

// Waypoint is a named point of interest along a trail
type Waypoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Trail represents a hiking trail inside a park
type Trail struct {
	ID          string        `json:"id"`
	ParkID      string        `json:"parque_id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	Difficulty  Difficulty    `json:"difficulty"`
	DistanceKm  float64       `json:"distance"`
	Duration    string        `json:"duration"`
	ElevationM  int           `json:"elevation"`
	Rating      float64       `json:"rating"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
	Path        []Coordinates `json:"path,omitempty"`
	Waypoints   []Waypoint    `json:"waypoints,omitempty"`
}

// NearbyTrail is a trail annotated with its distance from the user
type NearbyTrail struct {
	Trail
	DistanceFromUserKm *float64 `json:"realDistance,omitempty"`
}

// TrailFilter narrows trail listings; empty fields match everything
type TrailFilter struct {
	ParkID     string
	Difficulty Difficulty
}
