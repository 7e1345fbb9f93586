package domain

import "time"

// User is an authenticated account as reported by the auth backend
type User struct {
	ID       string            `json:"id"`
	Email    string            `json:"email,omitempty"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

// Profile holds the public profile of a user
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"nome_usuario,omitempty"`
	FullName  string    `json:"nome_completo,omitempty"`
	Bio       string    `json:"biografia,omitempty"`
	AvatarURL string    `json:"url_avatar,omitempty"`
	Location  string    `json:"localizacao,omitempty"`
	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// ProfileSummary is the author block attached to a review
type ProfileSummary struct {
	FullName  string `json:"nome_completo,omitempty"`
	Username  string `json:"nome_usuario,omitempty"`
	AvatarURL string `json:"url_avatar,omitempty"`
}

// Review is a star rating with comment left on a trail
type Review struct {
	ID        string          `json:"id"`
	UserID    string          `json:"usuario_id"`
	TrailID   string          `json:"trilha_id"`
	Rating    int             `json:"avaliacao"`
	Comment   string          `json:"comentario"`
	VisitDate *time.Time      `json:"data_visita,omitempty"`
	Images    []string        `json:"imagens,omitempty"`
	Author    *ProfileSummary `json:"perfis"`
	CreatedAt time.Time       `json:"criado_em"`
	UpdatedAt time.Time       `json:"atualizado_em"`
}

// ReviewSummary aggregates the reviews of a trail
type ReviewSummary struct {
	Reviews       []Review `json:"data"`
	AverageRating *float64 `json:"average_rating"`
	Total         int      `json:"total"`
}

// Favorite marks a trail saved by a user
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"usuario_id"`
	TrailID   string    `json:"trilha_id"`
	CreatedAt time.Time `json:"criado_em"`
}
