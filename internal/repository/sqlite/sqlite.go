// Package sqlite stores the application data in an embedded SQLite file
// using the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// timestamps are stored as fixed-width UTC text so they sort lexically
const tsLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS parques (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	nome TEXT NOT NULL,
	estado TEXT NOT NULL DEFAULT '',
	regiao TEXT NOT NULL DEFAULT '',
	localizacao TEXT NOT NULL DEFAULT '',
	area TEXT NOT NULL DEFAULT '',
	trilhas INTEGER NOT NULL DEFAULT 0,
	visitantes TEXT NOT NULL DEFAULT '',
	rating REAL NOT NULL DEFAULT 0,
	url_imagem TEXT NOT NULL DEFAULT '',
	descricao TEXT NOT NULL DEFAULT '',
	destaque INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS trilhas (
	id TEXT PRIMARY KEY,
	parque_id TEXT NOT NULL,
	nome TEXT NOT NULL,
	localizacao TEXT NOT NULL DEFAULT '',
	descricao TEXT NOT NULL DEFAULT '',
	url_imagem TEXT NOT NULL DEFAULT '',
	dificuldade TEXT NOT NULL,
	distancia REAL NOT NULL DEFAULT 0,
	duracao TEXT NOT NULL DEFAULT '',
	elevacao INTEGER NOT NULL DEFAULT 0,
	rating REAL NOT NULL DEFAULT 0,
	lat REAL,
	lng REAL,
	path TEXT,
	waypoints TEXT
);
CREATE TABLE IF NOT EXISTS perfis (
	id TEXT PRIMARY KEY,
	nome_usuario TEXT NOT NULL DEFAULT '',
	nome_completo TEXT NOT NULL DEFAULT '',
	biografia TEXT NOT NULL DEFAULT '',
	url_avatar TEXT NOT NULL DEFAULT '',
	localizacao TEXT NOT NULL DEFAULT '',
	criado_em TEXT NOT NULL,
	atualizado_em TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS favoritos (
	id TEXT PRIMARY KEY,
	usuario_id TEXT NOT NULL,
	trilha_id TEXT NOT NULL,
	criado_em TEXT NOT NULL,
	UNIQUE (usuario_id, trilha_id)
);
CREATE TABLE IF NOT EXISTS avaliacoes (
	id TEXT PRIMARY KEY,
	usuario_id TEXT NOT NULL,
	trilha_id TEXT NOT NULL,
	avaliacao INTEGER NOT NULL CHECK (avaliacao BETWEEN 1 AND 5),
	comentario TEXT NOT NULL,
	data_visita TEXT,
	imagens TEXT,
	criado_em TEXT NOT NULL,
	atualizado_em TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS hike_logs (
	id TEXT PRIMARY KEY,
	usuario_id TEXT NOT NULL,
	trilha_id TEXT NOT NULL,
	elapsed_seconds INTEGER NOT NULL,
	distance_km REAL NOT NULL,
	elevation_gain_m INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	ended_at TEXT
);`

// Repository implements domain.DataRepository on SQLite
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema
func New(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Printf("sqlite: could not set WAL mode: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database handle
func (r *Repository) Close() error {
	return r.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SeedCatalog inserts parks and trails that are not stored yet
func (r *Repository) SeedCatalog(ctx context.Context, parks []domain.Park, trails []domain.Trail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, p := range parks {
		_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO parques
			(slug, id, nome, estado, regiao, localizacao, area, trilhas, visitantes, rating, url_imagem, descricao, destaque)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.UUID, p.Name, p.State, p.Region, p.Location, p.Area, p.TrailCount,
			p.Visitors, p.Rating, p.ImageURL, p.Description, p.Featured,
		)
		if err != nil {
			return fmt.Errorf("sqlite: failed to seed park %s: %w", p.ID, err)
		}
	}

	for _, t := range trails {
		var lat, lng sql.NullFloat64
		if t.Coordinates != nil {
			lat = sql.NullFloat64{Float64: t.Coordinates.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: t.Coordinates.Lng, Valid: true}
		}
		path, err := json.Marshal(t.Path)
		if err != nil {
			return fmt.Errorf("sqlite: failed to encode path: %w", err)
		}
		waypoints, err := json.Marshal(t.Waypoints)
		if err != nil {
			return fmt.Errorf("sqlite: failed to encode waypoints: %w", err)
		}
		_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO trilhas
			(id, parque_id, nome, localizacao, descricao, url_imagem, dificuldade, distancia, duracao, elevacao, rating, lat, lng, path, waypoints)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			t.ID, t.ParkID, t.Name, t.Location, t.Description, t.ImageURL, string(t.Difficulty),
			t.DistanceKm, t.Duration, t.ElevationM, t.Rating, lat, lng, string(path), string(waypoints),
		)
		if err != nil {
			return fmt.Errorf("sqlite: failed to seed trail %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit seed: %w", err)
	}
	return nil
}

const parkSelect = `SELECT slug, id, nome, estado, regiao, localizacao, area, trilhas,
	visitantes, rating, url_imagem, descricao, destaque FROM parques`

type scanner interface {
	Scan(dest ...any) error
}

func scanPark(row scanner) (domain.Park, error) {
	var p domain.Park
	err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.State, &p.Region, &p.Location, &p.Area,
		&p.TrailCount, &p.Visitors, &p.Rating, &p.ImageURL, &p.Description, &p.Featured)
	return p, err
}

// ListParks returns parks ordered by name
func (r *Repository) ListParks(ctx context.Context, region string) ([]domain.Park, error) {
	rows, err := r.db.QueryContext(ctx, parkSelect+` WHERE (? = '' OR regiao = ?) ORDER BY nome`, region, region)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query parks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Park, 0)
	for rows.Next() {
		p, err := scanPark(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan park: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPark looks a park up by slug or uuid
func (r *Repository) GetPark(ctx context.Context, id string) (domain.Park, error) {
	p, err := scanPark(r.db.QueryRowContext(ctx, parkSelect+` WHERE slug = ? OR id = ? LIMIT 1`, id, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Park{}, fmt.Errorf("sqlite: park %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Park{}, fmt.Errorf("sqlite: failed to get park: %w", err)
	}
	return p, nil
}

const trailSelect = `SELECT id, parque_id, nome, localizacao, descricao, url_imagem, dificuldade,
	distancia, duracao, elevacao, rating, lat, lng, path, waypoints FROM trilhas`

func scanTrail(row scanner) (domain.Trail, error) {
	var (
		t                  domain.Trail
		difficulty         string
		lat, lng           sql.NullFloat64
		rawPath, rawWaypts sql.NullString
	)
	err := row.Scan(&t.ID, &t.ParkID, &t.Name, &t.Location, &t.Description, &t.ImageURL, &difficulty,
		&t.DistanceKm, &t.Duration, &t.ElevationM, &t.Rating, &lat, &lng, &rawPath, &rawWaypts)
	if err != nil {
		return t, err
	}
	t.Difficulty = domain.Difficulty(difficulty)
	if lat.Valid && lng.Valid {
		t.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	if rawPath.Valid && rawPath.String != "" {
		if err := json.Unmarshal([]byte(rawPath.String), &t.Path); err != nil {
			return t, fmt.Errorf("decode path: %w", err)
		}
	}
	if rawWaypts.Valid && rawWaypts.String != "" {
		if err := json.Unmarshal([]byte(rawWaypts.String), &t.Waypoints); err != nil {
			return t, fmt.Errorf("decode waypoints: %w", err)
		}
	}
	return t, nil
}

// ListTrails returns trails ordered by name
func (r *Repository) ListTrails(ctx context.Context, filter domain.TrailFilter) ([]domain.Trail, error) {
	difficulty := string(filter.Difficulty)
	rows, err := r.db.QueryContext(ctx,
		trailSelect+` WHERE (? = '' OR parque_id = ?) AND (? = '' OR dificuldade = ?) ORDER BY nome`,
		filter.ParkID, filter.ParkID, difficulty, difficulty)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query trails: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Trail, 0)
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan trail: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTrail looks a trail up by id
func (r *Repository) GetTrail(ctx context.Context, id string) (domain.Trail, error) {
	t, err := scanTrail(r.db.QueryRowContext(ctx, trailSelect+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trail{}, fmt.Errorf("sqlite: trail %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trail{}, fmt.Errorf("sqlite: failed to get trail: %w", err)
	}
	return t, nil
}

// AddFavorite stores a favorite; duplicates are ignored
func (r *Repository) AddFavorite(ctx context.Context, fav domain.Favorite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favoritos (id, usuario_id, trilha_id, criado_em) VALUES (?,?,?,?)`,
		fav.ID, fav.UserID, fav.TrailID, formatTime(fav.CreatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a favorite
func (r *Repository) RemoveFavorite(ctx context.Context, userID, trailID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favoritos WHERE usuario_id = ? AND trilha_id = ?`, userID, trailID)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete favorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether the favorite exists
func (r *Repository) IsFavorite(ctx context.Context, userID, trailID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM favoritos WHERE usuario_id = ? AND trilha_id = ?`, userID, trailID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// ListFavorites returns the user's favorites, newest first
func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, usuario_id, trilha_id, criado_em FROM favoritos WHERE usuario_id = ? ORDER BY criado_em DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query favorites: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Favorite, 0)
	for rows.Next() {
		var (
			f  domain.Favorite
			ts string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.TrailID, &ts); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan favorite: %w", err)
		}
		f.CreatedAt = parseTime(ts)
		out = append(out, f)
	}
	return out, rows.Err()
}

// SaveReview stores a review
func (r *Repository) SaveReview(ctx context.Context, rv domain.Review) error {
	var visit sql.NullString
	if rv.VisitDate != nil {
		visit = sql.NullString{String: rv.VisitDate.Format(time.DateOnly), Valid: true}
	}
	images, err := json.Marshal(rv.Images)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode images: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO avaliacoes
		(id, usuario_id, trilha_id, avaliacao, comentario, data_visita, imagens, criado_em, atualizado_em)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rv.ID, rv.UserID, rv.TrailID, rv.Rating, rv.Comment, visit, string(images),
		formatTime(rv.CreatedAt), formatTime(rv.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save review: %w", err)
	}
	return nil
}

// ListReviews returns a trail's reviews joined with author profiles
func (r *Repository) ListReviews(ctx context.Context, trailID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.usuario_id, a.trilha_id, a.avaliacao, a.comentario, a.data_visita, a.imagens,
		       a.criado_em, a.atualizado_em, p.nome_completo, p.nome_usuario, p.url_avatar
		FROM avaliacoes a
		LEFT JOIN perfis p ON p.id = a.usuario_id
		WHERE a.trilha_id = ?
		ORDER BY a.criado_em DESC`, trailID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query reviews: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		var (
			rv                         domain.Review
			visit, images              sql.NullString
			created, updated           string
			fullName, username, avatar sql.NullString
		)
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.TrailID, &rv.Rating, &rv.Comment, &visit, &images,
			&created, &updated, &fullName, &username, &avatar)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan review: %w", err)
		}
		rv.CreatedAt = parseTime(created)
		rv.UpdatedAt = parseTime(updated)
		if visit.Valid {
			if d, err := time.Parse(time.DateOnly, visit.String); err == nil {
				rv.VisitDate = &d
			}
		}
		if images.Valid && images.String != "" && images.String != "null" {
			if err := json.Unmarshal([]byte(images.String), &rv.Images); err != nil {
				return nil, fmt.Errorf("sqlite: failed to decode review images: %w", err)
			}
		}
		if fullName.Valid || username.Valid || avatar.Valid {
			rv.Author = &domain.ProfileSummary{FullName: fullName.String, Username: username.String, AvatarURL: avatar.String}
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// GetProfile returns a stored profile
func (r *Repository) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var (
		p                domain.Profile
		created, updated string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nome_usuario, nome_completo, biografia, url_avatar, localizacao, criado_em, atualizado_em
		FROM perfis WHERE id = ?`, userID,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.Bio, &p.AvatarURL, &p.Location, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("sqlite: profile %q: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("sqlite: failed to get profile: %w", err)
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// SaveProfile upserts a profile, keeping its creation time
func (r *Repository) SaveProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO perfis (id, nome_usuario, nome_completo, biografia, url_avatar, localizacao, criado_em, atualizado_em)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			nome_usuario = excluded.nome_usuario,
			nome_completo = excluded.nome_completo,
			biografia = excluded.biografia,
			url_avatar = excluded.url_avatar,
			localizacao = excluded.localizacao,
			atualizado_em = excluded.atualizado_em`,
		p.ID, p.Username, p.FullName, p.Bio, p.AvatarURL, p.Location,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save profile: %w", err)
	}
	return nil
}

// SaveHike stores a finished hike
func (r *Repository) SaveHike(ctx context.Context, h domain.Hike) error {
	var ended sql.NullString
	if h.EndedAt != nil {
		ended = sql.NullString{String: formatTime(*h.EndedAt), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO hike_logs
		(id, usuario_id, trilha_id, elapsed_seconds, distance_km, elevation_gain_m, started_at, ended_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		h.ID, h.UserID, h.TrailID, h.ElapsedSeconds, h.DistanceKm, h.ElevationGainM,
		formatTime(h.StartedAt), ended)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save hike: %w", err)
	}
	return nil
}

// ListHikes returns a user's finished hikes, newest first
func (r *Repository) ListHikes(ctx context.Context, userID string) ([]domain.Hike, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, usuario_id, trilha_id, elapsed_seconds, distance_km, elevation_gain_m, started_at, ended_at
		FROM hike_logs WHERE usuario_id = ? ORDER BY started_at DESC LIMIT 100`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query hikes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Hike, 0)
	for rows.Next() {
		var (
			h       = domain.Hike{Status: domain.HikeStopped}
			started string
			ended   sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.TrailID, &h.ElapsedSeconds, &h.DistanceKm,
			&h.ElevationGainM, &started, &ended); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan hike: %w", err)
		}
		h.StartedAt = parseTime(started)
		if ended.Valid {
			t := parseTime(ended.String)
			h.EndedAt = &t
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Health pings the database
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

var _ domain.DataRepository = (*Repository)(nil)
