package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// PostgresRepository implements domain.DataRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const parkColumns = `
	slug, id, nome, estado, regiao, localizacao, area, trilhas,
	visitantes, rating, url_imagem, descricao, destaque`

func scanPark(row pgx.Row) (domain.Park, error) {
	var p domain.Park
	err := row.Scan(
		&p.ID, &p.UUID, &p.Name, &p.State, &p.Region, &p.Location, &p.Area, &p.TrailCount,
		&p.Visitors, &p.Rating, &p.ImageURL, &p.Description, &p.Featured,
	)
	return p, err
}

// ListParks retrieves parks ordered by name
func (r *PostgresRepository) ListParks(ctx context.Context, region string) ([]domain.Park, error) {
	query := `SELECT ` + parkColumns + ` FROM parques
		WHERE ($1 = '' OR regiao = $1)
		ORDER BY nome`

	rows, err := r.pool.Query(ctx, query, region)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query parks: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Park, 0)
	for rows.Next() {
		p, err := scanPark(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan park row: %w", err)
		}
		results = append(results, p)
	}

	return results, rows.Err()
}

// GetPark retrieves a park by slug or uuid
func (r *PostgresRepository) GetPark(ctx context.Context, id string) (domain.Park, error) {
	query := `SELECT ` + parkColumns + ` FROM parques WHERE slug = $1 OR id::text = $1 LIMIT 1`

	p, err := scanPark(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Park{}, fmt.Errorf("postgres: park %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Park{}, fmt.Errorf("postgres: failed to get park: %w", err)
	}
	return p, nil
}

const trailColumns = `
	id, parque_id, nome, localizacao, descricao, url_imagem, dificuldade,
	distancia, duracao, elevacao, rating, lat, lng, path, waypoints`

func scanTrail(row pgx.Row) (domain.Trail, error) {
	var (
		t                  domain.Trail
		lat, lng           *float64
		rawPath, rawWaypts []byte
	)
	err := row.Scan(
		&t.ID, &t.ParkID, &t.Name, &t.Location, &t.Description, &t.ImageURL, &t.Difficulty,
		&t.DistanceKm, &t.Duration, &t.ElevationM, &t.Rating, &lat, &lng, &rawPath, &rawWaypts,
	)
	if err != nil {
		return t, err
	}
	if lat != nil && lng != nil {
		t.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	if len(rawPath) > 0 {
		if err := json.Unmarshal(rawPath, &t.Path); err != nil {
			return t, fmt.Errorf("decode path: %w", err)
		}
	}
	if len(rawWaypts) > 0 {
		if err := json.Unmarshal(rawWaypts, &t.Waypoints); err != nil {
			return t, fmt.Errorf("decode waypoints: %w", err)
		}
	}
	return t, nil
}

// ListTrails retrieves trails ordered by name
func (r *PostgresRepository) ListTrails(ctx context.Context, filter domain.TrailFilter) ([]domain.Trail, error) {
	query := `SELECT ` + trailColumns + ` FROM trilhas
		WHERE ($1 = '' OR parque_id::text = $1)
		  AND ($2 = '' OR dificuldade = $2)
		ORDER BY nome`

	rows, err := r.pool.Query(ctx, query, filter.ParkID, string(filter.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trails: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Trail, 0)
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan trail row: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// GetTrail retrieves a trail by id
func (r *PostgresRepository) GetTrail(ctx context.Context, id string) (domain.Trail, error) {
	query := `SELECT ` + trailColumns + ` FROM trilhas WHERE id::text = $1`

	t, err := scanTrail(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Trail{}, fmt.Errorf("postgres: trail %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trail{}, fmt.Errorf("postgres: failed to get trail: %w", err)
	}
	return t, nil
}

// CountParks is used at startup to decide whether to seed the catalog
func (r *PostgresRepository) CountParks(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM parques`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: failed to count parks: %w", err)
	}
	return n, nil
}

// SeedCatalog inserts parks and trails, skipping rows that already exist
func (r *PostgresRepository) SeedCatalog(ctx context.Context, parks []domain.Park, trails []domain.Trail) error {
	batch := &pgx.Batch{}
	for _, p := range parks {
		batch.Queue(`
			INSERT INTO parques (`+parkColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT DO NOTHING`,
			p.ID, p.UUID, p.Name, p.State, p.Region, p.Location, p.Area, p.TrailCount,
			p.Visitors, p.Rating, p.ImageURL, p.Description, p.Featured,
		)
	}
	for _, t := range trails {
		var lat, lng *float64
		if t.Coordinates != nil {
			lat, lng = &t.Coordinates.Lat, &t.Coordinates.Lng
		}
		path, err := json.Marshal(t.Path)
		if err != nil {
			return fmt.Errorf("postgres: failed to encode trail path: %w", err)
		}
		waypoints, err := json.Marshal(t.Waypoints)
		if err != nil {
			return fmt.Errorf("postgres: failed to encode trail waypoints: %w", err)
		}
		batch.Queue(`
			INSERT INTO trilhas (`+trailColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT DO NOTHING`,
			t.ID, t.ParkID, t.Name, t.Location, t.Description, t.ImageURL, string(t.Difficulty),
			t.DistanceKm, t.Duration, t.ElevationM, t.Rating, lat, lng, path, waypoints,
		)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to seed catalog: %w", err)
	}
	return nil
}

// AddFavorite persists a favorite; duplicates are ignored
func (r *PostgresRepository) AddFavorite(ctx context.Context, fav domain.Favorite) error {
	query := `
		INSERT INTO favoritos (id, usuario_id, trilha_id, criado_em)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (usuario_id, trilha_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, fav.ID, fav.UserID, fav.TrailID, fav.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to save favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a favorite
func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, trailID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favoritos WHERE usuario_id = $1 AND trilha_id = $2`, userID, trailID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete favorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether a favorite exists
func (r *PostgresRepository) IsFavorite(ctx context.Context, userID, trailID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favoritos WHERE usuario_id = $1 AND trilha_id = $2)`,
		userID, trailID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to check favorite: %w", err)
	}
	return exists, nil
}

// ListFavorites retrieves the user's favorites, newest first
func (r *PostgresRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, usuario_id, trilha_id, criado_em
		FROM favoritos
		WHERE usuario_id = $1
		ORDER BY criado_em DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query favorites: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.TrailID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan favorite row: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// SaveReview persists a review
func (r *PostgresRepository) SaveReview(ctx context.Context, review domain.Review) error {
	query := `
		INSERT INTO avaliacoes (
			id, usuario_id, trilha_id, avaliacao, comentario,
			data_visita, imagens, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.UserID, review.TrailID, review.Rating, review.Comment,
		review.VisitDate, review.Images, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save review: %w", err)
	}
	return nil
}

// ListReviews retrieves a trail's reviews joined with author profiles
func (r *PostgresRepository) ListReviews(ctx context.Context, trailID string) ([]domain.Review, error) {
	query := `
		SELECT a.id, a.usuario_id, a.trilha_id, a.avaliacao, a.comentario,
			   a.data_visita, a.imagens, a.criado_em, a.atualizado_em,
			   p.nome_completo, p.nome_usuario, p.url_avatar
		FROM avaliacoes a
		LEFT JOIN perfis p ON p.id = a.usuario_id
		WHERE a.trilha_id = $1
		ORDER BY a.criado_em DESC
	`

	rows, err := r.pool.Query(ctx, query, trailID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query reviews: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Review, 0)
	for rows.Next() {
		var (
			rv                         domain.Review
			fullName, username, avatar *string
		)
		err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.TrailID, &rv.Rating, &rv.Comment,
			&rv.VisitDate, &rv.Images, &rv.CreatedAt, &rv.UpdatedAt,
			&fullName, &username, &avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan review row: %w", err)
		}
		if fullName != nil || username != nil || avatar != nil {
			rv.Author = &domain.ProfileSummary{
				FullName:  deref(fullName),
				Username:  deref(username),
				AvatarURL: deref(avatar),
			}
		}
		results = append(results, rv)
	}
	return results, rows.Err()
}

// GetProfile retrieves a profile
func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, nome_usuario, nome_completo, biografia, url_avatar, localizacao, criado_em, atualizado_em
		FROM perfis WHERE id = $1`, userID,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.Bio, &p.AvatarURL, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("postgres: profile %q: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("postgres: failed to get profile: %w", err)
	}
	return p, nil
}

// SaveProfile upserts a profile
func (r *PostgresRepository) SaveProfile(ctx context.Context, p domain.Profile) error {
	query := `
		INSERT INTO perfis (
			id, nome_usuario, nome_completo, biografia, url_avatar, localizacao, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			nome_usuario = EXCLUDED.nome_usuario,
			nome_completo = EXCLUDED.nome_completo,
			biografia = EXCLUDED.biografia,
			url_avatar = EXCLUDED.url_avatar,
			localizacao = EXCLUDED.localizacao,
			atualizado_em = EXCLUDED.atualizado_em
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Username, p.FullName, p.Bio, p.AvatarURL, p.Location, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save profile: %w", err)
	}
	return nil
}

// SaveHike persists a finished hike
func (r *PostgresRepository) SaveHike(ctx context.Context, h domain.Hike) error {
	query := `
		INSERT INTO hike_logs (
			id, usuario_id, trilha_id, elapsed_seconds, distance_km,
			elevation_gain_m, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		h.ID, h.UserID, h.TrailID, h.ElapsedSeconds, h.DistanceKm,
		h.ElevationGainM, h.StartedAt, h.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save hike: %w", err)
	}
	return nil
}

// ListHikes retrieves a user's finished hikes
func (r *PostgresRepository) ListHikes(ctx context.Context, userID string) ([]domain.Hike, error) {
	query := `
		SELECT id, usuario_id, trilha_id, elapsed_seconds, distance_km,
			   elevation_gain_m, started_at, ended_at
		FROM hike_logs
		WHERE usuario_id = $1
		ORDER BY started_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query hikes: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Hike, 0)
	for rows.Next() {
		h := domain.Hike{Status: domain.HikeStopped}
		err := rows.Scan(
			&h.ID, &h.UserID, &h.TrailID, &h.ElapsedSeconds, &h.DistanceKm,
			&h.ElevationGainM, &h.StartedAt, &h.EndedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan hike row: %w", err)
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ domain.DataRepository = (*PostgresRepository)(nil)
