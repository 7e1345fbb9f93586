package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/pkg/utils"
)

const (
	maxCommentLength  = 2000
	maxUsernameLength = 30
	maxBioLength      = 500
)

// ReviewInput is the payload of a new review
type ReviewInput struct {
	Rating    int      `json:"avaliacao"`
	Comment   string   `json:"comentario"`
	VisitDate string   `json:"data_visita,omitempty"` // YYYY-MM-DD
	Images    []string `json:"imagens,omitempty"`
}

// ProfileInput is the editable part of a profile
type ProfileInput struct {
	Username  string `json:"nome_usuario"`
	FullName  string `json:"nome_completo"`
	Bio       string `json:"biografia"`
	AvatarURL string `json:"url_avatar"`
	Location  string `json:"localizacao"`
}

// CommunityService manages favorites, reviews and profiles
type CommunityService struct {
	repo DataRepository
	now  func() time.Time
}

// NewCommunityService creates a new community service
func NewCommunityService(repo DataRepository) *CommunityService {
	return &CommunityService{repo: repo, now: time.Now}
}

// AddFavorite saves a trail for the user. Adding twice is a no-op.
func (s *CommunityService) AddFavorite(ctx context.Context, userID, trailID string) error {
	if _, err := s.repo.GetTrail(ctx, trailID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrailID:   trailID,
		CreatedAt: s.now(),
	})
}

// RemoveFavorite unsaves a trail
func (s *CommunityService) RemoveFavorite(ctx context.Context, userID, trailID string) error {
	return s.repo.RemoveFavorite(ctx, userID, trailID)
}

// IsFavorite reports whether the user saved the trail
func (s *CommunityService) IsFavorite(ctx context.Context, userID, trailID string) (bool, error) {
	return s.repo.IsFavorite(ctx, userID, trailID)
}

// FavoriteTrails returns the trails the user saved, newest first.
// Favorites pointing at trails that no longer exist are skipped.
func (s *CommunityService) FavoriteTrails(ctx context.Context, userID string) ([]domain.Trail, error) {
	favs, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("community: failed to list favorites: %w", err)
	}

	out := make([]domain.Trail, 0, len(favs))
	for _, f := range favs {
		t, err := s.repo.GetTrail(ctx, f.TrailID)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("community: favorite %s points at missing trail %s", f.ID, f.TrailID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("community: failed to load trail %s: %w", f.TrailID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// AddReview validates and stores a review
func (s *CommunityService) AddReview(ctx context.Context, userID, trailID string, in ReviewInput) (domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Review{}, domain.NewValidationError("avaliacao", "must be between 1 and 5")
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return domain.Review{}, domain.NewValidationError("comentario", "is required")
	}
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return domain.Review{}, domain.NewValidationError("comentario", "must be at most %d characters", maxCommentLength)
	}
	var visit *time.Time
	if in.VisitDate != "" {
		d, err := time.Parse(time.DateOnly, in.VisitDate)
		if err != nil {
			return domain.Review{}, domain.NewValidationError("data_visita", "must be a YYYY-MM-DD date")
		}
		visit = &d
	}
	if _, err := s.repo.GetTrail(ctx, trailID); err != nil {
		return domain.Review{}, err
	}

	now := s.now()
	review := domain.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrailID:   trailID,
		Rating:    in.Rating,
		Comment:   comment,
		VisitDate: visit,
		Images:    in.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.SaveReview(ctx, review); err != nil {
		return domain.Review{}, fmt.Errorf("community: failed to save review: %w", err)
	}
	return review, nil
}

// Reviews lists a trail's reviews, newest first, with their average
func (s *CommunityService) Reviews(ctx context.Context, trailID string) (domain.ReviewSummary, error) {
	reviews, err := s.repo.ListReviews(ctx, trailID)
	if err != nil {
		return domain.ReviewSummary{}, fmt.Errorf("community: failed to list reviews: %w", err)
	}

	summary := domain.ReviewSummary{Reviews: reviews, Total: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := utils.RoundTo(float64(sum)/float64(len(reviews)), 1)
		summary.AverageRating = &avg
	}
	return summary, nil
}

// Profile returns the user's profile, or one prefilled from the auth
// metadata when none was saved yet
func (s *CommunityService) Profile(ctx context.Context, user domain.User) (domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{
			ID:        user.ID,
			FullName:  user.Metadata["full_name"],
			AvatarURL: user.Metadata["avatar_url"],
		}, nil
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("community: failed to load profile: %w", err)
	}
	return p, nil
}

// UpdateProfile validates and stores the editable profile fields
func (s *CommunityService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (domain.Profile, error) {
	username := strings.TrimSpace(in.Username)
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return domain.Profile{}, domain.NewValidationError("nome_usuario", "must be at most %d characters", maxUsernameLength)
	}
	if strings.ContainsAny(username, " \t\n") {
		return domain.Profile{}, domain.NewValidationError("nome_usuario", "must not contain spaces")
	}
	if utf8.RuneCountInString(in.Bio) > maxBioLength {
		return domain.Profile{}, domain.NewValidationError("biografia", "must be at most %d characters", maxBioLength)
	}

	now := s.now()
	created := now
	if existing, err := s.repo.GetProfile(ctx, userID); err == nil {
		created = existing.CreatedAt
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("community: failed to load profile: %w", err)
	}

	p := domain.Profile{
		ID:        userID,
		Username:  username,
		FullName:  strings.TrimSpace(in.FullName),
		Bio:       strings.TrimSpace(in.Bio),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: created,
		UpdatedAt: now,
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return domain.Profile{}, fmt.Errorf("community: failed to save profile: %w", err)
	}
	return p, nil
}
