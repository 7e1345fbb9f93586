package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/repository/seed"
)

func TestMockCatalog(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()

	parks, err := repo.ListParks(ctx, "Centro-Oeste")
	require.NoError(t, err)
	assert.Len(t, parks, 3)
	for i := 1; i < len(parks); i++ {
		assert.LessOrEqual(t, parks[i-1].Name, parks[i].Name)
	}

	p, err := repo.GetPark(ctx, seed.PireneusParkID)
	require.NoError(t, err)
	assert.Equal(t, "5", p.ID)

	_, err = repo.GetTrail(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hard, err := repo.ListTrails(ctx, domain.TrailFilter{Difficulty: domain.DifficultyHard})
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, seed.PireneusParkID, hard[0].ParkID)
}

func TestMockFavoritesAreIdempotent(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()
	first := time.Now()

	require.NoError(t, repo.AddFavorite(ctx, domain.Favorite{ID: "a", UserID: "u", TrailID: "t", CreatedAt: first}))
	require.NoError(t, repo.AddFavorite(ctx, domain.Favorite{ID: "b", UserID: "u", TrailID: "t", CreatedAt: first.Add(time.Second)}))

	favs, err := repo.ListFavorites(ctx, "u")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "a", favs[0].ID)

	require.NoError(t, repo.RemoveFavorite(ctx, "u", "t"))
	require.NoError(t, repo.RemoveFavorite(ctx, "u", "t"))
	ok, err := repo.IsFavorite(ctx, "u", "t")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMockReviewsJoinAuthor(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveProfile(ctx, domain.Profile{ID: "u", FullName: "Ana", CreatedAt: now}))
	require.NoError(t, repo.SaveProfile(ctx, domain.Profile{ID: "u", FullName: "Ana Souza", CreatedAt: now.Add(time.Hour)}))
	require.NoError(t, repo.SaveReview(ctx, domain.Review{ID: "1", UserID: "u", TrailID: "t", Rating: 5, CreatedAt: now}))
	require.NoError(t, repo.SaveReview(ctx, domain.Review{ID: "2", UserID: "x", TrailID: "t", Rating: 3, CreatedAt: now.Add(time.Minute)}))

	reviews, err := repo.ListReviews(ctx, "t")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "2", reviews[0].ID)
	assert.Nil(t, reviews[0].Author)
	require.NotNil(t, reviews[1].Author)
	assert.Equal(t, "Ana Souza", reviews[1].Author.FullName)

	p, err := repo.GetProfile(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, now, p.CreatedAt)
}
