package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/repository/postgres"
	"github.com/trilhasbrasil/backend/internal/repository/seed"
)

func newCommunity(t *testing.T) *CommunityService {
	t.Helper()
	svc := NewCommunityService(postgres.NewMockRepository())
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return svc
}

func TestFavorites(t *testing.T) {
	svc := newCommunity(t)
	ctx := context.Background()
	const imperial = "ba2b1c8c-4045-4a42-8475-89b135960ae6"

	require.NoError(t, svc.AddFavorite(ctx, "u1", seed.TororoTrailID))
	require.NoError(t, svc.AddFavorite(ctx, "u1", seed.TororoTrailID))
	require.NoError(t, svc.AddFavorite(ctx, "u1", imperial))

	err := svc.AddFavorite(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	trails, err := svc.FavoriteTrails(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trails, 2)
	assert.Equal(t, imperial, trails[0].ID)

	ok, err := svc.IsFavorite(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.RemoveFavorite(ctx, "u1", seed.TororoTrailID))
	ok, err = svc.IsFavorite(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := svc.FavoriteTrails(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAddReviewValidation(t *testing.T) {
	svc := newCommunity(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    ReviewInput
		field string
	}{
		{"zero rating", ReviewInput{Rating: 0, Comment: "ok"}, "avaliacao"},
		{"rating above five", ReviewInput{Rating: 6, Comment: "ok"}, "avaliacao"},
		{"blank comment", ReviewInput{Rating: 3, Comment: "   "}, "comentario"},
		{"bad visit date", ReviewInput{Rating: 3, Comment: "ok", VisitDate: "20/02/2025"}, "data_visita"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddReview(ctx, "u1", seed.TororoTrailID, tt.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := svc.AddReview(ctx, "u1", "missing", ReviewInput{Rating: 3, Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewsSummary(t *testing.T) {
	svc := newCommunity(t)
	ctx := context.Background()

	empty, err := svc.Reviews(ctx, seed.TororoTrailID)
	require.NoError(t, err)
	assert.Nil(t, empty.AverageRating)
	assert.Equal(t, 0, empty.Total)

	_, err = svc.UpdateProfile(ctx, "u1", ProfileInput{Username: "ana", FullName: "Ana Souza"})
	require.NoError(t, err)

	for _, r := range []int{5, 4, 4} {
		_, err := svc.AddReview(ctx, "u1", seed.TororoTrailID, ReviewInput{Rating: r, Comment: " linda trilha "})
		require.NoError(t, err)
	}

	summary, err := svc.Reviews(ctx, seed.TororoTrailID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	require.NotNil(t, summary.AverageRating)
	assert.Equal(t, 4.3, *summary.AverageRating)
	assert.Equal(t, "linda trilha", summary.Reviews[0].Comment)
	assert.Equal(t, 4, summary.Reviews[0].Rating)
	require.NotNil(t, summary.Reviews[0].Author)
	assert.Equal(t, "Ana Souza", summary.Reviews[0].Author.FullName)
}

func TestProfile(t *testing.T) {
	svc := newCommunity(t)
	ctx := context.Background()
	user := domain.User{ID: "u1", Metadata: map[string]string{"full_name": "Ana Souza"}}

	p, err := svc.Profile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", p.FullName)
	assert.True(t, p.CreatedAt.IsZero())

	_, err = svc.UpdateProfile(ctx, "u1", ProfileInput{Username: "ana souza"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	first, err := svc.UpdateProfile(ctx, "u1", ProfileInput{Username: "ana", Bio: " trilheira "})
	require.NoError(t, err)
	second, err := svc.UpdateProfile(ctx, "u1", ProfileInput{Username: "ana_s"})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	p, err = svc.Profile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "ana_s", p.Username)
	assert.Empty(t, p.Bio)
}
