package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/internal/repository/postgres"
	"github.com/trilhasbrasil/backend/internal/repository/seed"
)

// sequence cycles through fixed draws
func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestHikeAdvance(t *testing.T) {
	repo := postgres.NewMockRepository()
	// each tick draws distance then elevation: both below threshold
	svc := NewHikeService(repo, 0, WithRandom(sequence(0.1, 0.1)))
	ctx := context.Background()

	hike, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	assert.Equal(t, domain.HikeRecording, hike.Status)
	require.NotNil(t, hike.Position)
	assert.Equal(t, -15.9647, hike.Position.Lat)

	svc.Advance(hike.ID, 10)
	got, err := svc.Get(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.ElapsedSeconds)
	assert.Equal(t, 0.1, got.DistanceKm)
	assert.Equal(t, 10, got.ElevationGainM)
	assert.Equal(t, "00:00:10", got.Elapsed())
	assert.NotEqual(t, hike.Position, got.Position)
}

func TestHikeAdvanceProbabilities(t *testing.T) {
	// distance draw 0.5 misses 0.3, elevation draw 0.1 hits 0.2
	svc := NewHikeService(postgres.NewMockRepository(), 0, WithRandom(sequence(0.5, 0.1)))
	hike, err := svc.Start(context.Background(), "u1", seed.TororoTrailID)
	require.NoError(t, err)

	svc.Advance(hike.ID, 3)
	got, err := svc.Get(context.Background(), "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ElapsedSeconds)
	assert.Equal(t, 0.0, got.DistanceKm)
	assert.Equal(t, 3, got.ElevationGainM)
}

func TestHikePauseResumeStop(t *testing.T) {
	repo := postgres.NewMockRepository()
	svc := NewHikeService(repo, 0, WithRandom(sequence(0.9)))
	ctx := context.Background()

	hike, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)

	_, err = svc.Resume(ctx, "u1", hike.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	paused, err := svc.Pause(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HikePaused, paused.Status)

	svc.Advance(hike.ID, 5)
	got, err := svc.Get(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ElapsedSeconds)

	_, err = svc.Pause(ctx, "u1", hike.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = svc.Resume(ctx, "u1", hike.ID)
	require.NoError(t, err)
	svc.Advance(hike.ID, 2)

	_, err = svc.Stop(ctx, "u2", hike.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stopped, err := svc.Stop(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HikeStopped, stopped.Status)
	assert.Equal(t, 2, stopped.ElapsedSeconds)
	require.NotNil(t, stopped.EndedAt)

	svc.WaitBackground()
	history, err := repo.ListHikes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, hike.ID, history[0].ID)

	got, err = svc.Get(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HikeStopped, got.Status)

	_, err = svc.Stop(ctx, "u1", hike.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHikeStopUser(t *testing.T) {
	repo := postgres.NewMockRepository()
	svc := NewHikeService(repo, 0)
	ctx := context.Background()

	_, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	_, err = svc.Start(ctx, "u1", "0548f4dd-e29c-4121-8415-b1c114befab1")
	require.NoError(t, err)
	other, err := svc.Start(ctx, "u2", seed.TororoTrailID)
	require.NoError(t, err)

	assert.Equal(t, 2, svc.StopUser("u1"))
	svc.WaitBackground()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, h := range list {
		assert.Equal(t, domain.HikeStopped, h.Status)
	}

	list, err = svc.List(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)
	assert.Equal(t, domain.HikeRecording, list[0].Status)

	svc.StopAll()
	svc.WaitBackground()
	list, err = svc.List(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.HikeStopped, list[0].Status)
}

func TestHikeTicker(t *testing.T) {
	svc := NewHikeService(postgres.NewMockRepository(), 5*time.Millisecond)
	ctx := context.Background()

	hike, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		h, err := svc.Get(ctx, "u1", hike.ID)
		return err == nil && h.ElapsedSeconds >= 3
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Stop(ctx, "u1", hike.ID)
	require.NoError(t, err)
	svc.WaitBackground()

	_, err = svc.Start(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// gatedRepo holds SaveHike until release is closed, then fails with saveErr
// or stores the hike
type gatedRepo struct {
	*postgres.MockRepository
	release chan struct{}
	saveErr error
}

func (r *gatedRepo) SaveHike(ctx context.Context, h domain.Hike) error {
	<-r.release
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.MockRepository.SaveHike(ctx, h)
}

func TestHikeVisibleWhileSaving(t *testing.T) {
	repo := &gatedRepo{MockRepository: postgres.NewMockRepository(), release: make(chan struct{})}
	svc := NewHikeService(repo, 0)
	ctx := context.Background()

	hike, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, "u1", hike.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HikeStopped, got.Status)

	_, err = svc.Get(ctx, "u2", hike.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hike.ID, list[0].ID)

	close(repo.release)
	svc.WaitBackground()

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.HikeStopped, list[0].Status)
}

func TestHikeKeptWhenSaveFails(t *testing.T) {
	repo := &gatedRepo{
		MockRepository: postgres.NewMockRepository(),
		release:        make(chan struct{}),
		saveErr:        errors.New("disk full"),
	}
	close(repo.release)
	svc := NewHikeService(repo, 0)
	ctx := context.Background()

	hike, err := svc.Start(ctx, "u1", seed.TororoTrailID)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, "u1", hike.ID)
	require.NoError(t, err)
	svc.WaitBackground()

	got, err := svc.Get(ctx, "u1", hike.ID)
	require.NoError(t, err)
	assert.Equal(t, hike.ID, got.ID)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
