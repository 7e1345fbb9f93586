package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trilhasbrasil/backend/internal/domain"
	"github.com/trilhasbrasil/backend/pkg/utils"
)

const (
	distanceStepKm    = 0.01
	distanceStepProb  = 0.3
	elevationStepProb = 0.2
	saveTimeout       = 5 * time.Second
)

type hikeSession struct {
	hike  domain.Hike
	trail domain.Trail
	done  chan struct{}
}

// HikeOption configures a HikeService
type HikeOption func(*HikeService)

// WithRandom replaces the source of the per-tick random draws
func WithRandom(fn func() float64) HikeOption {
	return func(s *HikeService) { s.random = fn }
}

// WithClock replaces time.Now
func WithClock(fn func() time.Time) HikeOption {
	return func(s *HikeService) { s.now = fn }
}

// HikeService simulates live hike recordings and stores finished ones
type HikeService struct {
	repo   DataRepository
	tick   time.Duration
	random func() float64
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*hikeSession
	// unsaved holds stopped hikes until the store accepts them
	unsaved map[string]domain.Hike

	wgBg sync.WaitGroup // tracks background saves for graceful shutdown
}

// NewHikeService creates a hike service advancing every tick. A zero tick
// disables the background ticker; sessions then only move through Advance.
func NewHikeService(repo DataRepository, tick time.Duration, opts ...HikeOption) *HikeService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &HikeService{
		repo:     repo,
		tick:     tick,
		random:   rng.Float64,
		now:      time.Now,
		sessions: make(map[string]*hikeSession),
		unsaved:  make(map[string]domain.Hike),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *HikeService) WaitBackground() {
	s.wgBg.Wait()
}

// Start begins recording a hike on a trail
func (s *HikeService) Start(ctx context.Context, userID, trailID string) (domain.Hike, error) {
	trail, err := s.repo.GetTrail(ctx, trailID)
	if err != nil {
		return domain.Hike{}, err
	}

	hike := domain.Hike{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrailID:   trail.ID,
		Status:    domain.HikeRecording,
		StartedAt: s.now(),
		Position:  positionAlong(trail, 0),
	}
	sess := &hikeSession{hike: hike, trail: trail, done: make(chan struct{})}

	s.mu.Lock()
	s.sessions[hike.ID] = sess
	s.mu.Unlock()

	if s.tick > 0 {
		go s.run(hike.ID, sess.done)
	}
	log.Printf("hikes: user %s started %s on %s", userID, hike.ID, trail.ID)
	return hike, nil
}

func (s *HikeService) run(id string, done <-chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.Advance(id, 1)
		}
	}
}

// Advance applies n ticks to a recording session. Paused and unknown
// sessions are left untouched.
func (s *HikeService) Advance(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.hike.Status != domain.HikeRecording {
		return
	}
	for i := 0; i < n; i++ {
		h := &sess.hike
		h.ElapsedSeconds++
		if s.random() < distanceStepProb {
			h.DistanceKm = utils.RoundTo(h.DistanceKm+distanceStepKm, 2)
		}
		if s.random() < elevationStepProb {
			h.ElevationGainM++
		}
	}

	frac := 0.0
	if sess.trail.DistanceKm > 0 {
		frac = sess.hike.DistanceKm / sess.trail.DistanceKm
	}
	sess.hike.Position = positionAlong(sess.trail, frac)
}

func positionAlong(trail domain.Trail, frac float64) *domain.Coordinates {
	if len(trail.Path) == 0 {
		if trail.Coordinates == nil {
			return nil
		}
		c := *trail.Coordinates
		return &c
	}
	lats := make([]float64, len(trail.Path))
	lngs := make([]float64, len(trail.Path))
	for i, c := range trail.Path {
		lats[i], lngs[i] = c.Lat, c.Lng
	}
	lat, lng := utils.PointAlong(lats, lngs, frac)
	return &domain.Coordinates{Lat: lat, Lng: lng}
}

// session returns the user's session or ErrNotFound. Caller holds mu.
func (s *HikeService) session(userID, hikeID string) (*hikeSession, error) {
	sess, ok := s.sessions[hikeID]
	if !ok || sess.hike.UserID != userID {
		return nil, fmt.Errorf("hikes: active hike %q: %w", hikeID, domain.ErrNotFound)
	}
	return sess, nil
}

// Pause suspends a recording session
func (s *HikeService) Pause(ctx context.Context, userID, hikeID string) (domain.Hike, error) {
	return s.transition(userID, hikeID, domain.HikeRecording, domain.HikePaused)
}

// Resume continues a paused session
func (s *HikeService) Resume(ctx context.Context, userID, hikeID string) (domain.Hike, error) {
	return s.transition(userID, hikeID, domain.HikePaused, domain.HikeRecording)
}

func (s *HikeService) transition(userID, hikeID string, from, to domain.HikeStatus) (domain.Hike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(userID, hikeID)
	if err != nil {
		return domain.Hike{}, err
	}
	if sess.hike.Status != from {
		return domain.Hike{}, fmt.Errorf("hikes: cannot go from %s to %s: %w",
			sess.hike.Status, to, domain.ErrInvalidStateTransition)
	}
	sess.hike.Status = to
	return sess.hike, nil
}

// Stop ends a session and persists it in the background. The hike stays
// readable through Get and List while the save is pending.
func (s *HikeService) Stop(ctx context.Context, userID, hikeID string) (domain.Hike, error) {
	s.mu.Lock()
	sess, err := s.session(userID, hikeID)
	if err != nil {
		s.mu.Unlock()
		return domain.Hike{}, err
	}
	hike := s.finishLocked(sess)
	s.mu.Unlock()

	s.persist(hike)
	return hike, nil
}

// StopUser ends every active session of a user, e.g. on sign-out
func (s *HikeService) StopUser(userID string) int {
	s.mu.Lock()
	var stopped []domain.Hike
	for _, sess := range s.sessions {
		if sess.hike.UserID == userID {
			stopped = append(stopped, s.finishLocked(sess))
		}
	}
	s.mu.Unlock()

	for _, h := range stopped {
		s.persist(h)
	}
	return len(stopped)
}

// StopAll ends every active session
func (s *HikeService) StopAll() {
	s.mu.Lock()
	stopped := make([]domain.Hike, 0, len(s.sessions))
	for _, sess := range s.sessions {
		stopped = append(stopped, s.finishLocked(sess))
	}
	s.mu.Unlock()

	for _, h := range stopped {
		s.persist(h)
	}
}

func (s *HikeService) finishLocked(sess *hikeSession) domain.Hike {
	ended := s.now()
	sess.hike.Status = domain.HikeStopped
	sess.hike.EndedAt = &ended
	close(sess.done)
	delete(s.sessions, sess.hike.ID)
	s.unsaved[sess.hike.ID] = sess.hike
	return sess.hike
}

func (s *HikeService) persist(hike domain.Hike) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.repo.SaveHike(bgCtx, hike); err != nil {
			log.Printf("hikes: failed to save hike %s, keeping it in memory: %v", hike.ID, err)
			return
		}
		s.mu.Lock()
		delete(s.unsaved, hike.ID)
		s.mu.Unlock()
	}()
}

// Get returns an active session, or a finished hike from the store
func (s *HikeService) Get(ctx context.Context, userID, hikeID string) (domain.Hike, error) {
	s.mu.Lock()
	if sess, err := s.session(userID, hikeID); err == nil {
		h := sess.hike
		s.mu.Unlock()
		return h, nil
	}
	if h, ok := s.unsaved[hikeID]; ok && h.UserID == userID {
		s.mu.Unlock()
		return h, nil
	}
	s.mu.Unlock()

	history, err := s.repo.ListHikes(ctx, userID)
	if err != nil {
		return domain.Hike{}, fmt.Errorf("hikes: failed to list hikes: %w", err)
	}
	for _, h := range history {
		if h.ID == hikeID {
			return h, nil
		}
	}
	return domain.Hike{}, fmt.Errorf("hikes: hike %q: %w", hikeID, domain.ErrNotFound)
}

// List returns the user's active sessions followed by finished hikes,
// newest first
func (s *HikeService) List(ctx context.Context, userID string) ([]domain.Hike, error) {
	s.mu.Lock()
	active := make([]domain.Hike, 0)
	for _, sess := range s.sessions {
		if sess.hike.UserID == userID {
			active = append(active, sess.hike)
		}
	}
	finished := make([]domain.Hike, 0)
	for _, h := range s.unsaved {
		if h.UserID == userID {
			finished = append(finished, h)
		}
	}
	s.mu.Unlock()

	history, err := s.repo.ListHikes(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("hikes: failed to list hikes: %w", err)
	}

	// a save may land between the two reads
	seen := make(map[string]bool, len(finished))
	for _, h := range finished {
		seen[h.ID] = true
	}
	for _, h := range history {
		if !seen[h.ID] {
			finished = append(finished, h)
		}
	}

	newestFirst := func(hikes []domain.Hike) {
		sort.SliceStable(hikes, func(i, j int) bool { return hikes[i].StartedAt.After(hikes[j].StartedAt) })
	}
	newestFirst(active)
	newestFirst(finished)
	return append(active, finished...), nil
}
