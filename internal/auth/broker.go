package auth

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// EventType names an auth state change
type EventType string

const (
	SignedIn  EventType = "SIGNED_IN"
	SignedOut EventType = "SIGNED_OUT"
)

// Event is delivered to subscribers on every auth state change
type Event struct {
	Type EventType
	User domain.User
	At   time.Time
}

// Broker fans auth events out to subscribers
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is safe.
func (b *Broker) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers e synchronously, in subscription order
func (b *Broker) Publish(e Event) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Sessions signs users in and out and publishes the matching events
type Sessions struct {
	verifier Verifier
	broker   *Broker
	now      func() time.Time
}

// NewSessions creates a session manager
func NewSessions(verifier Verifier, broker *Broker) *Sessions {
	return &Sessions{verifier: verifier, broker: broker, now: time.Now}
}

// Verify checks a token without publishing anything
func (s *Sessions) Verify(ctx context.Context, token string) (domain.User, error) {
	return s.verifier.Verify(ctx, token)
}

// SignIn verifies the token and announces the user
func (s *Sessions) SignIn(ctx context.Context, token string) (domain.User, error) {
	user, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: sign in failed: %w", err)
	}
	s.broker.Publish(Event{Type: SignedIn, User: user, At: s.now()})
	log.Printf("auth: %s signed in", user.ID)
	return user, nil
}

// SignOut announces that the user left
func (s *Sessions) SignOut(user domain.User) {
	s.broker.Publish(Event{Type: SignedOut, User: user, At: s.now()})
	log.Printf("auth: %s signed out", user.ID)
}
