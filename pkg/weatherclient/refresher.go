package weatherclient

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often Run refreshes the forecast
const DefaultInterval = time.Hour

// Refresher keeps the latest forecast for a location. A newer request
// cancels the one in flight and only the newest result is kept.
type Refresher struct {
	client   *Client
	interval time.Duration
	onUpdate func(location string, r Result)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	latest *Result
}

// NewRefresher creates a refresher. onUpdate, when non-nil, is called with
// every result that was not superseded.
func NewRefresher(client *Client, interval time.Duration, onUpdate func(location string, r Result)) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{client: client, interval: interval, onUpdate: onUpdate}
}

// Refresh fetches location and reports whether the result is still the
// newest one. A superseded call returns false and its result is dropped.
func (r *Refresher) Refresh(ctx context.Context, location string) (Result, bool) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	reqCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	res := r.client.Forecast(reqCtx, location)

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		cancel()
		return Result{}, false
	}
	r.latest = &res
	r.cancel = nil
	r.mu.Unlock()
	cancel()

	if r.onUpdate != nil {
		r.onUpdate(location, res)
	}
	return res, true
}

// Latest returns the newest accepted result
func (r *Refresher) Latest() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest == nil {
		return Result{}, false
	}
	return *r.latest, true
}

// Run refreshes location immediately and then on every interval until ctx
// is done
func (r *Refresher) Run(ctx context.Context, location string) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Refresh(ctx, location)
	for {
		select {
		case <-ticker.C:
			r.Refresh(ctx, location)
		case <-ctx.Done():
			return
		}
	}
}
