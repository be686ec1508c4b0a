package ratelimit

import (
	"context"
	"time"

	"github.com/rozgaar/backend/pkg/metrics"
)

const (
	AddressLimit  = 3
	AddressWindow = time.Minute
)

// WindowStore records a hit under key and returns how many hits fall inside
// the window ending at now, the new one included.
type WindowStore interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int, error)
}

// Window is a sliding-window limiter keyed by client address. Rejected
// calls still count as hits.
type Window struct {
	store  WindowStore
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewWindow(store WindowStore, prefix string, limit int, window time.Duration) *Window {
	return &Window{store: store, limit: limit, window: window, prefix: prefix, now: time.Now}
}

// Allow returns a *LimitError once key has made more than limit calls in the window.
func (w *Window) Allow(ctx context.Context, key string) error {
	n, err := w.store.Hit(ctx, w.prefix+key, w.now(), w.window)
	if err != nil {
		return err
	}
	if n > w.limit {
		metrics.RateLimited.WithLabelValues("address").Inc()
		return &LimitError{
			Kind:       "address",
			Limit:      w.limit,
			Message:    "Rate limit exceeded. Please try again later.",
			RetryAfter: w.window,
		}
	}
	return nil
}
