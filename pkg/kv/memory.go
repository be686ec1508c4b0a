// Package kv holds process state that must be injectable and resettable:
// a TTL byte cache and sliding-window hit counters. Memory serves a single
// process; Redis shares the state across replicas.
package kv

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val       []byte
	expiresAt time.Time
}

type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	hits  map[string][]time.Time
	now   func() time.Time
}

type MemoryOption func(*Memory)

// WithClock replaces time.Now for TTL checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items: make(map[string]entry),
		hits:  make(map[string][]time.Time),
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set stores val under key; ttl <= 0 keeps it until Reset.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

func (m *Memory) Hit(_ context.Context, key string, now time.Time, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := prune(m.hits[key], now.Add(-window))
	kept = append(kept, now)
	m.hits[key] = kept
	return len(kept), nil
}

func prune(ts []time.Time, after time.Time) []time.Time {
	out := ts[:0]
	for _, t := range ts {
		if t.After(after) {
			out = append(out, t)
		}
	}
	return out
}

// Sweep drops expired cache entries and hit series with no hit newer than maxWindow.
func (m *Memory) Sweep(maxWindow time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.items {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.items, k)
		}
	}
	for k, ts := range m.hits {
		kept := prune(ts, now.Add(-maxWindow))
		if len(kept) == 0 {
			delete(m.hits, k)
		} else {
			m.hits[k] = kept
		}
	}
}

// Janitor sweeps every interval until ctx is done.
func (m *Memory) Janitor(ctx context.Context, interval, maxWindow time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep(maxWindow)
		}
	}
}

// Reset empties all state.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]entry)
	m.hits = make(map[string][]time.Time)
}

// Len returns the number of live cache entries and hit series.
func (m *Memory) Len() (items, series int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), len(m.hits)
}
