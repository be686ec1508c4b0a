package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemoryTTL(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory(WithClock(c.now))
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Hour))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	c.t = c.t.Add(time.Hour)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryHitSlides(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, want := range []int{1, 2, 3, 4} {
		n, err := m.Hit(ctx, "ip", base.Add(time.Duration(i)*time.Second), time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, _ := m.Hit(ctx, "ip", base.Add(61*time.Second), time.Minute)
	assert.Equal(t, 3, n, "the first two hits left the window")
	n, _ = m.Hit(ctx, "other", base, time.Minute)
	assert.Equal(t, 1, n)
}

func TestMemorySweepAndReset(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory(WithClock(c.now))
	ctx := context.Background()
	_ = m.Set(ctx, "a", []byte("1"), time.Minute)
	_ = m.Set(ctx, "b", []byte("2"), 0)
	_, _ = m.Hit(ctx, "ip", c.t, time.Minute)

	c.t = c.t.Add(2 * time.Minute)
	m.Sweep(time.Minute)
	items, series := m.Len()
	assert.Equal(t, 1, items)
	assert.Equal(t, 0, series)

	m.Reset()
	items, _ = m.Len()
	assert.Zero(t, items)
}
