// Package ratelimit enforces per-user daily quotas and a per-address
// sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/metrics"
)

type Kind string

const (
	KindChat     Kind = "chat"
	KindJobFetch Kind = "job_fetch"
)

const (
	ChatLimit     = 10
	JobFetchLimit = 3
)

// LimitError is returned when a quota or window is exhausted. Message is
// safe to show to end users.
type LimitError struct {
	Kind       Kind
	Limit      int
	Message    string
	RetryAfter time.Duration
}

func (e *LimitError) Error() string { return e.Message }

// UsageRepository counts and appends usage log rows. Rows are never removed.
type UsageRepository interface {
	CountSince(ctx context.Context, userID uuid.UUID, kind Kind, since time.Time) (int, error)
	Record(ctx context.Context, userID uuid.UUID, kind Kind, at time.Time) error
}

type policy struct {
	limit   int
	since   func(now time.Time) time.Time
	message string
}

// Limiter enforces daily quotas from usage log rows: chat messages over a
// rolling 24 hours and job fetches per UTC calendar day.
//
// The count and the insert are separate statements, so concurrent requests
// from one user can each pass the check and admit one action over the limit.
type Limiter struct {
	repo     UsageRepository
	now      func() time.Time
	policies map[Kind]policy
}

func NewLimiter(repo UsageRepository) *Limiter {
	return &Limiter{
		repo: repo,
		now:  time.Now,
		policies: map[Kind]policy{
			KindChat: {
				limit:   ChatLimit,
				since:   func(now time.Time) time.Time { return now.Add(-24 * time.Hour) },
				message: fmt.Sprintf("Daily chat limit reached (%d messages/day). Upgrade for unlimited access.", ChatLimit),
			},
			KindJobFetch: {
				limit:   JobFetchLimit,
				since:   startOfDayUTC,
				message: fmt.Sprintf("Daily job fetch limit reached (%d/day). Try again tomorrow.", JobFetchLimit),
			},
		},
	}
}

func startOfDayUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckAndRecord returns a *LimitError when the user has used up kind's
// quota; otherwise it records one more use.
func (l *Limiter) CheckAndRecord(ctx context.Context, userID uuid.UUID, kind Kind) error {
	p, ok := l.policies[kind]
	if !ok {
		return fmt.Errorf("unknown limit kind %q", kind)
	}
	now := l.now()
	n, err := l.repo.CountSince(ctx, userID, kind, p.since(now))
	if err != nil {
		return fmt.Errorf("count %s usage: %w", kind, err)
	}
	if n >= p.limit {
		metrics.RateLimited.WithLabelValues(string(kind)).Inc()
		return &LimitError{Kind: kind, Limit: p.limit, Message: p.message}
	}
	if err := l.repo.Record(ctx, userID, kind, now); err != nil {
		return fmt.Errorf("record %s usage: %w", kind, err)
	}
	return nil
}

type Limits struct {
	Chat  int `json:"chat"`
	Fetch int `json:"fetch"`
}

type Usage struct {
	ChatCount  int    `json:"chatCount"`
	FetchCount int    `json:"fetchCount"`
	Limits     Limits `json:"limits"`
}

// Usage reports the user's current counts in each quota window.
func (l *Limiter) Usage(ctx context.Context, userID uuid.UUID) (Usage, error) {
	now := l.now()
	chat, err := l.repo.CountSince(ctx, userID, KindChat, l.policies[KindChat].since(now))
	if err != nil {
		return Usage{}, err
	}
	fetch, err := l.repo.CountSince(ctx, userID, KindJobFetch, l.policies[KindJobFetch].since(now))
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		ChatCount:  chat,
		FetchCount: fetch,
		Limits:     Limits{Chat: ChatLimit, Fetch: JobFetchLimit},
	}, nil
}
