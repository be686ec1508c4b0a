package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/ratelimit"
)

// Runner is satisfied by *Pipeline.
type Runner interface {
	Ingest(ctx context.Context, query string) (int, error)
}

type Quota interface {
	CheckAndRecord(ctx context.Context, userID uuid.UUID, kind ratelimit.Kind) error
}

// AddressGate throttles callers by network address.
type AddressGate interface {
	Allow(ctx context.Context, key string) error
}

type Request struct {
	Query   string
	UserID  *uuid.UUID
	Address string
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type UseCase interface {
	// Trigger runs one ingestion on behalf of a caller and returns the
	// number of newly stored jobs.
	Trigger(ctx context.Context, req Request) (int, error)
}

type service struct {
	runner Runner
	quota  Quota
	gate   AddressGate
}

func NewService(runner Runner, quota Quota, gate AddressGate) UseCase {
	return &service{runner: runner, quota: quota, gate: gate}
}

func (s *service) Trigger(ctx context.Context, req Request) (int, error) {
	addr := req.Address
	if addr == "" {
		addr = "unknown"
	}
	if err := s.gate.Allow(ctx, addr); err != nil {
		return 0, err
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return 0, ErrValidation("query is required")
	}
	if req.UserID != nil {
		if err := s.quota.CheckAndRecord(ctx, *req.UserID, ratelimit.KindJobFetch); err != nil {
			return 0, err
		}
	}
	n, err := s.runner.Ingest(ctx, query)
	if err != nil {
		return 0, err
	}
	slog.Info("ingestion finished", slog.String("query", query), slog.Int("ingested", n))
	return n, nil
}
