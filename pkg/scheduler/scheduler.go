// Package scheduler runs background ingestion on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Runner interface {
	Ingest(ctx context.Context, query string) (int, error)
}

// Scheduler ingests every configured query in turn on each tick. A tick
// that fires while the previous one is still running is skipped.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	spec    string
	queries []string
}

func New(runner Runner, spec string, queries []string) *Scheduler {
	logger := slogLogger{}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		runner:  runner,
		spec:    spec,
		queries: queries,
	}
}

// Start registers the ingestion job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	slog.Info("ingestion scheduler started", slog.String("spec", s.spec), slog.Int("queries", len(s.queries)))
	return nil
}

// Stop halts the schedule and returns a context that is done once a
// running tick has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce ingests each query sequentially. Failures are logged and the
// remaining queries still run.
func (s *Scheduler) RunOnce(ctx context.Context) (total int) {
	for _, q := range s.queries {
		if ctx.Err() != nil {
			return total
		}
		n, err := s.runner.Ingest(ctx, q)
		if err != nil {
			slog.Error("scheduled ingestion failed", slog.String("query", q), slog.Any("err", err))
			continue
		}
		total += n
	}
	slog.Info("scheduled ingestion cycle complete", slog.Int("ingested", total))
	return total
}

type slogLogger struct{}

func (slogLogger) Info(msg string, kv ...any) {
	slog.Debug("cron: "+msg, kv...)
}

func (slogLogger) Error(err error, msg string, kv ...any) {
	slog.Error("cron: "+msg, append(kv, slog.Any("err", err))...)
}
