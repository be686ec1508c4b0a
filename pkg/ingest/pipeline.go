// Package ingest pulls postings from every job source, enriches them with
// extracted skills and stores the new ones.
//
// Failure handling is deliberately asymmetric. A failing source or a failing
// skill extraction only loses that unit's data; a failing write aborts the
// run with an error. Writes are not wrapped in a transaction, so a run that
// fails midway can leave a job with only part of its skills attached.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/metrics"
	"github.com/rozgaar/backend/pkg/nlp"
	"github.com/rozgaar/backend/pkg/skills"
	"github.com/rozgaar/backend/pkg/worker"
)

const (
	DefaultMaxRecords = 50
	DefaultWorkers    = 4
)

// Source is one external job feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]jobs.Posting, error)
}

// SkillExtractor must not fail; an unusable answer is an empty list.
type SkillExtractor interface {
	Extract(ctx context.Context, description string) []string
}

type JobStore interface {
	CreateIfAbsent(ctx context.Context, p jobs.Posting) (jobs.Job, bool, error)
}

type SkillStore interface {
	GetOrCreate(ctx context.Context, name string) (skills.Skill, error)
	AttachToJob(ctx context.Context, jobID, skillID uuid.UUID) error
}

type Pipeline struct {
	sources    []Source
	extractor  SkillExtractor
	jobs       JobStore
	skills     SkillStore
	maxRecords int
	workers    int
}

type Option func(*Pipeline)

func WithMaxRecords(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxRecords = n
		}
	}
}

func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func New(sources []Source, extractor SkillExtractor, js JobStore, ss SkillStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		sources:    sources,
		extractor:  extractor,
		jobs:       js,
		skills:     ss,
		maxRecords: DefaultMaxRecords,
		workers:    DefaultWorkers,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type enriched struct {
	posting jobs.Posting
	skills  []string
}

// Ingest runs one pass for query and returns how many jobs were newly stored.
func (p *Pipeline) Ingest(ctx context.Context, query string) (int, error) {
	fetched := p.fetchAll(ctx, query)
	metrics.IngestedRecords.WithLabelValues("fetched").Add(float64(len(fetched)))

	valid := make([]jobs.Posting, 0, len(fetched))
	for _, rec := range fetched {
		if rec.Valid() {
			valid = append(valid, rec)
		}
	}
	if len(valid) > p.maxRecords {
		valid = valid[:p.maxRecords]
	}
	metrics.IngestedRecords.WithLabelValues("valid").Add(float64(len(valid)))

	batch, _ := worker.Run(ctx, valid, p.workers, func(ctx context.Context, rec jobs.Posting) (enriched, error) {
		return enriched{posting: rec, skills: p.extractor.Extract(ctx, rec.Description)}, nil
	})

	inserted := 0
	for i, e := range batch {
		// Extraction skipped because ctx ended; store the job without skills.
		if e.posting.SourceURL == "" {
			e.posting = valid[i]
		}
		created, err := p.persist(ctx, e)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	metrics.IngestedRecords.WithLabelValues("inserted").Add(float64(inserted))
	metrics.IngestedRecords.WithLabelValues("duplicate").Add(float64(len(batch) - inserted))

	slog.Info("ingestion finished",
		slog.String("query", query),
		slog.Int("fetched", len(fetched)),
		slog.Int("valid", len(valid)),
		slog.Int("inserted", inserted),
	)
	return inserted, nil
}

// fetchAll queries every source concurrently. A failing source contributes
// nothing; output keeps source order.
func (p *Pipeline) fetchAll(ctx context.Context, query string) []jobs.Posting {
	results := make([][]jobs.Posting, len(p.sources))
	var g errgroup.Group
	for i, src := range p.sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
					slog.Error("job source panicked", slog.String("source", src.Name()), slog.Any("panic", r))
				}
			}()
			recs, err := src.Fetch(ctx, query)
			if err != nil {
				metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
				slog.Warn("job source failed", slog.String("source", src.Name()), slog.Any("err", err))
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var all []jobs.Posting
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func (p *Pipeline) persist(ctx context.Context, e enriched) (bool, error) {
	job, created, err := p.jobs.CreateIfAbsent(ctx, e.posting)
	if err != nil {
		return false, fmt.Errorf("store job %s: %w", e.posting.SourceURL, err)
	}
	if !created {
		return false, nil
	}
	for _, name := range nlp.UniqueSkills(e.skills) {
		sk, err := p.skills.GetOrCreate(ctx, name)
		if err != nil {
			return true, fmt.Errorf("store skill %q: %w", name, err)
		}
		if err := p.skills.AttachToJob(ctx, job.ID, sk.ID); err != nil {
			return true, fmt.Errorf("attach skill %q to job %s: %w", name, job.ID, err)
		}
	}
	return true, nil
}
