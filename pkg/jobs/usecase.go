package jobs

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase covers read access to stored jobs and their summaries.
type UseCase interface {
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter) ([]Job, error)
	Summarize(ctx context.Context, req SummaryRequest) (Summary, error)
	// Links builds search URLs on boards that are not ingested.
	Links(query, location string) ([]SourceLink, error)
}

type service struct {
	repo       Repository
	summarizer *Summarizer
}

func NewService(repo Repository, summarizer *Summarizer) UseCase {
	return &service{repo: repo, summarizer: summarizer}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]Job, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return s.repo.Search(ctx, f)
}

func (s *service) Summarize(ctx context.Context, req SummaryRequest) (Summary, error) {
	req.JobID = strings.TrimSpace(req.JobID)
	req.Title = strings.TrimSpace(req.Title)
	if req.JobID == "" || req.Title == "" {
		return Summary{}, ErrValidation("jobId and title are required")
	}
	return s.summarizer.Summarize(ctx, req), nil
}

func (s *service) Links(query, location string) ([]SourceLink, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrValidation("query is required")
	}
	return SearchLinks(query, strings.TrimSpace(location)), nil
}

// ErrValidation is returned for malformed caller input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
