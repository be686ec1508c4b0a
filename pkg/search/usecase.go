package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rozgaar/backend/pkg/jobs"
)

const resultLimit = 50

type JobSearcher interface {
	Search(ctx context.Context, f jobs.Filter) ([]jobs.Job, error)
}

type Result struct {
	Jobs        []jobs.Job `json:"jobs"`
	Smart       bool       `json:"smart"`
	Query       string     `json:"query"`
	Filters     *Filters   `json:"filters,omitempty"`
	Description string     `json:"description,omitempty"`
}

type UseCase interface {
	Search(ctx context.Context, query string, smart bool) (Result, error)
}

type service struct {
	parser *Parser
	jobs   JobSearcher
}

func NewService(parser *Parser, js JobSearcher) UseCase {
	return &service{parser: parser, jobs: js}
}

func (s *service) Search(ctx context.Context, query string, smart bool) (Result, error) {
	query = strings.TrimSpace(query)
	res := Result{Jobs: []jobs.Job{}, Smart: smart, Query: query}
	if query == "" {
		return res, nil
	}

	f := jobs.Filter{Text: query, Limit: resultLimit}
	if smart {
		parsed := s.parser.Parse(ctx, query)
		res.Filters = &parsed
		res.Description = Describe(parsed)
		f = jobs.Filter{
			Keywords: parsed.Keywords,
			Type:     parsed.JobType,
			Location: parsed.Location,
			Remote:   parsed.Remote,
			Limit:    resultLimit,
		}
		slog.Info("smart search", slog.String("query", query), slog.String("parsed", res.Description))
	}

	found, err := s.jobs.Search(ctx, f)
	if err != nil {
		return Result{}, err
	}
	if found != nil {
		res.Jobs = found
	}
	return res, nil
}
