package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		raw  string
		want *Type
	}{
		{"Full Time", ptr(TypeFullTime)},
		{"full_time", ptr(TypeFullTime)},
		{"part-time", ptr(TypePartTime)},
		{"contractor", ptr(TypeContract)},
		{"Internship", ptr(TypeInternship)},
		{"remote", nil},
		{"permanent", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseType(tt.raw))
		})
	}
}

func TestPostingValid(t *testing.T) {
	assert.True(t, Posting{Title: "Go dev", SourceURL: "https://x/1"}.Valid())
	assert.False(t, Posting{Title: "Go dev"}.Valid())
	assert.False(t, Posting{Title: "  ", SourceURL: "https://x/1"}.Valid())
}

type mapCache struct {
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = val
	return nil
}

type countingModel struct {
	reply string
	err   error
	calls int
}

func (m *countingModel) Ask(context.Context, string, string) (string, error) {
	m.calls++
	return m.reply, m.err
}

var longDesc = strings.Repeat("Build and operate Go services on Postgres. ", 5)

func TestSummarizeShortDescriptionSkipsModel(t *testing.T) {
	m := &countingModel{}
	s := NewSummarizer(m, newMapCache())
	got := s.Summarize(context.Background(), SummaryRequest{JobID: "1", Title: "Go Developer", Company: "Acme", Description: "short"})
	assert.Equal(t, "Go Developer position at Acme", got.Summary)
	assert.Zero(t, m.calls)
}

func TestSummarizeCachesSuccess(t *testing.T) {
	m := &countingModel{reply: `{"summary":"Backend role","keyRequirements":["go"],"niceToHave":[],"highlights":["remote"]}`}
	cache := newMapCache()
	s := NewSummarizer(m, cache)
	req := SummaryRequest{JobID: "42", Title: "Go Developer", Description: longDesc}

	first := s.Summarize(context.Background(), req)
	second := s.Summarize(context.Background(), req)
	assert.Equal(t, "Backend role", first.Summary)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestSummarizeFallbackNotCached(t *testing.T) {
	m := &countingModel{err: errors.New("down")}
	cache := newMapCache()
	s := NewSummarizer(m, cache)
	got := s.Summarize(context.Background(), SummaryRequest{JobID: "7", Title: "SRE", Company: "Initech", Description: longDesc})
	assert.True(t, strings.HasPrefix(got.Summary, "SRE at Initech. Build and operate"))
	assert.True(t, strings.HasSuffix(got.Summary, "..."))
	assert.Empty(t, got.KeyRequirements)
	assert.Zero(t, cache.sets)
}

type fakeRepo struct {
	Repository
	lastFilter Filter
}

func (r *fakeRepo) Search(_ context.Context, f Filter) ([]Job, error) {
	r.lastFilter = f
	return nil, nil
}

func TestServiceValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, NewSummarizer(nil, newMapCache()))
	_, err := svc.Summarize(context.Background(), SummaryRequest{Title: "x"})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestServiceListDefaultsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)
	_, err := svc.List(context.Background(), Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastFilter.Limit)
}

func TestServiceLinks(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	_, err := svc.Links("  ", "pune")
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)

	links, err := svc.Links(" Go Developer ", " New Delhi ")
	require.NoError(t, err)
	assert.Equal(t, []SourceLink{
		{Source: "LinkedIn", URL: "https://www.linkedin.com/jobs/search/?keywords=Go+Developer&location=New+Delhi"},
		{Source: "Naukri", URL: "https://www.naukri.com/go-developer-jobs-in-new-delhi"},
		{Source: "Company Career Pages", URL: "https://www.google.com/search?q=Go+Developer+careers"},
	}, links)
}

func TestSearchLinksWithoutLocation(t *testing.T) {
	links := SearchLinks("c++ dev", "")
	require.Len(t, links, 3)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=c%2B%2B+dev&location=", links[0].URL)
	assert.Equal(t, "https://www.naukri.com/c++-dev-jobs", links[1].URL)
}

func ptr(t Type) *Type { return &t }
