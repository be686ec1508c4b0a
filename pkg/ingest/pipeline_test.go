package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/nlp"
	"github.com/rozgaar/backend/pkg/skills"
)

type fakeSource struct {
	name string
	recs []jobs.Posting
	err  error
}

func (s fakeSource) Name() string { return s.name }

func (s fakeSource) Fetch(context.Context, string) ([]jobs.Posting, error) {
	return s.recs, s.err
}

type fakeExtractor struct {
	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
	out      map[string][]string
}

func (e *fakeExtractor) Extract(_ context.Context, desc string) []string {
	e.calls.Add(1)
	n := e.inFlight.Add(1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	e.inFlight.Add(-1)
	return e.out[desc]
}

// store is an in-memory JobStore + SkillStore keyed like the database.
type store struct {
	mu       sync.Mutex
	jobs     map[string]jobs.Job
	skills   map[string]skills.Skill
	links    map[[2]uuid.UUID]struct{}
	failJobs bool
}

func newStore() *store {
	return &store{
		jobs:   map[string]jobs.Job{},
		skills: map[string]skills.Skill{},
		links:  map[[2]uuid.UUID]struct{}{},
	}
}

func (s *store) CreateIfAbsent(_ context.Context, p jobs.Posting) (jobs.Job, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failJobs {
		return jobs.Job{}, false, errors.New("db down")
	}
	if _, ok := s.jobs[p.SourceURL]; ok {
		return jobs.Job{}, false, nil
	}
	j := jobs.Job{ID: uuid.New(), Title: p.Title, SourceURL: p.SourceURL}
	s.jobs[p.SourceURL] = j
	return j, true, nil
}

func (s *store) GetOrCreate(_ context.Context, name string) (skills.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk, ok := s.skills[name]; ok {
		return sk, nil
	}
	sk := skills.Skill{ID: uuid.New(), Name: name}
	s.skills[name] = sk
	return sk, nil
}

func (s *store) AttachToJob(_ context.Context, jobID, skillID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[[2]uuid.UUID{jobID, skillID}] = struct{}{}
	return nil
}

func posting(n int, source string) jobs.Posting {
	return jobs.Posting{
		Title:       fmt.Sprintf("Job %d", n),
		Description: fmt.Sprintf("desc-%d", n),
		Source:      source,
		SourceURL:   fmt.Sprintf("https://%s.example/%d", source, n),
	}
}

func TestIngestEndToEnd(t *testing.T) {
	invalid := posting(2, "adzuna")
	invalid.SourceURL = ""
	sources := []Source{
		fakeSource{name: "adzuna", recs: []jobs.Posting{posting(1, "adzuna"), invalid}},
		fakeSource{name: "remoteok", err: errors.New("503")},
		fakeSource{name: "remotive", recs: []jobs.Posting{posting(3, "remotive")}},
	}
	ex := &fakeExtractor{out: map[string][]string{
		"desc-1": {"Go", "go ", "Docker"},
		"desc-3": {"docker", "Kubernetes"},
	}}
	st := newStore()

	n, err := New(sources, ex, st, st).Ingest(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.EqualValues(t, 2, ex.calls.Load())
	assert.Len(t, st.jobs, 2)
	assert.NotContains(t, st.jobs, "")
	// "Go"/"go " and "Docker"/"docker" collapse to one vocabulary row each.
	assert.Len(t, st.skills, 3)
	assert.Len(t, st.links, 4)
}

func TestIngestIsIdempotent(t *testing.T) {
	sources := []Source{fakeSource{name: "a", recs: []jobs.Posting{posting(1, "a"), posting(2, "a")}}}
	st := newStore()
	p := New(sources, &fakeExtractor{}, st, st)

	first, err := p.Ingest(context.Background(), "q")
	require.NoError(t, err)
	second, err := p.Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 2, first)
	assert.Equal(t, 0, second)
	assert.Len(t, st.jobs, 2)
}

func TestIngestCapsRecordsInSourceOrder(t *testing.T) {
	var a, b []jobs.Posting
	for i := 0; i < 4; i++ {
		a = append(a, posting(i, "a"))
		b = append(b, posting(i, "b"))
	}
	st := newStore()
	n, err := New([]Source{fakeSource{name: "a", recs: a}, fakeSource{name: "b", recs: b}},
		&fakeExtractor{}, st, st, WithMaxRecords(5)).Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for i := 0; i < 4; i++ {
		assert.Contains(t, st.jobs, posting(i, "a").SourceURL)
	}
	assert.Contains(t, st.jobs, posting(0, "b").SourceURL)
	assert.NotContains(t, st.jobs, posting(1, "b").SourceURL)
}

func TestIngestBoundsExtractionConcurrency(t *testing.T) {
	var recs []jobs.Posting
	for i := 0; i < 30; i++ {
		recs = append(recs, posting(i, "a"))
	}
	ex := &fakeExtractor{}
	st := newStore()
	_, err := New([]Source{fakeSource{name: "a", recs: recs}}, ex, st, st, WithWorkers(3)).Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.LessOrEqual(t, ex.peak.Load(), int32(3))
	assert.EqualValues(t, 30, ex.calls.Load())
}

func TestIngestPersistenceErrorPropagates(t *testing.T) {
	st := newStore()
	st.failJobs = true
	_, err := New([]Source{fakeSource{name: "a", recs: []jobs.Posting{posting(1, "a")}}},
		&fakeExtractor{}, st, st).Ingest(context.Background(), "q")
	assert.ErrorContains(t, err, "db down")
}

func TestIngestAllSourcesFailing(t *testing.T) {
	st := newStore()
	n, err := New([]Source{
		fakeSource{name: "a", err: errors.New("x")},
		fakeSource{name: "b", err: errors.New("y")},
	}, &fakeExtractor{}, st, st).Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.Zero(t, n)
}

type panickingSource struct{}

func (panickingSource) Name() string { return "broken" }

func (panickingSource) Fetch(context.Context, string) ([]jobs.Posting, error) {
	panic("nil response body")
}

func TestIngestSurvivesPanickingSource(t *testing.T) {
	st := newStore()
	n, err := New([]Source{
		panickingSource{},
		fakeSource{name: "a", recs: []jobs.Posting{posting(1, "a")}},
	}, &fakeExtractor{}, st, st).Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, st.jobs, posting(1, "a").SourceURL)
}

func TestIngestSkipsUntitledRecords(t *testing.T) {
	untitled := posting(2, "a")
	untitled.Title = "   "
	ex := &fakeExtractor{}
	st := newStore()
	n, err := New([]Source{fakeSource{name: "a", recs: []jobs.Posting{posting(1, "a"), untitled}}},
		ex, st, st).Ingest(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, st.jobs, untitled.SourceURL)
	assert.EqualValues(t, 1, ex.calls.Load())
}

func TestSkillNamesNormalizeToOneRow(t *testing.T) {
	st := newStore()
	for _, n := range []string{"Python", "python", " PYTHON "} {
		_, err := st.GetOrCreate(context.Background(), nlp.NormalizeSkill(n))
		require.NoError(t, err)
	}
	assert.Len(t, st.skills, 1)
}
