package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/skills"
)

type countingModel struct {
	reply string
	err   error
	calls int
}

func (m *countingModel) Ask(context.Context, string, string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func TestScoreWithoutUserSkills(t *testing.T) {
	m := &countingModel{}
	got := NewScorer(m).Score(context.Background(), nil, []string{"go", "sql"}, "desc")
	assert.Equal(t, Compatibility{Score: 0, MatchingSkills: []string{}, MissingSkills: []string{"go", "sql"}}, got)
	assert.Zero(t, m.calls)
}

func TestScoreUnknownJobIsNeutral(t *testing.T) {
	m := &countingModel{}
	got := NewScorer(m).Score(context.Background(), []string{"go"}, nil, "  ")
	assert.Equal(t, Compatibility{Score: 50, MatchingSkills: []string{}, MissingSkills: []string{}}, got)
	assert.Zero(t, m.calls)
}

func TestScoreUsesModelAndClamps(t *testing.T) {
	m := &countingModel{reply: "```json\n{\"score\": 140, \"matchingSkills\": [\"go\"], \"missingSkills\": []}\n```"}
	got := NewScorer(m).Score(context.Background(), []string{"go"}, []string{"golang"}, "")
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, []string{"go"}, got.MatchingSkills)
	assert.Equal(t, 1, m.calls)

	m.reply = `{"score": -3}`
	got = NewScorer(m).Score(context.Background(), []string{"go"}, []string{"golang"}, "")
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, []string{}, got.MissingSkills)
}

func TestScoreFallsBackToHeuristic(t *testing.T) {
	for _, m := range []*countingModel{{err: errors.New("down")}, {reply: "not json"}} {
		got := NewScorer(m).Score(context.Background(), []string{"python"}, []string{"Python", "Django"}, "")
		assert.Equal(t, 50, got.Score)
		assert.Equal(t, []string{"python"}, got.MatchingSkills)
		assert.Equal(t, []string{"Django"}, got.MissingSkills)
		assert.Equal(t, 1, m.calls)
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name      string
		user, job []string
		want      Compatibility
	}{
		{"substring both ways", []string{"react", "javascript"}, []string{"ReactJS", "Java"},
			Compatibility{Score: 100, MatchingSkills: []string{"react", "javascript"}, MissingSkills: []string{}}},
		{"no job skills", []string{"go"}, nil,
			Compatibility{Score: 0, MatchingSkills: []string{}, MissingSkills: []string{}}},
		{"one of three", []string{"sql"}, []string{"PostgreSQL", "Go", "Kafka"},
			Compatibility{Score: 33, MatchingSkills: []string{"sql"}, MissingSkills: []string{"Go", "Kafka"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic(tt.user, tt.job))
		})
	}
}

func TestReason(t *testing.T) {
	m := []string{"a", "b", "c", "d", "e", "f"}
	assert.Equal(t, "No matching skills found", Reason(nil, 0))
	assert.Equal(t, "Limited match (a, b)", Reason(m, 29))
	assert.Equal(t, "Partial match with a, b, c", Reason(m, 30))
	assert.Equal(t, "Good match! You have a, b, c, d", Reason(m, 79))
	assert.Equal(t, "Excellent match! Strong skills in a, b, c, d, e", Reason(m, 80))
}

func TestRankIsStable(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	in := []Result{
		{JobID: ids[0], Compatibility: Compatibility{Score: 40}},
		{JobID: ids[1], Compatibility: Compatibility{Score: 90}},
		{JobID: ids[2], Compatibility: Compatibility{Score: 40}},
		{JobID: ids[3], Compatibility: Compatibility{Score: 10}},
	}
	out := Rank(in)
	assert.Equal(t, []uuid.UUID{ids[1], ids[0], ids[2], ids[3]},
		[]uuid.UUID{out[0].JobID, out[1].JobID, out[2].JobID, out[3].JobID})
}

func TestRecommend(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	old := jobs.Job{Title: "React Developer", Description: "react and node", CreatedAt: now.Add(-60 * 24 * time.Hour)}
	fresh := jobs.Job{Title: "Frontend", Description: "We use React", CreatedAt: now.Add(-24 * time.Hour)}
	month := jobs.Job{Title: "Node engineer", Description: "", CreatedAt: now.Add(-10 * 24 * time.Hour)}
	heavy := jobs.Job{Title: "react node go", Description: "react node go", CreatedAt: now}

	got := Recommend([]jobs.Job{old, fresh, month, heavy}, []string{"react", "node", "go"}, 3, now)
	require.Len(t, got, 3)
	assert.Equal(t, 99, got[0].MatchScore)
	assert.Equal(t, "React Developer", got[1].Title)
	assert.Equal(t, 60, got[1].MatchScore)
	assert.Equal(t, "Node engineer", got[2].Title)
	assert.Equal(t, 35, got[2].MatchScore)
}

func TestParseSkillQuery(t *testing.T) {
	assert.Equal(t, []string{"react", "node js"}, ParseSkillQuery(" react OR node js OR "))
	assert.Nil(t, ParseSkillQuery(""))
}

type fakeSkills struct{ names []string }

func (f fakeSkills) ListForUser(context.Context, uuid.UUID) ([]skills.UserSkill, error) {
	out := make([]skills.UserSkill, 0, len(f.names))
	for _, n := range f.names {
		out = append(out, skills.UserSkill{Name: n, Proficiency: 3})
	}
	return out, nil
}

type fakeJobs struct {
	recent     []jobs.Job
	lastFilter jobs.Filter
}

func (f *fakeJobs) Recent(context.Context, int) ([]jobs.Job, error) { return f.recent, nil }

func (f *fakeJobs) Search(_ context.Context, fl jobs.Filter) ([]jobs.Job, error) {
	f.lastFilter = fl
	return f.recent, nil
}

func TestServiceMatchFiltersAndRanks(t *testing.T) {
	fj := &fakeJobs{recent: []jobs.Job{
		{ID: uuid.New(), Title: "weak", Skills: []string{"go", "kafka", "k8s", "sql", "aws"}},
		{ID: uuid.New(), Title: "strong", Skills: []string{"python", "django"}},
		{ID: uuid.New(), Title: "none", Skills: []string{"rust"}},
	}}
	m := &countingModel{err: errors.New("offline")}
	svc := NewService(NewScorer(m), fakeSkills{names: []string{"python", "django", "go"}}, fj)

	got, err := svc.Match(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalAnalyzed)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "strong", got.Matches[0].Title)
	assert.Equal(t, 100, got.Matches[0].Compatibility.Score)
	assert.Equal(t, "Excellent match! Strong skills in python, django, go", got.Matches[0].Compatibility.Reason)
}

func TestServiceMatchWithoutSkills(t *testing.T) {
	svc := NewService(NewScorer(nil), fakeSkills{}, &fakeJobs{})
	got, err := svc.Match(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, got.Message)
	assert.Empty(t, got.Matches)
}

func TestServiceRecommendSearchesByKeywords(t *testing.T) {
	fj := &fakeJobs{}
	svc := NewService(NewScorer(nil), fakeSkills{}, fj)
	_, err := svc.Recommend(context.Background(), []string{"react"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, fj.lastFilter.Keywords)
	assert.Equal(t, 10, fj.lastFilter.Limit)
}
