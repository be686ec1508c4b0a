package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozgaar/backend/pkg/jobs"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (m *stubModel) Ask(context.Context, string, string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func TestParseEmptyQuery(t *testing.T) {
	m := &stubModel{}
	got := NewParser(m).Parse(context.Background(), "   ")
	assert.Equal(t, Filters{Keywords: []string{}}, got)
	assert.Zero(t, m.calls)
}

func TestParseWithModel(t *testing.T) {
	m := &stubModel{reply: "```json\n" + `{"keywords":["frontend","developer"],"jobType":"full-time","location":"Bangalore","skills":null,"remote":false}` + "\n```"}
	got := NewParser(m).Parse(context.Background(), "full-time frontend developer in Bangalore")
	require.NotNil(t, got.JobType)
	assert.Equal(t, jobs.TypeFullTime, *got.JobType)
	assert.Equal(t, []string{"frontend", "developer"}, got.Keywords)
	assert.Equal(t, "Bangalore", got.Location)
	assert.False(t, got.Remote)
	assert.Equal(t, "frontend, developer • full time • in Bangalore", Describe(got))
}

func TestParseRemoteJobTypeBecomesFlag(t *testing.T) {
	m := &stubModel{reply: `{"keywords":["react"],"jobType":"remote","location":null,"remote":false}`}
	got := NewParser(m).Parse(context.Background(), "remote react jobs")
	assert.Nil(t, got.JobType)
	assert.True(t, got.Remote)
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		query  string
		want   []string
		remote bool
	}{
		{"Remote React jobs in NY", []string{"remote", "react", "jobs"}, true},
		{"go dev WFH", []string{"dev", "wfh"}, true},
		{"java work from home", []string{"java", "work", "from", "home"}, true},
		{"UI UX", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := NewParser(&stubModel{err: errors.New("down")}).Parse(context.Background(), tt.query)
			assert.Equal(t, tt.want, got.Keywords)
			assert.Equal(t, tt.remote, got.Remote)
		})
	}
}

func TestDescribeEmpty(t *testing.T) {
	assert.Equal(t, "all jobs", Describe(Filters{}))
}

type fakeJobs struct{ last jobs.Filter }

func (f *fakeJobs) Search(_ context.Context, fl jobs.Filter) ([]jobs.Job, error) {
	f.last = fl
	return []jobs.Job{{Title: "x"}}, nil
}

func TestServicePlainSearch(t *testing.T) {
	fj := &fakeJobs{}
	res, err := NewService(NewParser(nil), fj).Search(context.Background(), " golang ", false)
	require.NoError(t, err)
	assert.Equal(t, "golang", fj.last.Text)
	assert.Nil(t, res.Filters)
	assert.Len(t, res.Jobs, 1)
}

func TestServiceSmartSearch(t *testing.T) {
	fj := &fakeJobs{}
	res, err := NewService(NewParser(nil), fj).Search(context.Background(), "remote golang roles", true)
	require.NoError(t, err)
	assert.Empty(t, fj.last.Text)
	assert.Equal(t, []string{"remote", "golang", "roles"}, fj.last.Keywords)
	assert.True(t, fj.last.Remote)
	assert.Equal(t, "remote, golang, roles • remote", res.Description)
}

func TestServiceEmptyQuery(t *testing.T) {
	fj := &fakeJobs{}
	res, err := NewService(NewParser(nil), fj).Search(context.Background(), "", true)
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	assert.Equal(t, jobs.Filter{}, fj.last)
}
