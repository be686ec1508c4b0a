package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozgaar/backend/pkg/jobs"
)

func serve(t *testing.T, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAdzunaFetch(t *testing.T) {
	srv := serve(t, `{"results":[{
		"title":"Go Engineer","description":"<p>Build <b>APIs</b></p>",
		"company":{"display_name":"Acme"},"location":{"display_name":"Bengaluru"},
		"redirect_url":"https://adzuna.example/1","created":"2026-10-01T10:00:00Z",
		"contract_time":"full_time"}]}`, func(r *http.Request) {
		assert.Equal(t, "/in/search/1", r.URL.Path)
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "golang dev", r.URL.Query().Get("what"))
	})

	a := NewAdzuna(NewClient(0), "id", "key", "")
	a.BaseURL = srv.URL
	got, err := a.Fetch(context.Background(), "golang dev")
	require.NoError(t, err)
	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, "Go Engineer", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "adzuna", p.Source)
	assert.Equal(t, "Build **APIs**", p.Description)
	require.NotNil(t, p.Type)
	assert.Equal(t, jobs.TypeFullTime, *p.Type)
	require.NotNil(t, p.PostedAt)
	assert.Equal(t, time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC), *p.PostedAt)
}

func TestAdzunaWithoutCredentials(t *testing.T) {
	called := false
	srv := serve(t, `{}`, func(*http.Request) { called = true })
	a := NewAdzuna(NewClient(0), "", "", "in")
	a.BaseURL = srv.URL
	got, err := a.Fetch(context.Background(), "go")
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestRemoteOKFetch(t *testing.T) {
	srv := serve(t, `[
		{"legal":"https://remoteok.com/legal"},
		{"position":"Senior Go Developer","company":"Acme","tags":["golang"],"location":"","date":"2026-02-10T12:00:00+00:00","url":"https://remoteok.com/1"},
		{"position":"","company":"Ghost","url":"https://remoteok.com/2"}
	]`, nil)
	r := NewRemoteOK(NewClient(0))
	r.URL = srv.URL
	got, err := r.Fetch(context.Background(), "ignored")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Remote", got[0].Location)
	assert.Nil(t, got[0].Type)
	assert.Equal(t, []string{"golang"}, got[0].Tags)
	assert.Equal(t, "remoteok", got[0].Source)
}

func TestRemotiveFetch(t *testing.T) {
	srv := serve(t, `{"jobs":[{"title":"Data Intern","company_name":"Beta","candidate_required_location":"",
		"description":"Learn SQL","job_type":"internship","tags":null,"url":"https://remotive.com/1",
		"publication_date":"2026-10-02T08:30:00"}]}`, func(r *http.Request) {
		assert.Equal(t, "data", r.URL.Query().Get("search"))
	})
	rm := NewRemotive(NewClient(0))
	rm.URL = srv.URL
	got, err := rm.Fetch(context.Background(), "data")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Remote", got[0].Location)
	require.NotNil(t, got[0].Type)
	assert.Equal(t, jobs.TypeInternship, *got[0].Type)
	assert.Equal(t, []string{}, got[0].Tags)
	require.NotNil(t, got[0].PostedAt)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()
	rm := NewRemotive(NewClient(0))
	rm.URL = srv.URL
	_, err := rm.Fetch(context.Background(), "x")
	assert.ErrorContains(t, err, "status 502")
}
