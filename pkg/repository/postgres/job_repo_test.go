package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rozgaar/backend/pkg/jobs"
)

func TestSearchClause(t *testing.T) {
	where, args := searchClause(jobs.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	ft := jobs.TypeFullTime
	where, args = searchClause(jobs.Filter{
		Keywords: []string{"react", " ", "50%_off"},
		Type:     &ft,
		Location: "Bangalore",
		Remote:   true,
	})
	assert.Equal(t, " WHERE (j.title ILIKE $1 OR j.description ILIKE $1 OR j.company ILIKE $1"+
		" OR j.title ILIKE $2 OR j.description ILIKE $2 OR j.company ILIKE $2)"+
		" AND j.job_type = CAST($3::text AS job_type)"+
		" AND j.location ILIKE $4"+
		" AND (j.location ILIKE '%remote%' OR j.source IN ('remoteok', 'remotive'))", where)
	assert.Equal(t, []any{"%react%", `%50\%\_off%`, "full-time", "%Bangalore%"}, args)
}

func TestSearchClauseText(t *testing.T) {
	where, args := searchClause(jobs.Filter{Text: "acme"})
	assert.Equal(t, " WHERE (j.title ILIKE $1 OR j.company ILIKE $1 OR j.location ILIKE $1)", where)
	assert.Equal(t, []any{"%acme%"}, args)
}
