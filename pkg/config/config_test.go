package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "REDIS_URL", "ADZUNA_COUNTRY", "INGEST_QUERIES", "SOURCE_RPS", "INGEST_WORKERS", "CHAT_MODEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "in", cfg.AdzunaCountry)
	assert.Equal(t, 2.0, cfg.SourceRPS)
	assert.Equal(t, 4, cfg.IngestWorkers)
	assert.Equal(t, "meta/llama-3.1-8b-instruct", cfg.Chat.Model)
	assert.Equal(t, []string{"software developer"}, cfg.IngestQueries)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INGEST_QUERIES", "golang, react ,,")
	t.Setenv("INGEST_WORKERS", "nope")
	t.Setenv("SOURCE_RPS", "0.5")
	cfg := Load()
	assert.Equal(t, []string{"golang", "react"}, cfg.IngestQueries)
	assert.Equal(t, 4, cfg.IngestWorkers)
	assert.Equal(t, 0.5, cfg.SourceRPS)
}
