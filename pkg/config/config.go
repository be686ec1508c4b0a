package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LLM addresses one OpenAI-compatible completion endpoint.
type LLM struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
}

type Config struct {
	Port        string
	DatabaseURL string
	// RedisURL is optional; without it rate-limit windows and caches live in process memory.
	RedisURL  string
	JWTSecret string
	JWTIssuer string

	// Extraction serves skill extraction, search parsing, matching and summaries.
	Extraction LLM
	Chat       LLM

	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	SourceRPS     float64

	// IngestSchedule is a cron spec; empty disables scheduled ingestion.
	IngestSchedule   string
	IngestQueries    []string
	IngestMaxRecords int
	IngestWorkers    int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		Extraction: LLM{
			APIKey:   os.Getenv("OPENROUTER_API_KEY"),
			BaseURL:  getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:    getEnv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct"),
			AppTitle: getEnv("OPENROUTER_APP_TITLE", "rozgaar"),
			Referer:  os.Getenv("OPENROUTER_REFERER"),
		},
		Chat: LLM{
			APIKey:  os.Getenv("CHAT_API_KEY"),
			BaseURL: getEnv("CHAT_BASE_URL", "https://integrate.api.nvidia.com/v1"),
			Model:   getEnv("CHAT_MODEL", "meta/llama-3.1-8b-instruct"),
		},
		AdzunaAppID:      os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:     os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:    getEnv("ADZUNA_COUNTRY", "in"),
		SourceRPS:        getEnvFloat("SOURCE_RPS", 2),
		IngestSchedule:   os.Getenv("INGEST_SCHEDULE"),
		IngestQueries:    getEnvList("INGEST_QUERIES", []string{"software developer"}),
		IngestMaxRecords: getEnvInt("INGEST_MAX_RECORDS", 50),
		IngestWorkers:    getEnvInt("INGEST_WORKERS", 4),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getEnvList splits a comma-separated value, dropping blank items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
