package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IngestedRecords counts records per ingestion stage: fetched, valid, inserted, duplicate.
	IngestedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgaar_ingest_records_total",
			Help: "Job records seen by the ingestion pipeline, by stage",
		},
		[]string{"stage"},
	)

	// SourceFailures counts adapter fetches that errored and were treated as empty.
	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgaar_source_failures_total",
			Help: "Failed fetches per job source",
		},
		[]string{"source"},
	)

	// AIFallbacks counts AI-assisted operations answered by their deterministic fallback.
	AIFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgaar_ai_fallbacks_total",
			Help: "AI operations that fell back to deterministic logic",
		},
		[]string{"operation"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rozgaar_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"kind"},
	)
)

// Handler exposes the default registry in Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
