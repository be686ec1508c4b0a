package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/handlers"
)

// Handlers groups every resource handler served under /api/v1.
type Handlers struct {
	Health   *handlers.HealthHandler
	Jobs     *handlers.JobsHandler
	Search   *handlers.SearchHandler
	Match    *handlers.MatchHandler
	Ingest   *handlers.IngestHandler
	Skills   *handlers.SkillsHandler
	Chat     *handlers.ChatHandler
	Usage    *handlers.UsageHandler
	Activity *handlers.ActivityHandler
	Users    *handlers.UsersHandler
	Tips     *handlers.TipsHandler
}

// Register wires all HTTP routes onto given Fiber app. requireAuth rejects
// anonymous callers; optionalAuth only identifies them.
func Register(app *fiber.App, h Handlers, requireAuth, optionalAuth fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for orchestrators and monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	v1.Post("/auth/ensure-user", requireAuth, h.Users.EnsureUser)

	// Static job paths go before /jobs/:id.
	j := v1.Group("/jobs")
	j.Get("/", h.Jobs.List)
	j.Post("/", h.Jobs.Links)
	j.Get("/search", optionalAuth, h.Search.Search)
	j.Get("/match", requireAuth, h.Match.Match)
	j.Get("/recommendations", h.Match.Recommendations)
	j.Post("/summarize", h.Jobs.Summarize)
	j.Post("/ingest", optionalAuth, h.Ingest.Ingest)
	j.Get("/:id", optionalAuth, h.Jobs.Get)
	j.Post("/:id/feedback", requireAuth, h.Jobs.Feedback)

	u := v1.Group("/user", requireAuth)
	u.Get("/profile", h.Users.Profile)
	u.Get("/usage", h.Usage.Usage)
	u.Get("/skills", h.Skills.List)
	u.Post("/skills", h.Skills.Add)
	u.Delete("/skills", h.Skills.Remove)

	v1.Post("/skills/extract", requireAuth, h.Skills.Extract)
	v1.Post("/activity", requireAuth, h.Activity.Track)
	v1.Post("/chat", optionalAuth, h.Chat.Chat)
	v1.Get("/tips", h.Tips.Tips)
}
