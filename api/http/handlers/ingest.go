package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/ingest"
)

type IngestHandler struct{ svc ingest.UseCase }

func NewIngestHandler(svc ingest.UseCase) *IngestHandler { return &IngestHandler{svc: svc} }

type ingestRequest struct {
	Query string `json:"query"`
}

// Ingest pulls fresh postings from every source for a query.
// @Summary Trigger ingestion
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body ingestRequest true "Search query sent to the sources"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/ingest [post]
func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	var req ingestRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	n, err := h.svc.Trigger(c.Context(), ingest.Request{
		Query:   req.Query,
		UserID:  optionalUserID(c),
		Address: clientAddress(c),
	})
	if err != nil {
		return fail(c, err, "Failed to ingest jobs")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "ingested": n})
}
