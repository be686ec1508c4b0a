package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/search"
	"github.com/rozgaar/backend/pkg/security/jwt"
)

type SearchHandler struct {
	svc      search.UseCase
	activity activity.UseCase
}

func NewSearchHandler(svc search.UseCase, act activity.UseCase) *SearchHandler {
	return &SearchHandler{svc: svc, activity: act}
}

// Search runs a plain text search, or a smart search when smart=true.
// @Summary Search jobs
// @Tags    jobs
// @Produce json
// @Param   q     query string false "Search text"
// @Param   smart query bool   false "Parse the query into structured filters"
// @Success 200 {object} search.Result
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	res, err := h.svc.Search(c.Context(), c.Query("q"), c.QueryBool("smart"))
	if err != nil {
		return fail(c, err, "Search failed")
	}
	if u, ok := jwt.UserFrom(c); ok && res.Query != "" {
		meta := map[string]any{"query": res.Query, "smart": res.Smart, "results": len(res.Jobs)}
		if err := h.activity.Track(c.Context(), u.ID, activity.ActionSearch, meta); err != nil {
			slog.Warn("track search failed", slog.Any("err", err))
		}
	}
	return presenter.JSON(c, http.StatusOK, res)
}
