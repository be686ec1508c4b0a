package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/match"
	"github.com/rozgaar/backend/pkg/security/jwt"
)

type MatchHandler struct{ svc match.UseCase }

func NewMatchHandler(svc match.UseCase) *MatchHandler { return &MatchHandler{svc: svc} }

// Match ranks recent jobs against the caller's skills.
// @Summary Personal job matches
// @Tags    jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} match.Matches
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/match [get]
func (h *MatchHandler) Match(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	res, err := h.svc.Match(c.Context(), u.ID)
	if err != nil {
		return fail(c, err, "Failed to match jobs")
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// Recommendations scores jobs by keyword overlap with the given skills.
// @Summary Keyword recommendations
// @Tags    jobs
// @Produce json
// @Param   skills query string false "Skills joined with ' OR '"
// @Param   limit  query int    false "Maximum results" default(5)
// @Success 200 {object} map[string][]match.Recommendation
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /jobs/recommendations [get]
func (h *MatchHandler) Recommendations(c *fiber.Ctx) error {
	recs, err := h.svc.Recommend(c.Context(), match.ParseSkillQuery(c.Query("skills")), c.QueryInt("limit", 5))
	if err != nil {
		return fail(c, err, "Failed to fetch recommendations")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"jobs": recs})
}
