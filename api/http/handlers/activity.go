package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/security/jwt"
)

type ActivityHandler struct{ svc activity.UseCase }

func NewActivityHandler(svc activity.UseCase) *ActivityHandler { return &ActivityHandler{svc: svc} }

type activityRequest struct {
	Action   string         `json:"action"`
	Metadata map[string]any `json:"metadata"`
}

// Track records a client-side action.
// @Summary Track activity
// @Tags    user
// @Accept  json
// @Produce json
// @Param   input body activityRequest true "Action and optional metadata"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /activity [post]
func (h *ActivityHandler) Track(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req activityRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Action is required")
	}
	if err := h.svc.Track(c.Context(), u.ID, req.Action, req.Metadata); err != nil {
		return fail(c, err, "Failed to track activity")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}
