package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/ratelimit"
	"github.com/rozgaar/backend/pkg/security/jwt"
)

type UsageReader interface {
	Usage(ctx context.Context, userID uuid.UUID) (ratelimit.Usage, error)
}

type UsageHandler struct{ limiter UsageReader }

func NewUsageHandler(l UsageReader) *UsageHandler { return &UsageHandler{limiter: l} }

// Usage reports the caller's consumption of the daily quotas.
// @Summary Quota usage
// @Tags    user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ratelimit.Usage
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /user/usage [get]
func (h *UsageHandler) Usage(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	usage, err := h.limiter.Usage(c.Context(), u.ID)
	if err != nil {
		return fail(c, err, "Failed to fetch usage stats")
	}
	return presenter.JSON(c, http.StatusOK, usage)
}
