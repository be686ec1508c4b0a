package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/tips"
)

type TipsHandler struct{ svc tips.UseCase }

func NewTipsHandler(svc tips.UseCase) *TipsHandler { return &TipsHandler{svc: svc} }

// Tips returns today's career or skill tips.
// @Summary Daily tips
// @Tags    tips
// @Produce json
// @Param   category query string false "job or skill" default(job)
// @Success 200 {object} map[string][]string
// @Router  /tips [get]
func (h *TipsHandler) Tips(c *fiber.Ctx) error {
	category := tips.ParseCategory(c.Query("category"))
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"category": category,
		"tips":     h.svc.Today(c.Context(), category),
	})
}
