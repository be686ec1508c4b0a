package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/security/jwt"
	"github.com/rozgaar/backend/pkg/users"
)

type UsersHandler struct{ svc users.UseCase }

func NewUsersHandler(svc users.UseCase) *UsersHandler { return &UsersHandler{svc: svc} }

// EnsureUser creates the caller's profile row on first sign-in.
// @Summary Ensure profile
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/ensure-user [post]
func (h *UsersHandler) EnsureUser(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if _, err := h.svc.Ensure(c.Context(), u); err != nil {
		return fail(c, err, "Failed to ensure user")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}

// Profile returns the caller's stored profile, or the token's claims when
// no row exists yet.
// @Summary My profile
// @Tags    user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /user/profile [get]
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	stored, err := h.svc.Get(c.Context(), u.ID)
	switch {
	case err == nil:
		u = stored
	case !errors.Is(err, users.ErrNotFound):
		return fail(c, err, "Failed to fetch profile")
	}
	name := u.FullName
	if name == "" {
		name = u.Email
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"name": name, "email": u.Email})
}
