package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/chat"
	"github.com/rozgaar/backend/pkg/ingest"
	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/ratelimit"
	"github.com/rozgaar/backend/pkg/security/jwt"
	"github.com/rozgaar/backend/pkg/skills"
	"github.com/rozgaar/backend/pkg/users"
)

// fail maps a use case error onto a response. Unknown errors are logged
// and reported as a generic 500 with the given message.
func fail(c *fiber.Ctx, err error, internal string) error {
	var limit *ratelimit.LimitError
	switch {
	case errors.As(err, &limit):
		return presenter.TooManyRequests(c, limit.Message, limit.RetryAfter)
	case isValidation(err):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, jobs.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Job not found")
	case errors.Is(err, users.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "User not found")
	}
	slog.Error(internal, slog.String("path", c.Path()), slog.Any("err", err))
	return presenter.Error(c, http.StatusInternalServerError, internal)
}

func isValidation(err error) bool {
	var (
		j jobs.ErrValidation
		s skills.ErrValidation
		c chat.ErrValidation
		a activity.ErrValidation
		i ingest.ErrValidation
	)
	return errors.As(err, &j) || errors.As(err, &s) || errors.As(err, &c) ||
		errors.As(err, &a) || errors.As(err, &i)
}

func unauthorized(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "Unauthorized")
}

// optionalUserID is the caller's id, or nil for anonymous requests.
func optionalUserID(c *fiber.Ctx) *uuid.UUID {
	if u, ok := jwt.UserFrom(c); ok {
		return &u.ID
	}
	return nil
}

// clientAddress prefers proxy headers over the socket address.
func clientAddress(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
