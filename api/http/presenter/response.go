package presenter

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the body of the liveness and readiness endpoints.
type StatusResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Error: message})
}

// TooManyRequests writes a 429. Retry-After is set in whole seconds,
// rounded up, when retryAfter is positive.
func TooManyRequests(c *fiber.Ctx, message string, retryAfter time.Duration) error {
	if retryAfter > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}
