package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/users"
)

const localUser = "user"

var errNoToken = errors.New("missing Authorization header")

// NewAuthMiddleware returns a Fiber middleware that requires a valid Bearer
// JWT (HS256). On success the caller is available through UserFrom.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	parse := newParser(secret, expectedIssuer)
	return func(c *fiber.Ctx) error {
		u, err := parse(c.Get("Authorization"))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		c.Locals(localUser, u)
		c.Locals("userId", u.ID)
		return c.Next()
	}
}

// NewOptionalMiddleware identifies the caller when a valid token is sent and
// lets the request through anonymously otherwise.
func NewOptionalMiddleware(secret, expectedIssuer string) fiber.Handler {
	parse := newParser(secret, expectedIssuer)
	return func(c *fiber.Ctx) error {
		if u, err := parse(c.Get("Authorization")); err == nil {
			c.Locals(localUser, u)
			c.Locals("userId", u.ID)
		}
		return c.Next()
	}
}

// UserFrom returns the authenticated caller, if any.
func UserFrom(c *fiber.Ctx) (users.User, bool) {
	u, ok := c.Locals(localUser).(users.User)
	return u, ok
}

func newParser(secret, expectedIssuer string) func(header string) (users.User, error) {
	secretBytes := []byte(secret)
	return func(header string) (users.User, error) {
		tokenStr := bearer(header)
		if tokenStr == "" {
			return users.User{}, errNoToken
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return users.User{}, errors.New("invalid or expired token")
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return users.User{}, errors.New("invalid token claims")
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return users.User{}, errors.New("invalid token issuer")
		}
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return users.User{}, errors.New("invalid token subject")
		}
		return users.User{ID: id, Email: claims.Email, FullName: displayName(claims)}, nil
	}
}

// bearer accepts both "Bearer <token>" and a bare token.
func bearer(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

func displayName(c *Claims) string {
	switch {
	case c.UserMetadata.FullName != "":
		return c.UserMetadata.FullName
	case c.UserMetadata.Name != "":
		return c.UserMetadata.Name
	case c.Email != "":
		return c.Email
	}
	return "User"
}
