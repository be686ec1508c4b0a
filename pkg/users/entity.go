package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// User is the local profile row of an account owned by the external auth
// provider. It exists so user-scoped tables have something to reference.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	// Ensure inserts the profile unless a row with the same id exists.
	Ensure(ctx context.Context, u User) error
	Get(ctx context.Context, id uuid.UUID) (User, error)
}
