package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rows map[uuid.UUID]User
}

func (r *memRepo) Ensure(_ context.Context, u User) error {
	if _, ok := r.rows[u.ID]; ok {
		return nil
	}
	u.CreatedAt = time.Now().UTC()
	r.rows[u.ID] = u
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (User, error) {
	u, ok := r.rows[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func TestEnsureIsIdempotent(t *testing.T) {
	repo := &memRepo{rows: map[uuid.UUID]User{}}
	svc := NewService(repo)
	id := uuid.New()

	first, err := svc.Ensure(context.Background(), User{ID: id, Email: " Asha@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", first.Email)

	second, err := svc.Ensure(context.Background(), User{ID: id, Email: "other@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.rows, 1)
}
