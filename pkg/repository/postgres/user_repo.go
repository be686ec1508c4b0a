package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rozgaar/backend/pkg/users"
)

// UserRepository implements users.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Ensure(ctx context.Context, u users.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		ON CONFLICT DO NOTHING
	`, u.ID, strings.ToLower(u.Email), u.FullName)
	return err
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (users.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, COALESCE(email, ''), COALESCE(full_name, ''), created_at
		FROM users WHERE id = $1
	`, id)
	var u users.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
