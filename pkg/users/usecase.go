package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type UseCase interface {
	Ensure(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id uuid.UUID) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// Ensure creates the caller's profile on first sight and returns the stored row.
func (s *service) Ensure(ctx context.Context, u User) (User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullName = strings.TrimSpace(u.FullName)
	if err := s.repo.Ensure(ctx, u); err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx, u.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.Get(ctx, id)
}
