// Package activity records what users do and how they rate job relevance.
package activity

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Known actions. Callers may record others.
const (
	ActionJobView     = "job_view"
	ActionChatMessage = "chat_message"
	ActionSearch      = "search"
)

type Event struct {
	UserID   uuid.UUID
	Action   string
	Metadata map[string]any
}

type Feedback struct {
	UserID   uuid.UUID
	JobID    uuid.UUID
	Relevant bool
}

type Repository interface {
	Insert(ctx context.Context, e Event) error
	// UpsertFeedback keeps one verdict per user and job; the last one wins.
	UpsertFeedback(ctx context.Context, f Feedback) error
}

type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type UseCase interface {
	Track(ctx context.Context, userID uuid.UUID, action string, metadata map[string]any) error
	SaveFeedback(ctx context.Context, userID, jobID uuid.UUID, relevant bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Track(ctx context.Context, userID uuid.UUID, action string, metadata map[string]any) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrValidation("action is required")
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return s.repo.Insert(ctx, Event{UserID: userID, Action: action, Metadata: metadata})
}

func (s *service) SaveFeedback(ctx context.Context, userID, jobID uuid.UUID, relevant bool) error {
	if jobID == uuid.Nil {
		return ErrValidation("job id is required")
	}
	return s.repo.UpsertFeedback(ctx, Feedback{UserID: userID, JobID: jobID, Relevant: relevant})
}
