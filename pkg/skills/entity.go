package skills

import (
	"context"

	"github.com/google/uuid"
)

// Skill is a vocabulary entry. Names are stored normalized and are unique.
type Skill struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserSkill is a skill on a user's profile with a 1–5 proficiency.
type UserSkill struct {
	SkillID     uuid.UUID `json:"skillId"`
	Name        string    `json:"skillName"`
	Proficiency int       `json:"proficiency"`
}

const (
	MinProficiency     = 1
	MaxProficiency     = 5
	DefaultProficiency = 3
)

// Repository is the port for the skill vocabulary and its associations.
type Repository interface {
	// GetOrCreate returns the skill with the given normalized name, creating it on first use.
	GetOrCreate(ctx context.Context, name string) (Skill, error)
	// AttachToJob links a skill to a job; repeating the link is a no-op.
	AttachToJob(ctx context.Context, jobID, skillID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	// UpsertForUser adds the skill or updates its proficiency.
	UpsertForUser(ctx context.Context, userID, skillID uuid.UUID, proficiency int) error
	RemoveForUser(ctx context.Context, userID, skillID uuid.UUID) error
}

// ErrValidation is returned for malformed caller input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
