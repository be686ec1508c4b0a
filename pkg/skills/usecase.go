package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/nlp"
	"github.com/rozgaar/backend/pkg/resume"
	"github.com/rozgaar/backend/pkg/users"
)

const (
	MaxResumeBytes  = 2 << 20
	maxResumeChars  = 12000
	maxResumeSkills = 30
)

// Profiles creates the user row that user skills reference.
type Profiles interface {
	Ensure(ctx context.Context, u users.User) error
}

type UseCase interface {
	List(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	// Add puts a skill on the profile; proficiency 0 means the default.
	Add(ctx context.Context, user users.User, name string, proficiency int) (UserSkill, error)
	Remove(ctx context.Context, userID, skillID uuid.UUID) error
	// ExtractFromResume parses an uploaded resume and adds every skill found at
	// the default proficiency. It returns the skill names as extracted.
	ExtractFromResume(ctx context.Context, user users.User, filename string, data []byte) ([]string, error)
}

type service struct {
	repo      Repository
	profiles  Profiles
	extractor *Extractor
}

func NewService(repo Repository, profiles Profiles, extractor *Extractor) UseCase {
	return &service{repo: repo, profiles: profiles, extractor: extractor}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) Add(ctx context.Context, user users.User, name string, proficiency int) (UserSkill, error) {
	name = nlp.NormalizeSkill(name)
	if name == "" {
		return UserSkill{}, ErrValidation("skill name is required")
	}
	if proficiency == 0 {
		proficiency = DefaultProficiency
	}
	if proficiency < MinProficiency || proficiency > MaxProficiency {
		return UserSkill{}, ErrValidation(fmt.Sprintf("proficiency must be between %d and %d", MinProficiency, MaxProficiency))
	}
	if err := s.profiles.Ensure(ctx, user); err != nil {
		return UserSkill{}, fmt.Errorf("ensure user: %w", err)
	}
	sk, err := s.repo.GetOrCreate(ctx, name)
	if err != nil {
		return UserSkill{}, err
	}
	if err := s.repo.UpsertForUser(ctx, user.ID, sk.ID, proficiency); err != nil {
		return UserSkill{}, err
	}
	return UserSkill{SkillID: sk.ID, Name: sk.Name, Proficiency: proficiency}, nil
}

func (s *service) Remove(ctx context.Context, userID, skillID uuid.UUID) error {
	return s.repo.RemoveForUser(ctx, userID, skillID)
}

func (s *service) ExtractFromResume(ctx context.Context, user users.User, filename string, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, ErrValidation("resume file is required")
	}
	if len(data) > MaxResumeBytes {
		return nil, ErrValidation("file too large (max 2MB)")
	}
	text, err := resume.ParseText(filename, data)
	if err != nil {
		return nil, ErrValidation(err.Error())
	}
	text = nlp.Truncate(text, maxResumeChars)
	if text == "" {
		return []string{}, nil
	}

	found := dedupeFold(s.extractor.FromResume(ctx, text), maxResumeSkills)
	if len(found) == 0 {
		return found, nil
	}
	if err := s.profiles.Ensure(ctx, user); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	for _, name := range found {
		sk, err := s.repo.GetOrCreate(ctx, nlp.NormalizeSkill(name))
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpsertForUser(ctx, user.ID, sk.ID, DefaultProficiency); err != nil {
			return nil, err
		}
	}
	return found, nil
}

// dedupeFold keeps the first spelling of each case-insensitive name, up to max entries.
func dedupeFold(names []string, max int) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := nlp.NormalizeSkill(n)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
		if len(out) >= max {
			break
		}
	}
	return out
}
