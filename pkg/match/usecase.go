package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/skills"
	"github.com/rozgaar/backend/pkg/worker"
)

const (
	candidatePool  = 100
	minShownScore  = 20
	scoreWorkers   = 8
	defaultRecoMax = 5
)

type SkillLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]skills.UserSkill, error)
}

type JobLister interface {
	Recent(ctx context.Context, limit int) ([]jobs.Job, error)
	Search(ctx context.Context, f jobs.Filter) ([]jobs.Job, error)
}

type Ranked struct {
	jobs.Job
	Compatibility RankedCompatibility `json:"compatibility"`
}

type RankedCompatibility struct {
	Compatibility
	Reason string `json:"reason"`
}

type Matches struct {
	Message       string   `json:"message,omitempty"`
	UserSkills    []string `json:"userSkills"`
	Matches       []Ranked `json:"matches"`
	TotalAnalyzed int      `json:"totalAnalyzed"`
}

type UseCase interface {
	// Match ranks recent jobs for the user, hiding scores of 20 or less.
	Match(ctx context.Context, userID uuid.UUID) (Matches, error)
	Recommend(ctx context.Context, skills []string, limit int) ([]Recommendation, error)
}

type service struct {
	scorer *Scorer
	skills SkillLister
	jobs   JobLister
	now    func() time.Time
}

func NewService(scorer *Scorer, sk SkillLister, jl JobLister) UseCase {
	return &service{scorer: scorer, skills: sk, jobs: jl, now: time.Now}
}

func (s *service) Match(ctx context.Context, userID uuid.UUID) (Matches, error) {
	us, err := s.skills.ListForUser(ctx, userID)
	if err != nil {
		return Matches{}, fmt.Errorf("list user skills: %w", err)
	}
	names := make([]string, 0, len(us))
	for _, u := range us {
		names = append(names, u.Name)
	}
	if len(names) == 0 {
		return Matches{
			Message:    "Please add skills to your profile to get personalized job matches",
			UserSkills: names,
			Matches:    []Ranked{},
		}, nil
	}

	pool, err := s.jobs.Recent(ctx, candidatePool)
	if err != nil {
		return Matches{}, fmt.Errorf("load candidate jobs: %w", err)
	}
	results, _ := worker.Run(ctx, pool, scoreWorkers, func(ctx context.Context, j jobs.Job) (Result, error) {
		c := s.scorer.Score(ctx, names, j.Skills, j.Description)
		return Result{JobID: j.ID, Compatibility: c, Reason: Reason(c.MatchingSkills, c.Score)}, nil
	})

	byID := make(map[uuid.UUID]jobs.Job, len(pool))
	for _, j := range pool {
		byID[j.ID] = j
	}
	ranked := make([]Ranked, 0, len(results))
	for _, r := range Rank(results) {
		if r.Score <= minShownScore {
			continue
		}
		ranked = append(ranked, Ranked{
			Job:           byID[r.JobID],
			Compatibility: RankedCompatibility{Compatibility: r.Compatibility, Reason: r.Reason},
		})
	}
	slog.Info("matched jobs", slog.String("user_id", userID.String()), slog.Int("analyzed", len(pool)), slog.Int("shown", len(ranked)))
	return Matches{UserSkills: names, Matches: ranked, TotalAnalyzed: len(pool)}, nil
}

func (s *service) Recommend(ctx context.Context, skills []string, limit int) ([]Recommendation, error) {
	if len(skills) == 0 {
		return []Recommendation{}, nil
	}
	if limit <= 0 {
		limit = defaultRecoMax
	}
	candidates, err := s.jobs.Search(ctx, jobs.Filter{Keywords: skills, Limit: limit * 2})
	if err != nil {
		return nil, err
	}
	return Recommend(candidates, skills, limit, s.now()), nil
}
