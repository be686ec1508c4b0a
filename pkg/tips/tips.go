// Package tips serves short daily career and skill-development tips.
package tips

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rozgaar/backend/pkg/assist"
	"github.com/rozgaar/backend/pkg/llm"
)

type Category string

const (
	CategoryJob   Category = "job"
	CategorySkill Category = "skill"
)

const (
	count    = 3
	cacheTTL = 72 * time.Hour
)

// ParseCategory treats anything other than "skill" as the job category.
func ParseCategory(raw string) Category {
	if strings.EqualFold(strings.TrimSpace(raw), string(CategorySkill)) {
		return CategorySkill
	}
	return CategoryJob
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type UseCase interface {
	// Today returns up to three tips for c. Model answers are cached per
	// category; without a usable answer a fixed set is returned.
	Today(ctx context.Context, c Category) []string
}

type service struct {
	model llm.ChatModel
	cache Cache
}

func NewService(model llm.ChatModel, cache Cache) UseCase {
	return &service{model: model, cache: cache}
}

var prompts = map[Category]string{
	CategoryJob:   "Give three concise career or job-search tips for today. Each must be actionable and under 60 words. Return them as a simple JSON array of strings, with no extra text.",
	CategorySkill: "Give three concise professional skill-development tips for today. Each must be actionable and under 60 words. Return them as a simple JSON array of strings, with no extra text.",
}

var fallbacks = map[Category][]string{
	CategoryJob: {
		"Tailor the first three lines of your resume to the role you are applying for; recruiters skim those first.",
		"Apply within the first few days of a posting going live and follow up politely after a week.",
		"Ask one person in your network for a referral this week instead of sending ten cold applications.",
	},
	CategorySkill: {
		"Pick one skill from a job you want and build a small project with it this week.",
		"Spend 30 focused minutes a day on deliberate practice rather than long occasional sessions.",
		"Explain what you learned today in a short post or note; teaching exposes the gaps.",
	},
}

var errNoTips = errors.New("no tips in reply")

func (s *service) Today(ctx context.Context, c Category) []string {
	if _, ok := prompts[c]; !ok {
		c = CategoryJob
	}
	key := "tips:" + string(c)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("tips cache read failed", slog.String("category", string(c)), slog.Any("err", err))
	} else if ok {
		var cached []string
		if err := json.Unmarshal(raw, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	out, degraded := assist.Run(ctx, s.model, assist.Operation[[]string]{
		Name:   "tips",
		Prompt: prompts[c],
		Parse:  parse,
		Fallback: func(error) []string {
			return append([]string(nil), fallbacks[c]...)
		},
	})
	if degraded {
		return out
	}
	if b, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, key, b, cacheTTL); err != nil {
			slog.Warn("tips cache write failed", slog.String("category", string(c)), slog.Any("err", err))
		}
	}
	return out
}

// parse keeps the first three non-empty strings of a JSON array reply.
func parse(raw string) ([]string, error) {
	items, err := assist.DecodeJSON[[]any](raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, count)
	for _, it := range items {
		s, ok := it.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(s))
		if len(out) == count {
			break
		}
	}
	if len(out) == 0 {
		return nil, errNoTips
	}
	return out, nil
}
