package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rozgaar/backend/pkg/assist"
	"github.com/rozgaar/backend/pkg/llm"
	"github.com/rozgaar/backend/pkg/nlp"
)

const (
	summaryTTL          = 24 * time.Hour
	summaryMinDesc      = 50
	summaryPromptDesc   = 1500
	summaryFallbackDesc = 150
)

// Cache is a keyed byte store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type Summary struct {
	Summary         string   `json:"summary" jsonschema_description:"One-sentence overview, 20 to 30 words"`
	KeyRequirements []string `json:"keyRequirements" jsonschema_description:"Must-have requirements"`
	NiceToHave      []string `json:"niceToHave" jsonschema_description:"Nice-to-have skills"`
	Highlights      []string `json:"highlights" jsonschema_description:"Highlights and perks"`
}

type SummaryRequest struct {
	JobID       string
	Title       string
	Description string
	Company     string
}

// Summarizer produces short structured summaries of postings. Successful AI
// answers are cached per job id; fallbacks are not.
type Summarizer struct {
	model llm.ChatModel
	cache Cache
}

func NewSummarizer(model llm.ChatModel, cache Cache) *Summarizer {
	return &Summarizer{model: model, cache: cache}
}

func (s *Summarizer) Summarize(ctx context.Context, req SummaryRequest) Summary {
	if len(req.Description) < summaryMinDesc {
		return Summary{
			Summary:         req.Title + " position" + atCompany(req.Company),
			KeyRequirements: []string{},
			NiceToHave:      []string{},
			Highlights:      []string{},
		}
	}

	key := "summary:" + req.JobID
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("summary cache read failed", "job_id", req.JobID, "err", err)
	} else if ok {
		var cached Summary
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached
		}
	}

	out, degraded := assist.Run(ctx, s.model, assist.Operation[Summary]{
		Name:   "summarize",
		Prompt: summaryPrompt(req),
		Parse:  assist.DecodeJSON[Summary],
		Fallback: func(error) Summary {
			return Summary{
				Summary:         fmt.Sprintf("%s%s. %s...", req.Title, atCompany(req.Company), nlp.Truncate(req.Description, summaryFallbackDesc)),
				KeyRequirements: []string{},
				NiceToHave:      []string{},
				Highlights:      []string{},
			}
		},
	})
	if degraded {
		return out
	}
	out = fillSummary(out, req.Title)
	if b, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, key, b, summaryTTL); err != nil {
			slog.Warn("summary cache write failed", "job_id", req.JobID, "err", err)
		}
	}
	return out
}

func fillSummary(s Summary, title string) Summary {
	if strings.TrimSpace(s.Summary) == "" {
		s.Summary = title + " position"
	}
	if s.KeyRequirements == nil {
		s.KeyRequirements = []string{}
	}
	if s.NiceToHave == nil {
		s.NiceToHave = []string{}
	}
	if s.Highlights == nil {
		s.Highlights = []string{}
	}
	return s
}

func atCompany(company string) string {
	if company == "" {
		return ""
	}
	return " at " + company
}

func summaryPrompt(req SummaryRequest) string {
	var b strings.Builder
	b.WriteString("Summarize this job posting concisely.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	if req.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", req.Company)
	}
	fmt.Fprintf(&b, "Description: %s\n\n", nlp.Truncate(req.Description, summaryPromptDesc))
	b.WriteString("Return ONLY valid JSON matching this schema:\n")
	b.WriteString(assist.SchemaOf[Summary]())
	return b.String()
}
