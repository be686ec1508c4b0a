// Package match scores how well a user's skills fit a job.
package match

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/assist"
	"github.com/rozgaar/backend/pkg/llm"
	"github.com/rozgaar/backend/pkg/nlp"
)

const (
	neutralScore   = 50
	promptDescSize = 500
)

type Compatibility struct {
	Score          int      `json:"score"`
	MatchingSkills []string `json:"matchingSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

type aiCompatibility struct {
	Score          float64  `json:"score" jsonschema:"minimum=0,maximum=100"`
	MatchingSkills []string `json:"matchingSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

type Scorer struct {
	model llm.ChatModel
}

func NewScorer(model llm.ChatModel) *Scorer {
	return &Scorer{model: model}
}

// Score compares user skills with a job. A user without skills scores 0 and
// a job with neither skills nor description scores 50; neither case calls
// the model. Otherwise the model decides and Heuristic is the fallback.
func (s *Scorer) Score(ctx context.Context, userSkills, jobSkills []string, description string) Compatibility {
	if len(userSkills) == 0 {
		return Compatibility{Score: 0, MatchingSkills: []string{}, MissingSkills: nonNil(jobSkills)}
	}
	if len(jobSkills) == 0 && strings.TrimSpace(description) == "" {
		return Compatibility{Score: neutralScore, MatchingSkills: []string{}, MissingSkills: []string{}}
	}
	out, _ := assist.Run(ctx, s.model, assist.Operation[Compatibility]{
		Name:   "match_score",
		Prompt: comparePrompt(userSkills, jobSkills, description),
		Parse: func(raw string) (Compatibility, error) {
			r, err := assist.DecodeJSON[aiCompatibility](raw)
			if err != nil {
				return Compatibility{}, err
			}
			return Compatibility{
				Score:          clamp(int(math.Round(r.Score))),
				MatchingSkills: nonNil(r.MatchingSkills),
				MissingSkills:  nonNil(r.MissingSkills),
			}, nil
		},
		Fallback: func(error) Compatibility { return Heuristic(userSkills, jobSkills) },
	})
	return out
}

// Heuristic matches skills by case-insensitive substring containment in
// either direction. The score is the share of job skills covered.
func Heuristic(userSkills, jobSkills []string) Compatibility {
	matching := []string{}
	for _, us := range userSkills {
		for _, js := range jobSkills {
			if related(us, js) {
				matching = append(matching, us)
				break
			}
		}
	}
	missing := []string{}
	covered := 0
	for _, js := range jobSkills {
		hit := false
		for _, us := range userSkills {
			if related(us, js) {
				hit = true
				break
			}
		}
		if hit {
			covered++
		} else {
			missing = append(missing, js)
		}
	}
	score := 0
	if len(jobSkills) > 0 {
		score = int(math.Round(float64(covered) / float64(len(jobSkills)) * 100))
	}
	return Compatibility{Score: clamp(score), MatchingSkills: matching, MissingSkills: missing}
}

func related(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Reason renders a one-line explanation for a score.
func Reason(matching []string, score int) string {
	switch {
	case score == 0:
		return "No matching skills found"
	case score < 30:
		return fmt.Sprintf("Limited match (%s)", head(matching, 2))
	case score < 60:
		return "Partial match with " + head(matching, 3)
	case score < 80:
		return "Good match! You have " + head(matching, 4)
	default:
		return "Excellent match! Strong skills in " + head(matching, 5)
	}
}

type Result struct {
	JobID uuid.UUID
	Compatibility
	Reason string
}

// Rank sorts results by score, highest first, keeping input order on ties.
func Rank(results []Result) []Result {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

func comparePrompt(userSkills, jobSkills []string, description string) string {
	req := "See description"
	if len(jobSkills) > 0 {
		req = strings.Join(jobSkills, ", ")
	}
	var b strings.Builder
	b.WriteString("Compare these skills and rate compatibility 0-100.\n\n")
	fmt.Fprintf(&b, "User Skills: %s\n", strings.Join(userSkills, ", "))
	fmt.Fprintf(&b, "Job Requirements: %s\n", req)
	if description != "" {
		fmt.Fprintf(&b, "Job Description: %s\n", nlp.Truncate(description, promptDescSize))
	}
	b.WriteString("\nReturn ONLY valid JSON matching this schema:\n")
	b.WriteString(assist.SchemaOf[aiCompatibility]())
	return b.String()
}

func clamp(n int) int {
	return max(0, min(100, n))
}

func head(s []string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return strings.Join(s, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
