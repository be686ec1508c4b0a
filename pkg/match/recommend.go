package match

import (
	"sort"
	"strings"
	"time"

	"github.com/rozgaar/backend/pkg/jobs"
)

const recommendCap = 99

type Recommendation struct {
	jobs.Job
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
}

// Recommend scores candidates by keyword hits: 30 per skill in the title,
// 15 per skill in the description, plus 10 for jobs younger than a week or
// 5 for younger than a month. Scores cap at 99.
func Recommend(candidates []jobs.Job, skills []string, limit int, now time.Time) []Recommendation {
	out := make([]Recommendation, 0, len(candidates))
	for _, j := range candidates {
		title := strings.ToLower(j.Title)
		desc := strings.ToLower(j.Description)
		score := 0
		hits := []string{}
		for _, s := range skills {
			ls := strings.ToLower(s)
			inTitle := strings.Contains(title, ls)
			inDesc := strings.Contains(desc, ls)
			if inTitle {
				score += 30
			}
			if inDesc {
				score += 15
			}
			if inTitle || inDesc {
				hits = append(hits, s)
			}
		}
		age := now.Sub(j.CreatedAt)
		switch {
		case age < 7*24*time.Hour:
			score += 10
		case age < 30*24*time.Hour:
			score += 5
		}
		out = append(out, Recommendation{Job: j, MatchScore: min(score, recommendCap), MatchedSkills: hits})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].MatchScore > out[k].MatchScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ParseSkillQuery splits "react OR node js" style input.
func ParseSkillQuery(q string) []string {
	var out []string
	for _, p := range strings.Split(q, " OR ") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
