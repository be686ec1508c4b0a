// Package search turns free-text job queries into structured filters.
package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rozgaar/backend/pkg/assist"
	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/llm"
	"github.com/rozgaar/backend/pkg/nlp"
)

var reRemote = regexp.MustCompile(`(?i)remote|wfh|work from home`)

type Filters struct {
	Keywords []string   `json:"keywords"`
	JobType  *jobs.Type `json:"jobType,omitempty"`
	Location string     `json:"location,omitempty"`
	Skills   []string   `json:"skills,omitempty"`
	Remote   bool       `json:"remote"`
}

type aiFilters struct {
	Keywords []string `json:"keywords" jsonschema_description:"Important search terms"`
	JobType  *string  `json:"jobType" jsonschema:"enum=internship,enum=full-time,enum=part-time,enum=contract,enum=remote"`
	Location *string  `json:"location" jsonschema_description:"City or country name, or null"`
	Skills   []string `json:"skills" jsonschema_description:"Technical skills mentioned, or null"`
	Remote   bool     `json:"remote" jsonschema_description:"True if the query mentions remote or work from home"`
}

type Parser struct {
	model llm.ChatModel
}

func NewParser(model llm.ChatModel) *Parser {
	return &Parser{model: model}
}

// Parse extracts filters with the model, falling back to splitting the
// query into words longer than two characters.
func (p *Parser) Parse(ctx context.Context, query string) Filters {
	if strings.TrimSpace(query) == "" {
		return Filters{Keywords: []string{}}
	}
	out, _ := assist.Run(ctx, p.model, assist.Operation[Filters]{
		Name:   "smart_search",
		Prompt: parsePrompt(query),
		Parse: func(raw string) (Filters, error) {
			a, err := assist.DecodeJSON[aiFilters](raw)
			if err != nil {
				return Filters{}, err
			}
			return fromAI(a), nil
		},
		Fallback: func(error) Filters {
			kw := nlp.Words(query, 2)
			if kw == nil {
				kw = []string{}
			}
			return Filters{Keywords: kw, Remote: reRemote.MatchString(query)}
		},
	})
	return out
}

func fromAI(a aiFilters) Filters {
	f := Filters{Keywords: a.Keywords, Skills: a.Skills, Remote: a.Remote}
	if f.Keywords == nil {
		f.Keywords = []string{}
	}
	if a.JobType != nil {
		if strings.EqualFold(strings.TrimSpace(*a.JobType), "remote") {
			f.Remote = true
		} else {
			f.JobType = jobs.ParseType(*a.JobType)
		}
	}
	if a.Location != nil {
		f.Location = strings.TrimSpace(*a.Location)
	}
	return f
}

// Describe renders filters for display, e.g. "react • full time • in pune • remote".
func Describe(f Filters) string {
	var parts []string
	if len(f.Keywords) > 0 {
		parts = append(parts, strings.Join(f.Keywords, ", "))
	}
	if f.JobType != nil {
		parts = append(parts, strings.Replace(string(*f.JobType), "-", " ", 1))
	}
	if f.Location != "" {
		parts = append(parts, "in "+f.Location)
	}
	if f.Remote {
		parts = append(parts, "remote")
	}
	if len(f.Skills) > 0 {
		parts = append(parts, "requiring "+strings.Join(f.Skills, ", "))
	}
	if len(parts) == 0 {
		return "all jobs"
	}
	return strings.Join(parts, " • ")
}

func parsePrompt(query string) string {
	return fmt.Sprintf(`Parse this job search query into structured filters.

Query: %q

Extract:
- keywords: important search terms
- jobType: one of [internship, full-time, part-time, contract, remote] or null
- location: city/country name or null
- skills: technical skills mentioned or null
- remote: true if mentions remote/work-from-home

Return ONLY valid JSON matching this schema:
%s`, query, assist.SchemaOf[aiFilters]())
}
