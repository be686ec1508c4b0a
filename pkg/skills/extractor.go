package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/rozgaar/backend/pkg/assist"
	"github.com/rozgaar/backend/pkg/llm"
)

const minDescriptionLen = 20

// Extractor pulls technical skill names out of free text with a model.
// It never fails: any problem yields an empty list.
type Extractor struct {
	model llm.ChatModel
}

func NewExtractor(model llm.ChatModel) *Extractor {
	return &Extractor{model: model}
}

// Extract returns lowercase skill names found in a job description.
// Descriptions of 20 characters or fewer are not sent to the model.
func (e *Extractor) Extract(ctx context.Context, description string) []string {
	if len(description) <= minDescriptionLen {
		return []string{}
	}
	prompt := fmt.Sprintf(`Extract technical skills from this job description.
Return ONLY a JSON array of lowercase skill names.

%s
`, description)
	return e.run(ctx, "extract_skills", prompt, true)
}

// FromResume returns skills listed in resume text, keeping their spelling.
func (e *Extractor) FromResume(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	prompt := strings.Join([]string{
		"You are an expert resume parser.",
		"Extract professional and technical skills from the resume text.",
		"Return ONLY a JSON array of strings. No extra text.",
		"Rules:",
		"- Skills must be short (1-4 words).",
		"- Deduplicate similar items.",
		fmt.Sprintf("- Max %d skills.", maxResumeSkills),
		"",
		"Resume text:",
		text,
	}, "\n")
	return e.run(ctx, "extract_resume_skills", prompt, false)
}

func (e *Extractor) run(ctx context.Context, name, prompt string, lower bool) []string {
	out, _ := assist.Run(ctx, e.model, assist.Operation[[]string]{
		Name:   name,
		Prompt: prompt,
		Parse: func(raw string) ([]string, error) {
			list, err := assist.DecodeJSON[[]string](raw)
			if err != nil {
				return nil, err
			}
			res := make([]string, 0, len(list))
			for _, s := range list {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				if lower {
					s = strings.ToLower(s)
				}
				res = append(res, s)
			}
			return res, nil
		},
		Fallback: func(error) []string { return []string{} },
	})
	return out
}
