package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rozgaar/backend/pkg/llm"
	"github.com/rozgaar/backend/pkg/metrics"
	"github.com/rozgaar/backend/pkg/skills"
)

const systemPromptTmpl = `You are an expert career advisor and skill development coach for rozgaar.ai, helping freshers and early professionals.

User's Current Skills: %s

Context from knowledge base:
%s

Your role:
1. Provide personalized, actionable career and learning advice
2. Recommend specific learning paths based on user's goals and current skills
3. Suggest realistic timelines and milestones
4. Be encouraging but realistic about effort required
5. Reference current job market trends when relevant

Guidelines:
- Keep responses concise (2-4 paragraphs max)
- Focus on actionable next steps
- Be specific about resources and timelines
- Consider the user's existing skill level
- If the context doesn't contain relevant info, use your general knowledge`

type Answer struct {
	Reply   string
	Sources []string
}

// Responder answers career questions grounded in the knowledge base.
// A nil model or any model failure yields an empty reply.
type Responder struct {
	model llm.ChatModel
	docs  []Doc
}

func NewResponder(model llm.ChatModel, docs []Doc) *Responder {
	return &Responder{model: model, docs: docs}
}

func (r *Responder) Respond(ctx context.Context, message string, userSkills []skills.UserSkill) Answer {
	if r.model == nil {
		return Answer{}
	}
	docs := Retrieve(r.docs, message, topK)
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = strings.TrimSpace(d.Content)
	}
	system := fmt.Sprintf(systemPromptTmpl, describeSkills(userSkills), strings.Join(contents, "\n\n---\n\n"))

	reply, err := r.model.Ask(ctx, system, message)
	if err != nil {
		metrics.AIFallbacks.WithLabelValues("chat").Inc()
		slog.Warn("chat completion failed", slog.Any("err", err))
		return Answer{}
	}
	a := Answer{Reply: strings.TrimSpace(reply)}
	if len(docs) > 0 {
		a.Sources = []string{"knowledge_base"}
	}
	return a
}

func describeSkills(us []skills.UserSkill) string {
	if len(us) == 0 {
		return "No skills tracked yet - complete beginner"
	}
	parts := make([]string, len(us))
	for i, s := range us {
		p := "not set"
		if s.Proficiency > 0 {
			p = fmt.Sprint(s.Proficiency)
		}
		parts[i] = fmt.Sprintf("%s (proficiency: %s)", s.Name, p)
	}
	return strings.Join(parts, ", ")
}
