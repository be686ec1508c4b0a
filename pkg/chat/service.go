// Package chat implements the career assistant: a knowledge-grounded model
// reply plus intent routing that can update the user's skill profile.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/ratelimit"
	"github.com/rozgaar/backend/pkg/skills"
	"github.com/rozgaar/backend/pkg/users"
)

type Quota interface {
	CheckAndRecord(ctx context.Context, userID uuid.UUID, kind ratelimit.Kind) error
}

type Profile interface {
	List(ctx context.Context, userID uuid.UUID) ([]skills.UserSkill, error)
	Add(ctx context.Context, user users.User, name string, proficiency int) (skills.UserSkill, error)
}

type Tracker interface {
	Track(ctx context.Context, userID uuid.UUID, action string, metadata map[string]any) error
}

type Request struct {
	Message string
	// User is nil for anonymous callers, who get advice only.
	User *users.User
}

type Response struct {
	Reply           string             `json:"reply"`
	Skill           *skills.UserSkill  `json:"skill,omitempty"`
	Skills          []skills.UserSkill `json:"skills"`
	Recommendations []Resource         `json:"recommendations,omitempty"`
	Sources         []string           `json:"sources,omitempty"`
}

type UseCase interface {
	Handle(ctx context.Context, req Request) (Response, error)
}

type service struct {
	responder *Responder
	catalog   Catalog
	quota     Quota
	profile   Profile
	tracker   Tracker
}

func NewService(responder *Responder, catalog Catalog, quota Quota, profile Profile, tracker Tracker) UseCase {
	return &service{responder: responder, catalog: catalog, quota: quota, profile: profile, tracker: tracker}
}

// ErrValidation is returned for malformed caller input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

func (s *service) Handle(ctx context.Context, req Request) (Response, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return Response{}, ErrValidation("Message is required")
	}

	userSkills := []skills.UserSkill{}
	if req.User != nil {
		if err := s.quota.CheckAndRecord(ctx, req.User.ID, ratelimit.KindChat); err != nil {
			return Response{}, err
		}
		if err := s.tracker.Track(ctx, req.User.ID, activity.ActionChatMessage, map[string]any{"messageLength": len(msg)}); err != nil {
			slog.Warn("track chat activity failed", slog.Any("err", err))
		}
		list, err := s.profile.List(ctx, req.User.ID)
		if err != nil {
			return Response{}, fmt.Errorf("list user skills: %w", err)
		}
		userSkills = list
	}

	answerCh := make(chan Answer, 1)
	go func() { answerCh <- s.responder.Respond(ctx, msg, userSkills) }()
	routed := s.route(ctx, msg, req.User, userSkills)
	answer := <-answerCh

	if answer.Reply != "" {
		routed.Reply = answer.Reply
	}
	routed.Sources = answer.Sources
	return routed, nil
}

// route applies intent side effects and builds the response with a canned
// reply; a model reply replaces it when there is one.
func (s *service) route(ctx context.Context, msg string, user *users.User, userSkills []skills.UserSkill) Response {
	intent := DetectIntent(msg)
	if user == nil {
		resp := Response{Skills: []skills.UserSkill{}}
		switch intent {
		case IntentLearn:
			resp.Reply = "Please log in to save skills to your profile. I can still help answer your questions!"
		case IntentMySkills:
			resp.Reply = "Please log in to view your saved skills."
		case IntentResources:
			resp.Reply = "I can suggest resources! What skill would you like to learn?"
		default:
			resp.Reply = defaultReply(nil)
		}
		return resp
	}

	// A learn message without a recognisable skill falls through to the
	// other intents.
	if Mentions(msg, IntentLearn) {
		if name := ExtractSkill(msg); name != "" {
			added, err := s.profile.Add(ctx, *user, name, skills.DefaultProficiency)
			if err != nil {
				slog.Error("save chat skill failed", slog.String("skill", name), slog.Any("err", err))
				return Response{
					Reply:  "I encountered an error saving the skill, but I can still help you learn!",
					Skills: userSkills,
				}
			}
			return Response{
				Reply:           fmt.Sprintf("Great! I've added %q to your learning journey. Here are some resources to get started:", added.Name),
				Skill:           &added,
				Skills:          append([]skills.UserSkill{added}, withoutSkill(userSkills, added.SkillID)...),
				Recommendations: s.catalog.For(added.Name),
			}
		}
	}
	if Mentions(msg, IntentMySkills) {
		reply := "You haven't added any skills yet. Tell me what you want to learn!"
		if len(userSkills) > 0 {
			reply = "Here are your current skills:"
		}
		return Response{Reply: reply, Skills: userSkills}
	}
	if Mentions(msg, IntentResources) {
		if len(userSkills) > 0 {
			first := userSkills[0].Name
			return Response{
				Reply:           fmt.Sprintf("Here are some resources for %s:", first),
				Skills:          userSkills,
				Recommendations: s.catalog.For(first),
			}
		}
		return Response{
			Reply:  "Tell me what you want to learn and I'll recommend some great resources!",
			Skills: []skills.UserSkill{},
		}
	}
	return Response{Reply: defaultReply(userSkills), Skills: userSkills}
}

func defaultReply(us []skills.UserSkill) string {
	if len(us) == 0 {
		return "I can help you track your learning journey! Tell me what you want to learn, or ask about your current skills."
	}
	names := make([]string, 0, 3)
	for _, s := range us[:min(3, len(us))] {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("I can help you track your learning journey. You're currently learning %s. What would you like to know?", strings.Join(names, ", "))
}

func withoutSkill(us []skills.UserSkill, id uuid.UUID) []skills.UserSkill {
	out := make([]skills.UserSkill, 0, len(us))
	for _, s := range us {
		if s.SkillID != id {
			out = append(out, s)
		}
	}
	return out
}
