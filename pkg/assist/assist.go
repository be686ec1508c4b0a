// Package assist runs AI-assisted operations with a deterministic fallback.
//
// Every AI call in the service goes through Run: the model answer is parsed
// into a typed value, and any failure (no model configured, transport error,
// unparseable reply) yields the operation's Fallback instead. Callers never
// see AI errors.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/rozgaar/backend/pkg/llm"
	"github.com/rozgaar/backend/pkg/metrics"
	"github.com/rozgaar/backend/pkg/nlp"
)

var ErrNoModel = errors.New("no model configured")

type Operation[T any] struct {
	Name     string
	System   string
	Prompt   string
	Parse    func(raw string) (T, error)
	Fallback func(cause error) T
}

// Run asks the model and parses its reply. degraded reports whether the
// fallback produced the result.
func Run[T any](ctx context.Context, model llm.ChatModel, op Operation[T]) (result T, degraded bool) {
	if model == nil {
		return fallback(op, ErrNoModel), true
	}
	raw, err := model.Ask(ctx, op.System, op.Prompt)
	if err != nil {
		return fallback(op, err), true
	}
	out, err := op.Parse(raw)
	if err != nil {
		return fallback(op, err), true
	}
	return out, false
}

func fallback[T any](op Operation[T], cause error) T {
	metrics.AIFallbacks.WithLabelValues(op.Name).Inc()
	if !errors.Is(cause, ErrNoModel) {
		slog.Warn("ai operation fell back", "operation", op.Name, "err", cause)
	}
	return op.Fallback(cause)
}

// DecodeJSON parses a model reply into T. It tolerates code fences and prose
// around the payload by cutting from the first opening bracket to the last
// closing one.
func DecodeJSON[T any](raw string) (T, error) {
	var out T
	s := nlp.StripCodeFences(raw)
	if err := json.Unmarshal([]byte(s), &out); err == nil {
		return out, nil
	}
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return out, errors.New("no json payload in reply")
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return out, errors.New("unterminated json payload in reply")
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return out, err
	}
	return out, nil
}

// SchemaOf renders the JSON schema of T for inclusion in a prompt.
func SchemaOf[T any]() string {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	b, err := json.Marshal(r.Reflect(v))
	if err != nil {
		return "{}"
	}
	return string(b)
}
