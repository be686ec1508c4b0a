package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "mistralai/mistral-7b-instruct"
)

// Client is a chat completions client for OpenRouter and any other
// OpenAI-compatible endpoint (the chat assistant points it at NVIDIA NIM).
type Client struct {
	Model       string
	Temperature float64
	MaxTokens   int64

	apiKey string
	api    openai.Client
}

type Options struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
	Timeout  time.Duration
}

func New(o Options) *Client {
	base := o.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(o.APIKey),
		option.WithBaseURL(base),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if o.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", o.Referer))
	}
	if o.AppTitle != "" {
		opts = append(opts, option.WithHeader("X-Title", o.AppTitle))
	}
	model := o.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		Model:       model,
		Temperature: 0.2,
		apiKey:      o.APIKey,
		api:         openai.NewClient(opts...),
	}
}

// Ask sends one system+user exchange and returns the first choice's content.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("openrouter api key is empty")
	}
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(userPrompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.Model),
		Messages:    msgs,
		Temperature: openai.Float(c.Temperature),
	}
	if c.MaxTokens > 0 {
		params.MaxTokens = openai.Int(c.MaxTokens)
	}
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned by model")
	}
	return resp.Choices[0].Message.Content, nil
}
