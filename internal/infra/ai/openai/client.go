package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/avdeyev/mailtriage/internal/domain/letters"
)

const maxTokens = 2048

// Client is the generation gateway: one blocking chat round-trip per
// call, no automatic retry (retry policy belongs to the caller).
// Construction happens once at startup from credential presence; a
// process without credentials simply has no Client and the orchestrator
// takes the heuristic path.
type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a gateway against the default OpenAI endpoint or,
// when baseURL is set, any OpenAI-compatible endpoint (on-premise
// GigaChat proxies included).
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Complete sends the prompt as a single user message and returns the
// raw completion text. Transport or service-side failures wrap the
// underlying cause.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", letters.ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", letters.ErrServiceUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}
