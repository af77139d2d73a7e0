package chat

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"

	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
)

// message is one turn in the conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest is the Anthropic messages API payload.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

// messagesResponse is the Anthropic messages API response.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the Anthropic messages API.
type Client struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewClient creates an Anthropic API client.
// Parameters:
//   - cfg: chat configuration with API key, model and token limit.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg config.ChatConfig) *Client {
	client := resty.New().
		SetBaseURL(anthropicBaseURL).
		SetHeader("x-api-key", cfg.AnthropicAPIKey).
		SetHeader("anthropic-version", anthropicAPIVersion).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends one user message under a system prompt and returns the
// model's text reply.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - system: system prompt with data context.
//   - userMessage: the user's question.
// Returns:
//   - string: model reply text.
//   - error: non-nil if the request fails or the response is empty.
func (c *Client) Complete(ctx context.Context, system, userMessage string) (string, error) {
	start := time.Now()

	var result messagesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			System:    system,
			Messages:  []message{{Role: "user", Content: userMessage}},
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("failed to call chat API: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("chat API error (%s): %s", result.Error.Type, result.Error.Message)
		}
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode())
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("chat API returned empty content")
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldSize:       len(result.Content[0].Text),
	}).Info(ctx, "Chat completion received")

	return result.Content[0].Text, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
