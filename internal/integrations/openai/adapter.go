package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"chat-relay/internal/domain"
)

const defaultBaseURL = "https://api.openai.com/v1"

// chatRequest is the minimal request shape for the Chat Completions endpoint.
type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature *float64             `json:"temperature,omitempty"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

// chatResponse is the minimal response shape returned by the Chat Completions endpoint.
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Choices []struct {
		Index   int                `json:"index"`
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

// Adapter builds Chat Completions requests and reads their replies.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return domain.ProviderOpenAI
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// BuildRequest maps the conversation one-to-one onto the messages array.
func (a *Adapter) BuildRequest(cfg domain.ProviderConfig, env domain.RequestEnvelope) (domain.OutboundRequest, error) {
	if cfg.Model == "" {
		return domain.OutboundRequest{}, errors.New("openai: model must not be empty")
	}
	if cfg.APIKey == "" {
		return domain.OutboundRequest{}, errors.New("openai: api key must not be empty")
	}

	temperature := cfg.Temperature
	body, err := json.Marshal(chatRequest{
		Model:       cfg.Model,
		Messages:    env.Messages,
		Temperature: &temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return domain.OutboundRequest{}, fmt.Errorf("openai: marshal request: %w", err)
	}

	return domain.OutboundRequest{
		Provider: domain.ProviderOpenAI,
		URL:      chatURL(cfg.BaseURL),
		Headers:  cfg.OutboundHeaders(map[string]string{"Authorization": "Bearer " + cfg.APIKey}),
		Body:     body,
	}, nil
}

// ParseResponse returns the content of the first choice.
func (a *Adapter) ParseResponse(raw []byte) (string, error) {
	var payload chatResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return payload.Choices[0].Message.Content, nil
}
