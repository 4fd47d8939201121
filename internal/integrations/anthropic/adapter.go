package anthropic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"chat-relay/internal/domain"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1024
)

// messageRequest follows the Messages API contract.
type messageRequest struct {
	Model       string               `json:"model"`
	System      string               `json:"system,omitempty"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature *float64             `json:"temperature,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messageResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// Adapter builds Messages API requests and reads their replies.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return domain.ProviderAnthropic
}

func messagesURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/messages"
	}
	return base + "/v1/messages"
}

// splitSystem lifts system messages into a single prompt. The remaining
// messages keep their order.
func splitSystem(messages []domain.ChatMessage) (string, []domain.ChatMessage) {
	var system []string
	rest := make([]domain.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}

func (a *Adapter) BuildRequest(cfg domain.ProviderConfig, env domain.RequestEnvelope) (domain.OutboundRequest, error) {
	if cfg.Model == "" {
		return domain.OutboundRequest{}, errors.New("anthropic: model must not be empty")
	}
	if cfg.APIKey == "" {
		return domain.OutboundRequest{}, errors.New("anthropic: api key must not be empty")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	system, messages := splitSystem(env.Messages)

	body, err := json.Marshal(messageRequest{
		Model:       cfg.Model,
		System:      system,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return domain.OutboundRequest{}, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	return domain.OutboundRequest{
		Provider: domain.ProviderAnthropic,
		URL:      messagesURL(cfg.BaseURL),
		Headers: cfg.OutboundHeaders(map[string]string{
			"X-Api-Key":         cfg.APIKey,
			"Anthropic-Version": anthropicVersion,
		}),
		Body: body,
	}, nil
}

// ParseResponse concatenates every text block of the reply.
func (a *Adapter) ParseResponse(raw []byte) (string, error) {
	var payload messageResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}
	if payload.Content == nil {
		return "", errors.New("anthropic: no content in response")
	}
	var sb strings.Builder
	for _, block := range payload.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
