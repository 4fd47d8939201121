package domain

import "net/http"

// Message roles accepted in a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Supported upstream providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Metadata keys the relay consumes itself. Other keys become attribution headers.
const (
	// MetadataProvider overrides the default provider.
	MetadataProvider = "provider"
	// MetadataAnthropicModel overrides the Anthropic model for one request.
	MetadataAnthropicModel = "anthropic_model"
)

// ChatMessage is the provider-agnostic chat message shape used by the handler
// and LLM integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether role is one of the known conversation roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// KnownProvider reports whether name is a supported provider.
func KnownProvider(name string) bool {
	return name == ProviderOpenAI || name == ProviderAnthropic
}

// RequestEnvelope is a validated conversation plus optional metadata.
type RequestEnvelope struct {
	Messages []ChatMessage
	Metadata map[string]string
}

// Provider returns the metadata provider override, or "" when absent.
func (e RequestEnvelope) Provider() string {
	return e.Metadata[MetadataProvider]
}

// NormalizedReply is the vendor-independent result of a chat call.
type NormalizedReply struct {
	Content      string
	ProviderUsed string
}

// ProviderConfig holds everything needed to call one provider.
type ProviderConfig struct {
	Name         string
	BaseURL      string
	APIKey       string
	Model        string
	MaxTokens    int
	Temperature  float64
	ExtraHeaders map[string]string
}

// OutboundHeaders returns the extra headers followed by the given auth
// headers. Header names are canonicalized, so an extra header can never
// shadow an auth header regardless of case.
func (p ProviderConfig) OutboundHeaders(auth map[string]string) http.Header {
	h := make(http.Header, len(p.ExtraHeaders)+len(auth)+1)
	for k, v := range p.ExtraHeaders {
		if k == "" {
			continue
		}
		h.Set(k, v)
	}
	h.Set("Content-Type", "application/json")
	for k, v := range auth {
		h.Set(k, v)
	}
	return h
}

// UpstreamResponse is the raw 2xx reply of an upstream call.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// OutboundRequest is a fully assembled upstream call.
type OutboundRequest struct {
	Provider string
	URL      string
	Headers  http.Header
	Body     []byte
}
