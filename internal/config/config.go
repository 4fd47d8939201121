// Package config builds the process-wide relay configuration. It is loaded
// once at startup and passed explicitly to the components that need it.
package config

import (
	"strings"
	"time"

	"chat-relay/internal/domain"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultOpenAIModel      = "gpt-3.5-turbo"
	defaultAnthropicModel   = "claude-3-haiku-20240307"
	defaultMaxTokens        = 500
	defaultTemperature      = 0.7
	defaultTimeoutSeconds   = 30
	defaultMaxMessageLength = 8000
	defaultPort             = 5000
)

// Config is the relay configuration. Treat it as read-only after Load.
type Config struct {
	DefaultProvider  string            `yaml:"default_provider"`
	ProxyURL         string            `yaml:"proxy_url"`
	ProxyAPIKey      string            `yaml:"proxy_api_key"`
	ExtraHeaders     map[string]string `yaml:"extra_headers"`
	TimeoutSeconds   int               `yaml:"timeout_seconds"`
	MaxMessageLength int               `yaml:"max_message_length"`
	MaxTokens        int               `yaml:"max_tokens"`
	Temperature      float64           `yaml:"temperature"`
	Port             int               `yaml:"port"`
	ParamPrefix      string            `yaml:"param_prefix"`
	AuditTable       string            `yaml:"audit_table"`

	OpenAI    ProviderSettings `yaml:"openai"`
	Anthropic ProviderSettings `yaml:"anthropic"`
}

// ProviderSettings configures one upstream vendor. ProxyURL, when set,
// replaces BaseURL for this provider only; the process-wide ProxyURL still
// takes precedence over it.
type ProviderSettings struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	ProxyURL string `yaml:"proxy_url"`
	Model    string `yaml:"model"`
}

// Defaults returns a Config with built-in values.
func Defaults() Config {
	return Config{
		DefaultProvider:  domain.ProviderOpenAI,
		TimeoutSeconds:   defaultTimeoutSeconds,
		MaxMessageLength: defaultMaxMessageLength,
		MaxTokens:        defaultMaxTokens,
		Temperature:      defaultTemperature,
		Port:             defaultPort,
		OpenAI: ProviderSettings{
			BaseURL: defaultOpenAIBaseURL,
			Model:   defaultOpenAIModel,
		},
		Anthropic: ProviderSettings{
			BaseURL: defaultAnthropicBaseURL,
			Model:   defaultAnthropicModel,
		},
	}
}

// Timeout is the outbound request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) settings(name string) ProviderSettings {
	switch name {
	case domain.ProviderOpenAI:
		return c.OpenAI
	case domain.ProviderAnthropic:
		return c.Anthropic
	}
	return ProviderSettings{}
}

// proxyKeyHeader carries ProxyAPIKey on OpenAI calls routed through the proxy.
const proxyKeyHeader = "X-Api-Key"

// Providers returns one ProviderConfig per provider that has an API key.
// Each entry gets its own copy of the extra headers. ProxyAPIKey is added as
// X-Api-Key to proxied OpenAI calls unless ExtraHeaders already names that
// header; Anthropic uses X-Api-Key for its own credential, so it never gets it.
func (c Config) Providers() map[string]domain.ProviderConfig {
	out := make(map[string]domain.ProviderConfig, 2)
	for _, name := range []string{domain.ProviderOpenAI, domain.ProviderAnthropic} {
		s := c.settings(name)
		key := strings.TrimSpace(s.APIKey)
		if key == "" {
			continue
		}
		headers := make(map[string]string, len(c.ExtraHeaders)+1)
		for k, v := range c.ExtraHeaders {
			headers[k] = v
		}
		if name == domain.ProviderOpenAI && c.ProxyURL != "" && c.ProxyAPIKey != "" && !hasHeader(headers, proxyKeyHeader) {
			headers[proxyKeyHeader] = c.ProxyAPIKey
		}
		base := s.BaseURL
		if s.ProxyURL != "" {
			base = s.ProxyURL
		}
		out[name] = domain.ProviderConfig{
			Name:         name,
			BaseURL:      base,
			APIKey:       key,
			Model:        s.Model,
			MaxTokens:    c.MaxTokens,
			Temperature:  c.Temperature,
			ExtraHeaders: headers,
		}
	}
	return out
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
