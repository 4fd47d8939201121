package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
	"gopkg.in/yaml.v3"

	"chat-relay/internal/domain"
)

// Env looks up an environment variable.
type Env func(key string) string

// TokenGetter reads an API token from a secret store.
type TokenGetter interface {
	GetToken(ctx context.Context, name string) (string, error)
}

// Load builds the configuration from, in order:
//  1. built-in defaults
//  2. the YAML file at path, or at RELAY_CONFIG when path is empty
//  3. environment variables
//
// A nil env reads the process environment.
func Load(path string, env Env) (Config, error) {
	if env == nil {
		env = os.Getenv
	}
	cfg := Defaults()

	if path == "" {
		path = env("RELAY_CONFIG")
	}
	if path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	applyEnv(&cfg, env)
	normalize(&cfg)
	return cfg, nil
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config, env Env) {
	setString(&cfg.OpenAI.APIKey, env("OPENAI_API_KEY"))
	setString(&cfg.OpenAI.BaseURL, env("OPENAI_BASE_URL"))
	setString(&cfg.OpenAI.Model, env("OPENAI_MODEL"))
	setString(&cfg.Anthropic.APIKey, env("ANTHROPIC_API_KEY"))
	setString(&cfg.Anthropic.BaseURL, env("ANTHROPIC_BASE_URL"))
	setString(&cfg.Anthropic.ProxyURL, env("ANTHROPIC_PROXY_URL"))
	setString(&cfg.Anthropic.Model, env("ANTHROPIC_MODEL"))
	setString(&cfg.DefaultProvider, env("DEFAULT_PROVIDER"))
	setString(&cfg.ProxyURL, env("AGENTCOST_PROXY_URL"))
	setString(&cfg.ProxyAPIKey, env("AGENTCOST_API_KEY"))
	setString(&cfg.ParamPrefix, env("PARAM_PREFIX"))
	setString(&cfg.AuditTable, env("AUDIT_TABLE"))

	if raw := strings.TrimSpace(env("AGENTCOST_HEADERS")); raw != "" {
		headers, err := parseHeaders(raw)
		if err != nil {
			slog.Warn("ignoring AGENTCOST_HEADERS", "err", err)
		} else {
			cfg.ExtraHeaders = headers
		}
	}

	setInt(&cfg.TimeoutSeconds, env, "REQUEST_TIMEOUT_SECONDS")
	setInt(&cfg.MaxMessageLength, env, "MAX_MESSAGE_LENGTH")
	setInt(&cfg.MaxTokens, env, "MAX_TOKENS")
	setInt(&cfg.Port, env, "PORT")
	if v := strings.TrimSpace(env("TEMPERATURE")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("ignoring invalid environment value", "key", "TEMPERATURE", "value", v)
		} else {
			cfg.Temperature = f
		}
	}
}

// parseHeaders decodes a JSON object of header names to values. Non-string
// values are rendered with their JSON text. Entries that cannot be sent as an
// HTTP header are logged and dropped.
func parseHeaders(raw string) (map[string]string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("config: parse headers: %w", err)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		k = strings.TrimSpace(k)
		if k == "" || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("config: header %q: %w", k, err)
		}
		out[k] = string(b)
	}
	return validHeaders(out), nil
}

func validHeaders(in map[string]string) map[string]string {
	for k, v := range in {
		if !httpguts.ValidHeaderFieldName(k) || !httpguts.ValidHeaderFieldValue(v) {
			slog.Warn("dropping invalid extra header", "header", k)
			delete(in, k)
		}
	}
	return in
}

func normalize(cfg *Config) {
	cfg.DefaultProvider = strings.ToLower(strings.TrimSpace(cfg.DefaultProvider))
	if !domain.KnownProvider(cfg.DefaultProvider) {
		if cfg.DefaultProvider != "" {
			slog.Warn("unknown DEFAULT_PROVIDER, falling back to openai", "value", cfg.DefaultProvider)
		}
		cfg.DefaultProvider = domain.ProviderOpenAI
	}
	cfg.ProxyURL = strings.TrimRight(strings.TrimSpace(cfg.ProxyURL), "/")
	cfg.OpenAI.ProxyURL = strings.TrimRight(strings.TrimSpace(cfg.OpenAI.ProxyURL), "/")
	cfg.Anthropic.ProxyURL = strings.TrimRight(strings.TrimSpace(cfg.Anthropic.ProxyURL), "/")
	cfg.ProxyAPIKey = strings.TrimSpace(cfg.ProxyAPIKey)
	if len(cfg.ExtraHeaders) > 0 {
		cfg.ExtraHeaders = validHeaders(cfg.ExtraHeaders)
	}
	cfg.ParamPrefix = strings.TrimRight(strings.TrimSpace(cfg.ParamPrefix), "/")
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = defaultMaxMessageLength
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.OpenAI.BaseURL) == "" {
		cfg.OpenAI.BaseURL = defaultOpenAIBaseURL
	}
	if strings.TrimSpace(cfg.Anthropic.BaseURL) == "" {
		cfg.Anthropic.BaseURL = defaultAnthropicBaseURL
	}
	if strings.TrimSpace(cfg.OpenAI.Model) == "" {
		cfg.OpenAI.Model = defaultOpenAIModel
	}
	if strings.TrimSpace(cfg.Anthropic.Model) == "" {
		cfg.Anthropic.Model = defaultAnthropicModel
	}
}

// ResolveSecrets fills API keys missing from the environment with tokens
// stored under <ParamPrefix>/<provider>-api-key. A lookup failure leaves the
// provider disabled; it is logged and never returned.
func ResolveSecrets(ctx context.Context, cfg Config, tokens TokenGetter) Config {
	if tokens == nil || cfg.ParamPrefix == "" {
		return cfg
	}
	for _, s := range []struct {
		name string
		dst  *ProviderSettings
	}{
		{domain.ProviderOpenAI, &cfg.OpenAI},
		{domain.ProviderAnthropic, &cfg.Anthropic},
	} {
		if strings.TrimSpace(s.dst.APIKey) != "" {
			continue
		}
		param := cfg.ParamPrefix + "/" + s.name + "-api-key"
		tok, err := tokens.GetToken(ctx, param)
		if err != nil {
			slog.Warn("provider key unavailable", "provider", s.name, "param", param, "err", err)
			continue
		}
		s.dst.APIKey = tok
	}
	return cfg
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env Env, key string) {
	v := strings.TrimSpace(env(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", key, "value", v)
		return
	}
	*dst = n
}
