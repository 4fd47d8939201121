package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"chat-relay/internal/config"
	"chat-relay/internal/domain"
	"chat-relay/internal/observability"
)

const maxDiagnosticBody = 4096

// Adapter translates between the relay's envelope and one vendor's API.
type Adapter interface {
	Name() string
	BuildRequest(cfg domain.ProviderConfig, env domain.RequestEnvelope) (domain.OutboundRequest, error)
	ParseResponse(raw []byte) (string, error)
}

// Caller performs a single upstream round trip.
type Caller interface {
	Do(ctx context.Context, req domain.OutboundRequest) (domain.UpstreamResponse, error)
}

// CallRecorder persists audit records of upstream calls.
type CallRecorder interface {
	RecordCall(ctx context.Context, rec domain.CallRecord) error
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type responseBodyer interface {
	ResponseBody() string
}

// NopRecorder discards call records.
type NopRecorder struct{}

func (NopRecorder) RecordCall(context.Context, domain.CallRecord) error { return nil }

type ChatOutput struct {
	Reply    string
	Provider string
}

// ChatService routes normalized conversations to the configured providers.
// All fields are fixed at construction, so one instance serves concurrent
// requests without locking.
type ChatService struct {
	providers       map[string]domain.ProviderConfig
	adapters        map[string]Adapter
	defaultProvider string
	proxyURL        string
	maxMessageLen   int
	caller          Caller
	recorder        CallRecorder
	now             func() time.Time
}

func NewChatService(cfg config.Config, caller Caller, recorder CallRecorder, adapters ...Adapter) (*ChatService, error) {
	if caller == nil {
		return nil, errors.New("usecase: caller must not be nil")
	}
	if recorder == nil {
		return nil, errors.New("usecase: call recorder must not be nil")
	}
	if len(adapters) == 0 {
		return nil, errors.New("usecase: at least one adapter is required")
	}
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			return nil, errors.New("usecase: adapter must not be nil")
		}
		byName[a.Name()] = a
	}
	return &ChatService{
		providers:       cfg.Providers(),
		adapters:        byName,
		defaultProvider: cfg.DefaultProvider,
		proxyURL:        cfg.ProxyURL,
		maxMessageLen:   cfg.MaxMessageLength,
		caller:          caller,
		recorder:        recorder,
		now:             time.Now,
	}, nil
}

// Chat validates in, forwards it to the resolved provider and returns the reply.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	env, err := NormalizeChat(in, s.maxMessageLen)
	if err != nil {
		return ChatOutput{}, err
	}

	cfg, adapter, rerr := s.resolve(env)
	if rerr != nil {
		return ChatOutput{}, rerr
	}

	out, err := adapter.BuildRequest(cfg, env)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "build_request_error", err)
	}

	start := s.now()
	res, err := s.caller.Do(ctx, out)
	elapsed := s.now().Sub(start)
	if err != nil {
		status, body := upstreamDetails(err)
		s.record(ctx, in.CorrelationID, cfg.Name, domain.OutcomeFailure, status, start, elapsed)
		reason := "upstream_status"
		if status == 0 {
			reason = "upstream_unreachable"
		}
		return ChatOutput{}, newUpstreamError(reason, status, body, err)
	}

	content, err := adapter.ParseResponse(res.Body)
	if err != nil {
		s.record(ctx, in.CorrelationID, cfg.Name, domain.OutcomeFailure, res.StatusCode, start, elapsed)
		return ChatOutput{}, newUpstreamError("malformed_response", res.StatusCode, truncate(string(res.Body)), err)
	}

	s.record(ctx, in.CorrelationID, cfg.Name, domain.OutcomeSuccess, res.StatusCode, start, elapsed)
	reply := domain.NormalizedReply{Content: content, ProviderUsed: cfg.Name}
	return ChatOutput{Reply: reply.Content, Provider: reply.ProviderUsed}, nil
}

// resolve picks the provider for env and returns its effective configuration:
// proxy base URL substituted when configured, the per-request Anthropic model
// applied and request attribution merged under the process-wide headers.
func (s *ChatService) resolve(env domain.RequestEnvelope) (domain.ProviderConfig, Adapter, *Error) {
	name := env.Provider()
	if name == "" {
		name = s.defaultProvider
	}
	if name == "" {
		name = domain.ProviderOpenAI
	}

	cfg, ok := s.providers[name]
	if !ok {
		return domain.ProviderConfig{}, nil, newError(ErrorConfig, "provider_not_configured",
			fmt.Errorf("no credentials configured for provider %q", name))
	}
	adapter, ok := s.adapters[name]
	if !ok {
		return domain.ProviderConfig{}, nil, newError(ErrorConfig, "provider_not_supported",
			fmt.Errorf("no adapter registered for provider %q", name))
	}

	if s.proxyURL != "" {
		cfg.BaseURL = s.proxyURL
	}
	if name == domain.ProviderAnthropic {
		if m := strings.TrimSpace(env.Metadata[domain.MetadataAnthropicModel]); m != "" {
			cfg.Model = m
		}
	}

	// Process-wide headers win over request metadata.
	headers := make(map[string]string, len(cfg.ExtraHeaders)+len(env.Metadata))
	for k, v := range attributionHeaders(env.Metadata) {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	for k, v := range cfg.ExtraHeaders {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	cfg.ExtraHeaders = headers
	return cfg, adapter, nil
}

func (s *ChatService) record(ctx context.Context, correlationID, provider, outcome string, status int, start time.Time, elapsed time.Duration) {
	observability.ObserveProviderCall(provider, outcome, status, elapsed)
	slog.InfoContext(ctx, "upstream call",
		"correlation_id", correlationID,
		"provider", provider,
		"outcome", outcome,
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	)

	rec := domain.CallRecord{
		CorrelationID:  correlationID,
		Provider:       provider,
		Outcome:        outcome,
		UpstreamStatus: status,
		Duration:       elapsed,
		Timestamp:      start.UTC(),
	}
	if err := s.recorder.RecordCall(ctx, rec); err != nil {
		slog.WarnContext(ctx, "failed to record upstream call", "correlation_id", correlationID, "err", err)
	}
}

func upstreamDetails(err error) (int, string) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, ""
	}
	body := ""
	var bodyErr responseBodyer
	if errors.As(err, &bodyErr) {
		body = bodyErr.ResponseBody()
	}
	return statusErr.HTTPStatusCode(), truncate(body)
}

// truncate cuts s to at most maxDiagnosticBody bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxDiagnosticBody {
		return s
	}
	i := maxDiagnosticBody
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}
