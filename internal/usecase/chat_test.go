package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"chat-relay/internal/config"
	"chat-relay/internal/domain"
	"chat-relay/internal/integrations/anthropic"
	"chat-relay/internal/integrations/openai"
	"chat-relay/internal/integrations/upstream"
)

type fakeCaller struct {
	resp   []byte
	status int
	err    error
	reqs   []domain.OutboundRequest
}

func (f *fakeCaller) Do(_ context.Context, req domain.OutboundRequest) (domain.UpstreamResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return domain.UpstreamResponse{}, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return domain.UpstreamResponse{StatusCode: status, Body: f.resp}, nil
}

type fakeRecorder struct {
	recs []domain.CallRecord
	err  error
}

func (f *fakeRecorder) RecordCall(_ context.Context, rec domain.CallRecord) error {
	f.recs = append(f.recs, rec)
	return f.err
}

const (
	openAIReply    = `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hi there"}}]}`
	anthropicReply = `{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"Hello "},{"type":"tool_use"},{"type":"text","text":"from Claude"}]}`
)

func loadConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()
	cfg, err := config.Load("", func(k string) string { return env[k] })
	require.NoError(t, err)
	return cfg
}

func newTestService(t *testing.T, cfg config.Config, caller Caller, rec CallRecorder) *ChatService {
	t.Helper()
	svc, err := NewChatService(cfg, caller, rec, openai.NewAdapter(), anthropic.NewAdapter())
	require.NoError(t, err)
	return svc
}

func bothKeys(extra map[string]string) map[string]string {
	env := map[string]string{
		"OPENAI_API_KEY":    "sk-openai",
		"ANTHROPIC_API_KEY": "sk-ant",
	}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

func expectChatError(t *testing.T, err error, code ErrorCode, reason string) *Error {
	t.Helper()
	var ucErr *Error
	require.ErrorAs(t, err, &ucErr)
	require.Equal(t, code, ucErr.Code)
	require.Equal(t, reason, ucErr.Reason)
	return ucErr
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestNewChatService_ValidatesDependencies(t *testing.T) {
	cfg := config.Defaults()

	_, err := NewChatService(cfg, nil, NopRecorder{}, openai.NewAdapter())
	require.Error(t, err)

	_, err = NewChatService(cfg, &fakeCaller{}, nil, openai.NewAdapter())
	require.Error(t, err)

	_, err = NewChatService(cfg, &fakeCaller{}, NopRecorder{})
	require.Error(t, err)

	_, err = NewChatService(cfg, &fakeCaller{}, NopRecorder{}, nil)
	require.Error(t, err)
}

func TestChat_DefaultOpenAI_NativeEndpoint(t *testing.T) {
	caller := &fakeCaller{resp: []byte(openAIReply)}
	cfg := loadConfig(t, map[string]string{"OPENAI_API_KEY": "sk-openai", "DEFAULT_PROVIDER": "openai"})
	svc := newTestService(t, cfg, caller, NopRecorder{})

	out, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	require.NoError(t, err)
	require.Equal(t, ChatOutput{Reply: "Hi there", Provider: "openai"}, out)

	require.Len(t, caller.reqs, 1)
	req := caller.reqs[0]
	require.Equal(t, "https://api.openai.com/v1/chat/completions", req.URL)
	require.Equal(t, "Bearer sk-openai", req.Headers.Get("Authorization"))

	body := decodeBody(t, req.Body)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	require.Equal(t, map[string]any{"role": "user", "content": "Hello"}, msgs[0])
}

func TestChat_NoDefaultConfigured_UsesOpenAI(t *testing.T) {
	caller := &fakeCaller{resp: []byte(openAIReply)}
	cfg := loadConfig(t, bothKeys(nil))
	svc := newTestService(t, cfg, caller, NopRecorder{})

	out, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	require.NoError(t, err)
	require.Equal(t, "openai", out.Provider)
}

func TestChat_UsesConfiguredDefault(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	cfg := loadConfig(t, bothKeys(map[string]string{"DEFAULT_PROVIDER": "anthropic"}))
	svc := newTestService(t, cfg, caller, NopRecorder{})

	out, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	require.NoError(t, err)
	require.Equal(t, ChatOutput{Reply: "Hello from Claude", Provider: "anthropic"}, out)
	require.Equal(t, "https://api.anthropic.com/v1/messages", caller.reqs[0].URL)
}

func TestChat_MetadataOverrideWinsOverDefault(t *testing.T) {
	cases := []struct {
		defaultProvider string
		override        string
		reply           string
		wantURL         string
	}{
		{"openai", "anthropic", anthropicReply, "https://api.anthropic.com/v1/messages"},
		{"anthropic", "openai", openAIReply, "https://api.openai.com/v1/chat/completions"},
		{"anthropic", " Anthropic ", anthropicReply, "https://api.anthropic.com/v1/messages"},
	}
	for _, tc := range cases {
		t.Run(tc.defaultProvider+"->"+tc.override, func(t *testing.T) {
			caller := &fakeCaller{resp: []byte(tc.reply)}
			cfg := loadConfig(t, bothKeys(map[string]string{"DEFAULT_PROVIDER": tc.defaultProvider}))
			svc := newTestService(t, cfg, caller, NopRecorder{})

			out, err := svc.Chat(context.Background(), ChatInput{
				Message:  "Hello",
				Metadata: map[string]string{"provider": tc.override},
			})
			require.NoError(t, err)
			require.Equal(t, tc.wantURL, caller.reqs[0].URL)
			require.Equal(t, caller.reqs[0].Provider, out.Provider)
		})
	}
}

func TestChat_MissingCredentials_ConfigError(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	rec := &fakeRecorder{}
	cfg := loadConfig(t, map[string]string{"OPENAI_API_KEY": "sk-openai"})
	svc := newTestService(t, cfg, caller, rec)

	_, err := svc.Chat(context.Background(), ChatInput{
		Message:  "Hi",
		Metadata: map[string]string{"provider": "anthropic"},
	})
	ucErr := expectChatError(t, err, ErrorConfig, "provider_not_configured")
	require.Contains(t, ucErr.Error(), "anthropic")
	require.Empty(t, caller.reqs, "no outbound call may be attempted")
	require.Empty(t, rec.recs)
}

func TestChat_DefaultProviderWithoutKey_ConfigError(t *testing.T) {
	caller := &fakeCaller{}
	cfg := loadConfig(t, map[string]string{"OPENAI_API_KEY": "sk-openai", "DEFAULT_PROVIDER": "anthropic"})
	svc := newTestService(t, cfg, caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hi"})
	expectChatError(t, err, ErrorConfig, "provider_not_configured")
	require.Empty(t, caller.reqs)
}

func TestChat_MissingAdapter_ConfigError(t *testing.T) {
	caller := &fakeCaller{}
	cfg := loadConfig(t, bothKeys(map[string]string{"DEFAULT_PROVIDER": "anthropic"}))
	svc, err := NewChatService(cfg, caller, NopRecorder{}, openai.NewAdapter())
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), ChatInput{Message: "Hi"})
	expectChatError(t, err, ErrorConfig, "provider_not_supported")
	require.Empty(t, caller.reqs)
}

func TestChat_ValidationError_NoCall(t *testing.T) {
	caller := &fakeCaller{}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{Message: "   "})
	expectChatError(t, err, ErrorInvalidInput, "empty_message")

	_, err = svc.Chat(context.Background(), ChatInput{Message: "Hi", Metadata: map[string]string{"provider": "gemini"}})
	expectChatError(t, err, ErrorInvalidInput, "unknown_provider")
	require.Empty(t, caller.reqs)
}

func TestChat_ProxySubstitutionIsProviderAgnostic(t *testing.T) {
	cfg := loadConfig(t, bothKeys(map[string]string{"AGENTCOST_PROXY_URL": "https://proxy.agentcost.dev/v1/"}))

	for _, p := range []struct {
		name  string
		reply string
		path  string
	}{
		{"openai", openAIReply, "/v1/chat/completions"},
		{"anthropic", anthropicReply, "/v1/messages"},
	} {
		t.Run(p.name, func(t *testing.T) {
			caller := &fakeCaller{resp: []byte(p.reply)}
			svc := newTestService(t, cfg, caller, NopRecorder{})

			_, err := svc.Chat(context.Background(), ChatInput{Message: "Hi", Metadata: map[string]string{"provider": p.name}})
			require.NoError(t, err)

			u, err := url.Parse(caller.reqs[0].URL)
			require.NoError(t, err)
			require.Equal(t, "proxy.agentcost.dev", u.Host)
			require.Equal(t, p.path, u.Path)
		})
	}
}

func TestChat_ExtraHeadersNeverOverrideAuth(t *testing.T) {
	cfg := loadConfig(t, bothKeys(map[string]string{
		"AGENTCOST_HEADERS": `{"X-Agent-Name":"my-agent","X-Customer-Id":"cust_123","authorization":"Bearer evil","x-api-key":"evil","Anthropic-Version":"1999"}`,
	}))

	caller := &fakeCaller{resp: []byte(openAIReply)}
	svc := newTestService(t, cfg, caller, NopRecorder{})
	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hi"})
	require.NoError(t, err)
	h := caller.reqs[0].Headers
	require.Equal(t, "Bearer sk-openai", h.Get("Authorization"))
	require.Equal(t, "my-agent", h.Get("X-Agent-Name"))
	require.Equal(t, "cust_123", h.Get("X-Customer-Id"))
	require.Len(t, h.Values("Authorization"), 1)

	caller = &fakeCaller{resp: []byte(anthropicReply)}
	svc = newTestService(t, cfg, caller, NopRecorder{})
	_, err = svc.Chat(context.Background(), ChatInput{Message: "Hi", Metadata: map[string]string{"provider": "anthropic"}})
	require.NoError(t, err)
	h = caller.reqs[0].Headers
	require.Equal(t, "sk-ant", h.Get("X-Api-Key"))
	require.Equal(t, "2023-06-01", h.Get("Anthropic-Version"))
	require.Equal(t, "my-agent", h.Get("X-Agent-Name"))
	require.Len(t, h.Values("X-Api-Key"), 1)
}

func TestChat_MetadataAttributionHeaders(t *testing.T) {
	cfg := loadConfig(t, bothKeys(map[string]string{"AGENTCOST_HEADERS": `{"x-agent-name":"from-env"}`}))
	caller := &fakeCaller{resp: []byte(openAIReply)}
	svc := newTestService(t, cfg, caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{
		Message: "Hi",
		Metadata: map[string]string{
			"provider":    "openai",
			"agent_name":  "from-request",
			"customer_id": "cust_9",
		},
	})
	require.NoError(t, err)
	h := caller.reqs[0].Headers
	require.Equal(t, []string{"from-env"}, h.Values("X-Agent-Name"), "process-wide headers win over metadata")
	require.Equal(t, "cust_9", h.Get("X-Customer-Id"))
	require.Empty(t, h.Get("X-Provider"))
}

func TestChat_MetadataCannotReplaceProxyKey(t *testing.T) {
	cfg := loadConfig(t, bothKeys(map[string]string{
		"AGENTCOST_PROXY_URL": "https://proxy.agentcost.dev/v1",
		"AGENTCOST_API_KEY":   "ac-secret",
	}))
	caller := &fakeCaller{resp: []byte(openAIReply)}
	svc := newTestService(t, cfg, caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{
		Message:  "Hi",
		Metadata: map[string]string{"api_key": "user-supplied"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ac-secret"}, caller.reqs[0].Headers.Values("X-Api-Key"))
}

func TestChat_UnsendableMetadataIsSkipped(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	out, err := svc.Chat(context.Background(), ChatInput{
		Message: "Hi",
		Metadata: map[string]string{
			"provider":   "anthropic",
			"agent.name": "x",
			"agent name": "spaced",
			"trace":      "a\r\nEvil: 1",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "anthropic", out.Provider)
	require.Len(t, caller.reqs, 1)

	h := caller.reqs[0].Headers
	require.Equal(t, "x", h.Get("X-Agent.name"))
	require.Empty(t, h.Get("X-Trace"))
	require.Empty(t, h.Get("Evil"))
	for name := range h {
		require.NotContains(t, name, " ")
	}
}

func TestChat_AnthropicModelOverride(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{
		Message: "Hi",
		Metadata: map[string]string{
			"provider":        "anthropic",
			"anthropic_model": "claude-3-5-sonnet-latest",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "claude-3-5-sonnet-latest", decodeBody(t, caller.reqs[0].Body)["model"])
	require.Empty(t, caller.reqs[0].Headers.Get("X-Anthropic-Model"))

	caller = &fakeCaller{resp: []byte(openAIReply)}
	svc = newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})
	_, err = svc.Chat(context.Background(), ChatInput{
		Message:  "Hi",
		Metadata: map[string]string{"anthropic_model": "claude-3-5-sonnet-latest"},
	})
	require.NoError(t, err)
	require.Equal(t, "gpt-3.5-turbo", decodeBody(t, caller.reqs[0].Body)["model"])
}

func TestChat_AnthropicProxyURL(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	cfg := loadConfig(t, bothKeys(map[string]string{
		"DEFAULT_PROVIDER":    "anthropic",
		"ANTHROPIC_BASE_URL":  "https://native.example.com",
		"ANTHROPIC_PROXY_URL": "https://claude-proxy.example.com/",
	}))
	svc := newTestService(t, cfg, caller, NopRecorder{})
	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hi"})
	require.NoError(t, err)
	require.Equal(t, "https://claude-proxy.example.com/v1/messages", caller.reqs[0].URL)

	caller = &fakeCaller{resp: []byte(anthropicReply)}
	cfg = loadConfig(t, bothKeys(map[string]string{
		"DEFAULT_PROVIDER":    "anthropic",
		"ANTHROPIC_PROXY_URL": "https://claude-proxy.example.com",
		"AGENTCOST_PROXY_URL": "https://proxy.agentcost.dev/v1",
	}))
	svc = newTestService(t, cfg, caller, NopRecorder{})
	_, err = svc.Chat(context.Background(), ChatInput{Message: "Hi"})
	require.NoError(t, err)
	require.Equal(t, "https://proxy.agentcost.dev/v1/messages", caller.reqs[0].URL)
}

func TestChat_OpenAIPreservesHistoryOrder(t *testing.T) {
	caller := &fakeCaller{resp: []byte(openAIReply)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	history := []domain.ChatMessage{
		{Role: "system", Content: "Be brief."},
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
	}
	_, err := svc.Chat(context.Background(), ChatInput{Message: "five", History: history})
	require.NoError(t, err)

	var body struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(caller.reqs[0].Body, &body))
	require.Equal(t, append(history, domain.ChatMessage{Role: "user", Content: "five"}), body.Messages)
}

func TestChat_AnthropicSeparatesSystem(t *testing.T) {
	caller := &fakeCaller{resp: []byte(anthropicReply)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{
		Message: "three",
		History: []domain.ChatMessage{
			{Role: "system", Content: "Be brief."},
			{Role: "user", Content: "one"},
			{Role: "assistant", Content: "two"},
		},
		Metadata: map[string]string{"provider": "anthropic"},
	})
	require.NoError(t, err)

	var body struct {
		System   string               `json:"system"`
		Messages []domain.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(caller.reqs[0].Body, &body))
	require.Equal(t, "Be brief.", body.System)
	require.Equal(t, []domain.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
	}, body.Messages)
}

func TestChat_HTTPScenario_OpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-openai", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Len(t, decodeBody(t, raw)["messages"], 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openAIReply))
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	cfg := loadConfig(t, map[string]string{"OPENAI_API_KEY": "sk-openai", "OPENAI_BASE_URL": srv.URL})
	svc := newTestService(t, cfg, upstream.NewClient(2*time.Second), rec)

	out, err := svc.Chat(context.Background(), ChatInput{Message: "Hello", CorrelationID: "corr-1"})
	require.NoError(t, err)
	require.Equal(t, ChatOutput{Reply: "Hi there", Provider: "openai"}, out)

	require.Len(t, rec.recs, 1)
	require.Equal(t, "corr-1", rec.recs[0].CorrelationID)
	require.Equal(t, domain.OutcomeSuccess, rec.recs[0].Outcome)
	require.Equal(t, http.StatusOK, rec.recs[0].UpstreamStatus)
}

func TestChat_Upstream429_NoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	cfg := loadConfig(t, map[string]string{"OPENAI_API_KEY": "sk-openai", "AGENTCOST_PROXY_URL": srv.URL})
	svc := newTestService(t, cfg, upstream.NewClient(2*time.Second), rec)

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hello", CorrelationID: "corr-429"})
	ucErr := expectChatError(t, err, ErrorUpstream, "upstream_status")
	require.Equal(t, http.StatusTooManyRequests, ucErr.UpstreamStatus)
	require.Equal(t, `{"error":"rate limited"}`, ucErr.UpstreamBody)
	require.EqualValues(t, 1, hits.Load(), "upstream must be called exactly once")

	require.Len(t, rec.recs, 1)
	require.Equal(t, domain.OutcomeFailure, rec.recs[0].Outcome)
	require.Equal(t, http.StatusTooManyRequests, rec.recs[0].UpstreamStatus)
}

func TestChat_MalformedResponse(t *testing.T) {
	caller := &fakeCaller{resp: []byte(`not-json`)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	ucErr := expectChatError(t, err, ErrorUpstream, "malformed_response")
	require.Equal(t, http.StatusOK, ucErr.UpstreamStatus)
	require.Equal(t, "not-json", ucErr.UpstreamBody)
}

func TestChat_MalformedResponseKeepsActualStatus(t *testing.T) {
	caller := &fakeCaller{resp: []byte(`<html>`), status: http.StatusNonAuthoritativeInfo}
	rec := &fakeRecorder{}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, rec)

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hello", CorrelationID: "corr-203"})
	ucErr := expectChatError(t, err, ErrorUpstream, "malformed_response")
	require.Equal(t, http.StatusNonAuthoritativeInfo, ucErr.UpstreamStatus)
	require.Len(t, rec.recs, 1)
	require.Equal(t, http.StatusNonAuthoritativeInfo, rec.recs[0].UpstreamStatus)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("a", maxDiagnosticBody-1) + "é" + "tail"
	got := truncate(s)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("a", maxDiagnosticBody-1), got)

	require.Equal(t, "short", truncate("short"))
	require.Len(t, truncate(strings.Repeat("b", maxDiagnosticBody+10)), maxDiagnosticBody)
}

func TestChat_UnexpectedShape(t *testing.T) {
	caller := &fakeCaller{resp: []byte(`{"choices":[]}`)}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, NopRecorder{})

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	expectChatError(t, err, ErrorUpstream, "malformed_response")
}

func TestChat_TransportError(t *testing.T) {
	caller := &fakeCaller{err: errors.New("dial tcp: connection refused")}
	rec := &fakeRecorder{}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, rec)

	_, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	ucErr := expectChatError(t, err, ErrorUpstream, "upstream_unreachable")
	require.Zero(t, ucErr.UpstreamStatus)
	require.Len(t, rec.recs, 1)
	require.Zero(t, rec.recs[0].UpstreamStatus)
}

func TestChat_RecorderFailureDoesNotAffectReply(t *testing.T) {
	caller := &fakeCaller{resp: []byte(openAIReply)}
	rec := &fakeRecorder{err: errors.New("dynamodb down")}
	svc := newTestService(t, loadConfig(t, bothKeys(nil)), caller, rec)

	out, err := svc.Chat(context.Background(), ChatInput{Message: "Hello"})
	require.NoError(t, err)
	require.Equal(t, "Hi there", out.Reply)
	require.Len(t, rec.recs, 1)
}
