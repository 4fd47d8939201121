package usecase

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"

	"chat-relay/internal/domain"
)

// ChatInput is the raw inbound chat payload.
type ChatInput struct {
	Message       string
	History       []domain.ChatMessage
	Metadata      map[string]string
	CorrelationID string
}

// NormalizeChat validates in and turns it into a RequestEnvelope. The new
// message is appended to the supplied history as the final user turn; with no
// history the conversation is that single message. maxLen bounds the message
// in runes; zero disables the bound.
func NormalizeChat(in ChatInput, maxLen int) (domain.RequestEnvelope, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return domain.RequestEnvelope{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if maxLen > 0 && utf8.RuneCountInString(message) > maxLen {
		return domain.RequestEnvelope{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}

	meta, err := normalizeMetadata(in.Metadata)
	if err != nil {
		return domain.RequestEnvelope{}, err
	}

	messages := make([]domain.ChatMessage, 0, len(in.History)+1)
	for _, m := range in.History {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if !domain.ValidRole(role) {
			return domain.RequestEnvelope{}, newError(ErrorInvalidInput, "unknown_role", nil)
		}
		if strings.TrimSpace(m.Content) == "" {
			return domain.RequestEnvelope{}, newError(ErrorInvalidInput, "empty_history_content", nil)
		}
		messages = append(messages, domain.ChatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: message})

	return domain.RequestEnvelope{Messages: messages, Metadata: meta}, nil
}

// normalizeMetadata checks the provider override and drops empty keys. Other
// entries are kept as given; attributionHeaders decides which can be sent.
func normalizeMetadata(in map[string]string) (map[string]string, *Error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if key == domain.MetadataProvider {
			p := strings.ToLower(strings.TrimSpace(v))
			if p == "" {
				continue
			}
			if !domain.KnownProvider(p) {
				return nil, newError(ErrorInvalidInput, "unknown_provider", nil)
			}
			v = p
		}
		out[key] = v
	}
	return out, nil
}

// attributionHeaders maps metadata keys the relay does not consume to X-
// headers, e.g. agent_name becomes X-Agent-Name. Entries that cannot be sent
// as a header are skipped.
func attributionHeaders(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		if k == domain.MetadataProvider || k == domain.MetadataAnthropicModel || v == "" {
			continue
		}
		parts := strings.FieldsFunc(k, func(r rune) bool { return r == '_' || r == '-' })
		if len(parts) == 0 {
			continue
		}
		for i, p := range parts {
			r, size := utf8.DecodeRuneInString(p)
			parts[i] = strings.ToUpper(string(r)) + strings.ToLower(p[size:])
		}
		name := "X-" + strings.Join(parts, "-")
		if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(v) {
			slog.Debug("skipping metadata that is not a valid header", "key", k)
			continue
		}
		out[name] = v
	}
	return out
}
