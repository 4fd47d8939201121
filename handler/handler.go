package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"chat-relay/internal/domain"
	"chat-relay/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// ChatUseCase is the behaviour the handler needs from the relay service.
type ChatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type chatRequest struct {
	Message  string               `json:"message"`
	History  []domain.ChatMessage `json:"history,omitempty"`
	Metadata map[string]any       `json:"metadata,omitempty"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

type errorResponse struct {
	Error          string `json:"error"`
	Reason         string `json:"reason,omitempty"`
	Message        string `json:"message,omitempty"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	Details        string `json:"details,omitempty"`
}

// Handler serves POST /chat for API Gateway and plain net/http.
type Handler struct {
	uc ChatUseCase
}

func NewHandler(uc ChatUseCase) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	return &Handler{uc: uc}, nil
}

// Handle processes one API Gateway proxy event. Failures are reported in the
// response; the returned error is always nil so Lambda never retries.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := headerValue(event.Headers, correlationHeader)
	if corrID == "" {
		corrID = newCorrelationID()
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return invalidBody(corrID, "invalid_encoding"), nil
		}
		body = string(decoded)
	}

	var req chatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return invalidBody(corrID, "invalid_json"), nil
	}

	out, err := h.uc.Chat(ctx, usecase.ChatInput{
		Message:       req.Message,
		History:       req.History,
		Metadata:      stringifyMetadata(req.Metadata),
		CorrelationID: corrID,
	})
	if err != nil {
		return errorResult(ctx, corrID, err), nil
	}

	return jsonResponse(http.StatusOK, corrID, chatResponse{Reply: out.Reply, Provider: out.Provider}), nil
}

func invalidBody(corrID, reason string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusBadRequest, corrID, errorResponse{
		Error:   string(usecase.ErrorInvalidInput),
		Reason:  reason,
		Message: "request body must be a JSON object",
	})
}

func errorResult(ctx context.Context, corrID string, err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		slog.ErrorContext(ctx, "unexpected chat failure", "correlation_id", corrID, "err", err)
		return jsonResponse(http.StatusInternalServerError, corrID, errorResponse{
			Error:   string(usecase.ErrorInternal),
			Message: "internal error",
		})
	}

	resp := errorResponse{Error: string(ucErr.Code), Reason: ucErr.Reason}
	var status int
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		status = http.StatusBadRequest
		resp.Message = "invalid request: " + ucErr.Reason
	case usecase.ErrorConfig:
		status = http.StatusInternalServerError
		resp.Message = "provider is not configured"
		if ucErr.Err != nil {
			resp.Message = ucErr.Err.Error()
		}
	case usecase.ErrorUpstream:
		status = http.StatusBadGateway
		resp.Message = upstreamMessage(ucErr)
		resp.UpstreamStatus = ucErr.UpstreamStatus
		resp.Details = ucErr.UpstreamBody
	default:
		status = http.StatusInternalServerError
		resp.Error = string(usecase.ErrorInternal)
		resp.Message = "internal error"
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "chat request failed",
		"correlation_id", corrID,
		"code", ucErr.Code,
		"reason", ucErr.Reason,
		"err", err,
	)
	return jsonResponse(status, corrID, resp)
}

func upstreamMessage(e *usecase.Error) string {
	switch {
	case e.Reason == "malformed_response":
		return "upstream provider returned an unreadable response"
	case e.UpstreamStatus == 0:
		return "upstream provider unreachable"
	default:
		return fmt.Sprintf("upstream provider returned status %d", e.UpstreamStatus)
	}
}

func jsonResponse(status int, corrID string, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(body),
	}
}

// stringifyMetadata flattens JSON metadata values to strings. Nulls are dropped.
func stringifyMetadata(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
