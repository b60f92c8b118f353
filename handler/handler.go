package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"sneaker-fulfillment/internal/domain"
	"sneaker-fulfillment/internal/metrics"
	"sneaker-fulfillment/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	maxBodyBytes      = 1 << 20

	outcomeOK        = "ok"
	outcomeMalformed = "malformed"
	intentUnknown    = "unknown"
)

type FulfillUseCase interface {
	Fulfill(ctx context.Context, req domain.WebhookRequest) (domain.WebhookResponse, error)
}

// Handler is the webhook boundary: it decodes platform payloads, runs the
// fulfillment and always answers 200 with a fulfillment body.
type Handler struct {
	uc      FulfillUseCase
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Handler)

func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		h.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func NewHandler(uc FulfillUseCase, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	h := &Handler{uc: uc, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h, nil
}

// Handle serves the webhook behind API Gateway.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return h.respond(corrID, malformedReply(err)), nil
		}
		body = decoded
	}

	return h.respond(corrID, h.fulfill(ctx, corrID, body)), nil
}

func (h *Handler) respond(corrID string, out domain.WebhookResponse) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(out)
	if err != nil {
		h.log.Error("failed to encode fulfillment response", "correlation_id", corrID, "err", err)
		payload = []byte(`{"fulfillmentText":"Error: failed to encode response"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(payload),
	}
}

// fulfill never fails: every error becomes conversational text.
func (h *Handler) fulfill(ctx context.Context, corrID string, body []byte) domain.WebhookResponse {
	start := time.Now()

	req, err := decodeRequest(body)
	if err != nil {
		h.log.WarnContext(ctx, "malformed webhook request", "correlation_id", corrID, "err", err)
		h.metrics.ObserveTurn(intentUnknown, intentUnknown, outcomeMalformed, time.Since(start).Seconds())
		return malformedReply(err)
	}

	intent := req.IntentName()
	stage, _, known := usecase.Route(intent)
	intentLabel, stageLabel := intent, string(stage)
	if !known {
		intentLabel, stageLabel = intentUnknown, intentUnknown
	}

	out, err := h.uc.Fulfill(ctx, req)
	outcome := outcomeOK
	if err != nil {
		outcome = string(errorCode(err))
		out = domain.WebhookResponse{FulfillmentText: replyForError(err)}
		h.log.InfoContext(ctx, "turn ended with user-facing error",
			"correlation_id", corrID, "intent", intent, "err", err)
	} else {
		h.log.InfoContext(ctx, "turn fulfilled",
			"correlation_id", corrID, "intent", intent, "contexts", len(out.OutputContexts))
	}
	h.metrics.ObserveTurn(intentLabel, stageLabel, outcome, time.Since(start).Seconds())
	return out
}

func decodeRequest(body []byte) (domain.WebhookRequest, error) {
	var req domain.WebhookRequest
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return req, errors.New("empty request body")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, err
	}
	return req, nil
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
