package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/pkg/kafka"
)

// Scorer is the use case the request consumer drives.
type Scorer interface {
	Execute(ctx context.Context, req dto.ScoreClientsRequest) (dto.ScoreClientsResponse, error)
}

// RequestHandler scores JSON requests consumed from Kafka. Results leave the
// service as domain events published by the use case.
type RequestHandler struct {
	scorer Scorer
	logger *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(scorer Scorer, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{scorer: scorer, logger: logger}
}

// Handle implements kafka.Handler. Malformed or invalid requests are logged
// and acknowledged so they do not block the partition; other failures are
// returned and the message is left uncommitted.
func (h *RequestHandler) Handle(ctx context.Context, msg kafka.Message) error {
	dec := json.NewDecoder(bytes.NewReader(msg.Value))
	dec.UseNumber()

	var payload dto.ScoreClientsPayload
	if err := dec.Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "discarding malformed score request",
			slog.String("key", string(msg.Key)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	resp, err := h.scorer.Execute(ctx, payload.ToRequest())
	if err != nil {
		if usecase.IsInvalidInput(err) {
			h.logger.WarnContext(ctx, "rejected score request",
				slog.String("request_id", payload.RequestID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		return fmt.Errorf("score request %s: %w", payload.RequestID, err)
	}

	h.logger.InfoContext(ctx, "score request processed",
		slog.String("request_id", payload.RequestID),
		slog.String("assessment_id", resp.AssessmentID.String()),
		slog.String("total_expected_loss", resp.TotalExpectedLoss),
	)
	return nil
}

// NewRequestConsumer wires a RequestHandler to a Kafka consumer on topic.
func NewRequestConsumer(cfg kafka.Config, topic string, scorer Scorer, logger *slog.Logger) *kafka.Consumer {
	h := NewRequestHandler(scorer, logger)
	return kafka.NewConsumer(cfg, topic, h.Handle, logger)
}
