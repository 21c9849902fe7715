package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/port"
	"github.com/JBB13/credit-risk-model/internal/domain/service"
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

const instrumentationName = "github.com/JBB13/credit-risk-model/internal/application/usecase"

// Defaults are the loss assumptions applied when a request leaves them empty.
type Defaults struct {
	LGDPercent decimal.Decimal
	EAD        decimal.Decimal
	Currency   money.Currency
}

// ScoreClients is the use case for scoring a batch of client records.
type ScoreClients struct {
	pipeline  *service.ScoringPipeline
	publisher port.EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
	requests  metric.Int64Counter
	batchRows metric.Int64Histogram
	defaults  Defaults
}

// NewScoreClients creates a new ScoreClients use case. publisher may be nil,
// in which case domain events are dropped.
func NewScoreClients(
	pipeline *service.ScoringPipeline,
	publisher port.EventPublisher,
	defaults Defaults,
	logger *slog.Logger,
) (*ScoreClients, error) {
	meter := otel.Meter(instrumentationName)

	requests, err := meter.Int64Counter("credit_risk_score_requests",
		metric.WithDescription("Scoring requests by outcome"))
	if err != nil {
		return nil, fmt.Errorf("create requests counter: %w", err)
	}
	batchRows, err := meter.Int64Histogram("credit_risk_batch_rows",
		metric.WithDescription("Client rows per scored batch"))
	if err != nil {
		return nil, fmt.Errorf("create batch histogram: %w", err)
	}

	return &ScoreClients{
		pipeline:  pipeline,
		publisher: publisher,
		defaults:  defaults,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		requests:  requests,
		batchRows: batchRows,
	}, nil
}

// Execute resolves the risk parameters, scores the batch and publishes the
// resulting domain events.
func (uc *ScoreClients) Execute(ctx context.Context, req dto.ScoreClientsRequest) (dto.ScoreClientsResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "ScoreClients.Execute",
		trace.WithAttributes(attribute.Int("credit_risk.rows", len(req.Records))))
	defer span.End()

	resp, err := uc.execute(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if IsInvalidInput(err) {
			outcome = "invalid"
		}
	}
	uc.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.ScoreClientsResponse{}, err
	}
	return resp, nil
}

func (uc *ScoreClients) execute(ctx context.Context, req dto.ScoreClientsRequest) (dto.ScoreClientsResponse, error) {
	// 1. Resolve the loss assumptions.
	params, err := uc.resolveParameters(req)
	if err != nil {
		return dto.ScoreClientsResponse{}, err
	}

	// 2. Validate, scale, predict and aggregate.
	assessment, err := uc.pipeline.Score(req.Records, params)
	if err != nil {
		return dto.ScoreClientsResponse{}, fmt.Errorf("score clients: %w", err)
	}
	uc.batchRows.Record(ctx, int64(len(req.Records)))

	// 3. Publish domain events. Delivery is best effort; the result stands.
	if evts := assessment.ClearEvents(); len(evts) > 0 && uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Warn("failed to publish scoring events",
				"assessment_id", assessment.ID(),
				"events", len(evts),
				"error", err,
			)
		}
	}

	resp := dto.FromAssessment(assessment)
	uc.logger.Info("clients scored",
		"assessment_id", resp.AssessmentID,
		"rows", len(resp.Results),
		"total_expected_loss", resp.TotalExpectedLoss,
		"currency", resp.Currency,
	)
	return resp, nil
}

func (uc *ScoreClients) resolveParameters(req dto.ScoreClientsRequest) (model.RiskParameters, error) {
	lgd, err := valueobject.NewLossGivenDefaultFromPercent(uc.defaults.LGDPercent)
	if req.LGDPercent != "" {
		lgd, err = valueobject.ParseLossGivenDefault(req.LGDPercent)
	}
	if err != nil {
		return model.RiskParameters{}, err
	}

	currency := uc.defaults.Currency
	if req.Currency != "" {
		currency, err = money.NewCurrency(req.Currency)
		if err != nil {
			return model.RiskParameters{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	}

	amount := uc.defaults.EAD
	if req.EAD != "" {
		amount, err = decimal.NewFromString(req.EAD)
		if err != nil {
			return model.RiskParameters{}, fmt.Errorf("%w: exposure at default %q is not a number", ErrInvalidParameters, req.EAD)
		}
	}

	return model.NewRiskParameters(lgd, money.New(amount, currency))
}
