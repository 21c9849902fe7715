package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/event"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/port"
	"github.com/JBB13/credit-risk-model/internal/domain/service"
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/events"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// --- Mock implementations ---

type identityScaler struct{}

func (identityScaler) Transform(m model.FeatureMatrix) (model.FeatureMatrix, error) {
	return m.Clone(), nil
}

type fixedClassifier struct {
	pds []float64
}

func (c fixedClassifier) PredictProbability(m model.FeatureMatrix) ([]float64, error) {
	if c.pds != nil {
		return c.pds, nil
	}
	out := make([]float64, m.Rows())
	for i := range out {
		out[i] = 0.1
	}
	return out, nil
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Tests ---

func testDefaults() usecase.Defaults {
	return usecase.Defaults{
		LGDPercent: decimal.NewFromInt(60),
		EAD:        decimal.NewFromInt(10000),
		Currency:   money.USD,
	}
}

func newScoreClients(t *testing.T, classifier fixedClassifier, publisher *mockEventPublisher) *usecase.ScoreClients {
	t.Helper()
	pipeline := service.NewScoringPipeline(model.DefaultSchema(), identityScaler{}, classifier)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var pub port.EventPublisher
	if publisher != nil {
		pub = publisher
	}
	uc, err := usecase.NewScoreClients(pipeline, pub, testDefaults(), logger)
	require.NoError(t, err)
	return uc
}

func TestScoreClients_Execute(t *testing.T) {
	t.Run("uses defaults for empty parameters", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newScoreClients(t, fixedClassifier{}, publisher)

		resp, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{
			Records: []model.ClientRecord{model.SampleRecord()},
		})

		require.NoError(t, err)
		assert.Equal(t, "60", resp.LGDPercent)
		assert.Equal(t, "10000.00", resp.EAD)
		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, "600.00", resp.TotalExpectedLoss)
		assert.Equal(t, "$600.00", resp.TotalExpectedLossDisplay)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "0.6", resp.Results[0].LGD)
		assert.Equal(t, "600.00", resp.Results[0].ExpectedLoss)
		assert.Equal(t, "MEDIUM", resp.Results[0].RiskLevel)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.EventTypeScoringCompleted, publisher.publishedEvents[0].EventType())
		assert.Equal(t, resp.AssessmentID, publisher.publishedEvents[0].AggregateID())
	})

	t.Run("request parameters override defaults", func(t *testing.T) {
		uc := newScoreClients(t, fixedClassifier{pds: []float64{0.2, 0.05}}, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{
			Records:    []model.ClientRecord{model.SampleRecord(), model.SampleRecord()},
			LGDPercent: "50",
			EAD:        "20000",
			Currency:   "EUR",
		})

		require.NoError(t, err)
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, "2000.00", resp.Results[0].ExpectedLoss)
		assert.Equal(t, "500.00", resp.Results[1].ExpectedLoss)
		assert.Equal(t, "2500.00", resp.TotalExpectedLoss)
		assert.Equal(t, "€2,500.00", resp.TotalExpectedLossDisplay)
	})

	t.Run("currency code case is normalized", func(t *testing.T) {
		uc := newScoreClients(t, fixedClassifier{}, nil)

		resp, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{
			Records:  []model.ClientRecord{model.SampleRecord()},
			Currency: "gbp",
		})

		require.NoError(t, err)
		assert.Equal(t, "GBP", resp.Currency)
		assert.Equal(t, "£600.00", resp.TotalExpectedLossDisplay)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...events.DomainEvent) error {
				return errors.New("broker down")
			},
		}
		uc := newScoreClients(t, fixedClassifier{pds: []float64{0.9}}, publisher)

		resp, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{
			Records: []model.ClientRecord{model.SampleRecord()},
		})

		require.NoError(t, err)
		assert.Equal(t, "CRITICAL", resp.Results[0].RiskLevel)
	})

	t.Run("works without a publisher", func(t *testing.T) {
		uc := newScoreClients(t, fixedClassifier{}, nil)

		_, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{
			Records: []model.ClientRecord{model.SampleRecord()},
		})
		require.NoError(t, err)
	})

	t.Run("missing features are reported as invalid input", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := newScoreClients(t, fixedClassifier{}, publisher)
		rec := model.SampleRecord()
		delete(rec, model.FeatureMonthlyIncome)

		_, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{Records: []model.ClientRecord{rec}})

		var missing *model.MissingFeatureError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{model.FeatureMonthlyIncome}, missing.Missing)
		assert.True(t, usecase.IsInvalidInput(err))
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		uc := newScoreClients(t, fixedClassifier{}, nil)
		records := []model.ClientRecord{model.SampleRecord()}

		tests := []struct {
			name   string
			req    dto.ScoreClientsRequest
			target error
		}{
			{"lgd above 100", dto.ScoreClientsRequest{Records: records, LGDPercent: "120"}, valueobject.ErrInvalidLGD},
			{"lgd not a number", dto.ScoreClientsRequest{Records: records, LGDPercent: "abc"}, valueobject.ErrInvalidLGD},
			{"negative ead", dto.ScoreClientsRequest{Records: records, EAD: "-5"}, money.ErrNegativeAmount},
			{"ead not a number", dto.ScoreClientsRequest{Records: records, EAD: "lots"}, usecase.ErrInvalidParameters},
			{"unknown currency", dto.ScoreClientsRequest{Records: records, Currency: "QQQ"}, usecase.ErrInvalidParameters},
			{"malformed currency", dto.ScoreClientsRequest{Records: records, Currency: "DOLLARS"}, usecase.ErrInvalidParameters},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.req)
				assert.ErrorIs(t, err, tt.target)
				assert.True(t, usecase.IsInvalidInput(err))
			})
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		uc := newScoreClients(t, fixedClassifier{}, nil)

		_, err := uc.Execute(context.Background(), dto.ScoreClientsRequest{})
		assert.ErrorIs(t, err, model.ErrEmptyBatch)
	})
}

func TestGetFeatureSchema_Execute(t *testing.T) {
	uc := usecase.NewGetFeatureSchema(model.DefaultSchema())

	resp := uc.Execute()

	require.Len(t, resp.Features, 10)
	assert.Equal(t, 1, resp.Features[0].Position)
	assert.Equal(t, model.FeatureRevolvingUtilization, resp.Features[0].Name)
	assert.Equal(t, model.FeatureNumberOfDependents, resp.Features[9].Name)
}
