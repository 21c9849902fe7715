package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/JBB13/credit-risk-model/internal/domain/event"
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/events"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// Assessment is the aggregate root for one scored batch of clients.
type Assessment struct {
	events.EventCollector
	scoredAt time.Time
	total    money.Money
	results  []ScoreResult
	params   RiskParameters
	id       uuid.UUID
}

// NewAssessment records a completed calculation and raises its domain events:
// one ScoringCompleted, plus a HighRiskDetected for every CRITICAL row.
func NewAssessment(results []ScoreResult, total money.Money, params RiskParameters) (*Assessment, error) {
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}

	a := &Assessment{
		id:       uuid.New(),
		results:  append([]ScoreResult(nil), results...),
		total:    total,
		params:   params,
		scoredAt: time.Now().UTC(),
	}

	currency := total.Currency().Code()
	highRisk := 0
	for _, r := range a.results {
		if !r.RiskLevel.Equal(valueobject.RiskLevelCritical) {
			continue
		}
		highRisk++
		a.Record(event.NewHighRiskDetected(
			a.id, r.Row, r.PD,
			r.ExpectedLoss.Amount().StringFixed(2), currency,
			a.scoredAt,
		))
	}

	a.Record(event.NewScoringCompleted(
		a.id, len(a.results), highRisk,
		total.Amount().StringFixed(2), currency,
		params.LGD().Percent().String(), params.EAD().Amount().String(),
		a.scoredAt,
	))

	return a, nil
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                  { return a.id }
func (a *Assessment) Results() []ScoreResult         { return append([]ScoreResult(nil), a.results...) }
func (a *Assessment) TotalExpectedLoss() money.Money { return a.total }
func (a *Assessment) Parameters() RiskParameters     { return a.params }
func (a *Assessment) ScoredAt() time.Time            { return a.scoredAt }
