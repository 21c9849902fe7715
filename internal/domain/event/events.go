package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/JBB13/credit-risk-model/pkg/events"
)

const (
	// EventTypeScoringCompleted is emitted when a batch of clients has been scored.
	EventTypeScoringCompleted = "credit_risk.scoring.completed"

	// EventTypeHighRiskDetected is emitted for each client scored CRITICAL.
	EventTypeHighRiskDetected = "credit_risk.high_risk.detected"

	// AggregateType names the aggregate that raises these events.
	AggregateType = "credit_assessment"
)

// ScoringCompleted is published after every successful batch calculation.
type ScoringCompleted struct {
	events.BaseEvent
	ScoredAt          time.Time `json:"scored_at"`
	TotalExpectedLoss string    `json:"total_expected_loss"`
	Currency          string    `json:"currency"`
	LGDPercent        string    `json:"lgd_percent"`
	EAD               string    `json:"ead"`
	Rows              int       `json:"rows"`
	HighRiskRows      int       `json:"high_risk_rows"`
}

// NewScoringCompleted creates a ScoringCompleted event for an assessment.
func NewScoringCompleted(
	assessmentID uuid.UUID,
	rows, highRiskRows int,
	totalExpectedLoss, currency, lgdPercent, ead string,
	scoredAt time.Time,
) ScoringCompleted {
	return ScoringCompleted{
		BaseEvent:         events.NewBaseEvent(EventTypeScoringCompleted, assessmentID, AggregateType),
		Rows:              rows,
		HighRiskRows:      highRiskRows,
		TotalExpectedLoss: totalExpectedLoss,
		Currency:          currency,
		LGDPercent:        lgdPercent,
		EAD:               ead,
		ScoredAt:          scoredAt,
	}
}

// HighRiskDetected is published for a client whose probability of default
// falls in the CRITICAL band.
type HighRiskDetected struct {
	events.BaseEvent
	DetectedAt   time.Time `json:"detected_at"`
	ExpectedLoss string    `json:"expected_loss"`
	Currency     string    `json:"currency"`
	PD           float64   `json:"pd"`
	Row          int       `json:"row"`
}

// NewHighRiskDetected creates a HighRiskDetected event for one row of an assessment.
func NewHighRiskDetected(
	assessmentID uuid.UUID,
	row int,
	pd float64,
	expectedLoss, currency string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateType),
		Row:          row,
		PD:           pd,
		ExpectedLoss: expectedLoss,
		Currency:     currency,
		DetectedAt:   detectedAt,
	}
}
