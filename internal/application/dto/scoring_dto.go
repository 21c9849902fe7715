package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// ScoreClientsRequest is the input DTO for the ScoreClients use case.
// Empty LGDPercent, EAD or Currency fall back to the configured defaults.
type ScoreClientsRequest struct {
	LGDPercent string               `json:"lgd_percent,omitempty" yaml:"lgd_percent,omitempty"`
	EAD        string               `json:"ead,omitempty" yaml:"ead,omitempty"`
	Currency   string               `json:"currency,omitempty" yaml:"currency,omitempty"`
	Records    []model.ClientRecord `json:"records" yaml:"records"`
}

// ScoreResultDTO is one scored client row.
type ScoreResultDTO struct {
	RiskLevel    string  `json:"risk_level" yaml:"risk_level"`
	LGD          string  `json:"lgd" yaml:"lgd"`
	EAD          string  `json:"ead" yaml:"ead"`
	ExpectedLoss string  `json:"expected_loss" yaml:"expected_loss"`
	PD           float64 `json:"pd" yaml:"pd"`
	Row          int     `json:"row" yaml:"row"`
}

// ScoreClientsResponse is the output DTO of a batch calculation.
type ScoreClientsResponse struct {
	ScoredAt                 time.Time        `json:"scored_at" yaml:"scored_at"`
	Currency                 string           `json:"currency" yaml:"currency"`
	LGDPercent               string           `json:"lgd_percent" yaml:"lgd_percent"`
	EAD                      string           `json:"ead" yaml:"ead"`
	TotalExpectedLoss        string           `json:"total_expected_loss" yaml:"total_expected_loss"`
	TotalExpectedLossDisplay string           `json:"total_expected_loss_display" yaml:"total_expected_loss_display"`
	Results                  []ScoreResultDTO `json:"results" yaml:"results"`
	AssessmentID             uuid.UUID        `json:"assessment_id" yaml:"assessment_id"`
}

// FeatureDTO describes one schema feature.
type FeatureDTO struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Min         float64 `json:"min" yaml:"min"`
	Position    int     `json:"position" yaml:"position"`
}

// FeatureSchemaResponse lists the features in model order.
type FeatureSchemaResponse struct {
	Features []FeatureDTO `json:"features" yaml:"features"`
}

// FromAssessment maps a scored assessment to the response DTO. Amounts are
// rendered with two decimals.
func FromAssessment(a *model.Assessment) ScoreClientsResponse {
	params := a.Parameters()
	total := a.TotalExpectedLoss()

	results := make([]ScoreResultDTO, 0, len(a.Results()))
	for _, r := range a.Results() {
		results = append(results, ScoreResultDTO{
			Row:          r.Row,
			PD:           r.PD,
			RiskLevel:    r.RiskLevel.String(),
			LGD:          r.LGD.Fraction().String(),
			EAD:          r.EAD.Amount().StringFixed(2),
			ExpectedLoss: r.ExpectedLoss.Amount().StringFixed(2),
		})
	}

	return ScoreClientsResponse{
		AssessmentID:             a.ID(),
		ScoredAt:                 a.ScoredAt(),
		Currency:                 total.Currency().Code(),
		LGDPercent:               params.LGD().Percent().String(),
		EAD:                      params.EAD().Amount().StringFixed(2),
		Results:                  results,
		TotalExpectedLoss:        total.Amount().StringFixed(2),
		TotalExpectedLossDisplay: total.Display(),
	}
}

// FromSchema maps the feature schema to its DTO.
func FromSchema(s *model.Schema) FeatureSchemaResponse {
	features := make([]FeatureDTO, 0, s.Len())
	for i, f := range s.Features() {
		features = append(features, FeatureDTO{
			Position:    i + 1,
			Name:        f.Name,
			Description: f.Description,
			Min:         f.Min,
		})
	}
	return FeatureSchemaResponse{Features: features}
}
