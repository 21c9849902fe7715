package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/port"
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// ScoringPipeline turns raw client records into probabilities of default and
// expected losses: validate, scale, predict, aggregate.
// It holds no mutable state and is safe for concurrent use when its scaler and
// classifier are.
type ScoringPipeline struct {
	schema     *model.Schema
	scaler     port.Scaler
	classifier port.Classifier
}

// NewScoringPipeline creates a ScoringPipeline over the given schema and artifacts.
func NewScoringPipeline(schema *model.Schema, scaler port.Scaler, classifier port.Classifier) *ScoringPipeline {
	return &ScoringPipeline{
		schema:     schema,
		scaler:     scaler,
		classifier: classifier,
	}
}

// Schema returns the feature schema the pipeline validates against.
func (p *ScoringPipeline) Schema() *model.Schema {
	return p.schema
}

// ValidateAndOrder checks every record supplies the schema's features and
// returns their numeric values in schema order. Extra columns are dropped.
func (p *ScoringPipeline) ValidateAndOrder(records []model.ClientRecord) (model.FeatureMatrix, error) {
	if len(records) == 0 {
		return nil, model.ErrEmptyBatch
	}

	// Columns are checked for the whole batch before any value is parsed.
	missing := make(map[string]bool)
	for _, rec := range records {
		for _, f := range p.schema.Features() {
			if _, ok := rec[f.Name]; !ok {
				missing[f.Name] = true
			}
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, name := range p.schema.Names() {
			if missing[name] {
				names = append(names, name)
			}
		}
		return nil, &model.MissingFeatureError{Missing: names}
	}

	matrix := make(model.FeatureMatrix, len(records))
	for i, rec := range records {
		row := make([]float64, p.schema.Len())
		for j := 0; j < p.schema.Len(); j++ {
			f := p.schema.Feature(j)
			v, err := parseFeatureValue(f, rec[f.Name])
			if err != nil {
				err.Row = i
				return nil, err
			}
			row[j] = v
		}
		matrix[i] = row
	}
	return matrix, nil
}

func parseFeatureValue(f model.Feature, raw string) (float64, *model.InvalidFeatureValueError) {
	invalid := func(reason string) *model.InvalidFeatureValueError {
		return &model.InvalidFeatureValueError{Feature: f.Name, Value: raw, Reason: reason}
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid("value is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("not a finite number")
	}
	if v < f.Min {
		return 0, invalid(fmt.Sprintf("below minimum %g", f.Min))
	}
	return v, nil
}

// Scale applies the scaler and checks it preserved the matrix shape and
// produced only finite values. Rejected or non-finite values are
// InvalidFeatureValueErrors; any other scaler failure wraps ErrInvalidScaling.
func (p *ScoringPipeline) Scale(m model.FeatureMatrix) (model.FeatureMatrix, error) {
	scaled, err := p.scaler.Transform(m)
	if err != nil {
		// A scaler may reject a value itself; that stays a caller error.
		var invalid *model.InvalidFeatureValueError
		if errors.As(err, &invalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidScaling, err)
	}
	if len(scaled) != len(m) {
		return nil, fmt.Errorf("%w: got %d rows for %d inputs", model.ErrInvalidScaling, len(scaled), len(m))
	}
	for i, row := range scaled {
		if len(row) != p.schema.Len() {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", model.ErrInvalidScaling, i, len(row), p.schema.Len())
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &model.InvalidFeatureValueError{
					Row:     i,
					Feature: p.schema.Feature(j).Name,
					Value:   strconv.FormatFloat(m[i][j], 'g', -1, 64),
					Reason:  "scaled value is not finite",
				}
			}
		}
	}
	return scaled, nil
}

// PredictPD runs the classifier and checks it returned one probability in
// [0,1] per row.
func (p *ScoringPipeline) PredictPD(m model.FeatureMatrix) ([]float64, error) {
	pds, err := p.classifier.PredictProbability(m)
	if err != nil {
		return nil, fmt.Errorf("predict PD: %w", err)
	}
	if len(pds) != len(m) {
		return nil, fmt.Errorf("%w: got %d probabilities for %d rows", model.ErrInvalidPrediction, len(pds), len(m))
	}
	for i, pd := range pds {
		if math.IsNaN(pd) || pd < 0 || pd > 1 {
			return nil, fmt.Errorf("%w: row %d probability %v outside [0,1]", model.ErrInvalidPrediction, i, pd)
		}
	}
	return pds, nil
}

// ComputeExpectedLoss computes EL = PD * LGD * EAD for each row and their sum.
// Arithmetic is decimal, so the total does not depend on row order.
func (p *ScoringPipeline) ComputeExpectedLoss(
	pds []float64,
	lgd valueobject.LossGivenDefault,
	ead money.Money,
) ([]model.ScoreResult, money.Money) {
	results := make([]model.ScoreResult, len(pds))
	total := money.Zero(ead.Currency())
	lossPerDefault := ead.Multiply(lgd.Fraction())

	for i, pd := range pds {
		el := lossPerDefault.Multiply(decimal.NewFromFloat(pd))
		results[i] = model.ScoreResult{
			Row:          i,
			PD:           pd,
			RiskLevel:    valueobject.RiskLevelFromPD(pd),
			LGD:          lgd,
			EAD:          ead,
			ExpectedLoss: el,
		}
		// Same currency by construction.
		total, _ = total.Add(el)
	}
	return results, total
}

// Score runs the full pipeline for one batch. A failing stage stops the run
// before any later stage is called.
func (p *ScoringPipeline) Score(records []model.ClientRecord, params model.RiskParameters) (*model.Assessment, error) {
	matrix, err := p.ValidateAndOrder(records)
	if err != nil {
		return nil, err
	}

	scaled, err := p.Scale(matrix)
	if err != nil {
		return nil, err
	}

	pds, err := p.PredictPD(scaled)
	if err != nil {
		return nil, err
	}

	results, total := p.ComputeExpectedLoss(pds, params.LGD(), params.EAD())
	return model.NewAssessment(results, total, params)
}
