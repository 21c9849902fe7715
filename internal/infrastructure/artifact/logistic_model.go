package artifact

import (
	"fmt"
	"math"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

type modelDocument struct {
	Kind         string    `json:"kind"`
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LogisticModel is a binary logistic regression over scaled features.
type LogisticModel struct {
	coefficients []float64
	version      string
	intercept    float64
}

func newLogisticModel(schema *model.Schema, doc modelDocument) (*LogisticModel, error) {
	if err := checkFeatureNames(schema, doc.FeatureNames); err != nil {
		return nil, err
	}
	if len(doc.Coefficients) != schema.Len() {
		return nil, fmt.Errorf("%w: coefficients=%d features=%d",
			errLengthMismatch, len(doc.Coefficients), schema.Len())
	}
	return &LogisticModel{
		coefficients: doc.Coefficients,
		intercept:    doc.Intercept,
		version:      doc.Version,
	}, nil
}

// Version returns the artifact version string, if any.
func (l *LogisticModel) Version() string {
	return l.version
}

// PredictProbability returns the probability of default for each row.
func (l *LogisticModel) PredictProbability(m model.FeatureMatrix) ([]float64, error) {
	out := make([]float64, len(m))
	for i, row := range m {
		if len(row) != len(l.coefficients) {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), len(l.coefficients))
		}
		z := l.intercept
		for j, x := range row {
			z += l.coefficients[j] * x
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
