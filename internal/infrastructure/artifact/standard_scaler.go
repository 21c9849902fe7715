package artifact

import (
	"fmt"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

type scalerDocument struct {
	Kind         string    `json:"kind"`
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// StandardScaler standardizes each feature as (x - mean) / scale.
type StandardScaler struct {
	mean    []float64
	scale   []float64
	version string
}

func newStandardScaler(schema *model.Schema, doc scalerDocument) (*StandardScaler, error) {
	if err := checkFeatureNames(schema, doc.FeatureNames); err != nil {
		return nil, err
	}
	if len(doc.Mean) != schema.Len() || len(doc.Scale) != schema.Len() {
		return nil, fmt.Errorf("%w: mean=%d scale=%d features=%d",
			errLengthMismatch, len(doc.Mean), len(doc.Scale), schema.Len())
	}
	for i, s := range doc.Scale {
		if s == 0 {
			return nil, fmt.Errorf("scale for %s is zero", doc.FeatureNames[i])
		}
	}
	return &StandardScaler{mean: doc.Mean, scale: doc.Scale, version: doc.Version}, nil
}

// Version returns the artifact version string, if any.
func (s *StandardScaler) Version() string {
	return s.version
}

// Transform returns a standardized copy of m.
func (s *StandardScaler) Transform(m model.FeatureMatrix) (model.FeatureMatrix, error) {
	out := make(model.FeatureMatrix, len(m))
	for i, row := range m {
		if len(row) != len(s.mean) {
			return nil, fmt.Errorf("row %d has %d features, scaler expects %d", i, len(row), len(s.mean))
		}
		scaled := make([]float64, len(row))
		for j, x := range row {
			scaled[j] = (x - s.mean[j]) / s.scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}
