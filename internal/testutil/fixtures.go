// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// Fixed IDs for deterministic testing.
var (
	TestAssessmentID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
)

// WriteJSON marshals doc into a file called name under a fresh temp dir.
func WriteJSON(t *testing.T, name string, doc any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// Filled returns n copies of v.
func Filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ScalerDocument is a standard scaler artifact for the default schema.
func ScalerDocument(mean, scale float64) map[string]any {
	n := model.DefaultSchema().Len()
	return map[string]any{
		"kind":          "standard_scaler",
		"feature_names": model.DefaultSchema().Names(),
		"mean":          Filled(n, mean),
		"scale":         Filled(n, scale),
	}
}

// ModelDocument is a logistic regression artifact for the default schema with
// the same coefficient on every feature.
func ModelDocument(coefficient, intercept float64) map[string]any {
	return map[string]any{
		"kind":          "logistic_regression",
		"feature_names": model.DefaultSchema().Names(),
		"coefficients":  Filled(model.DefaultSchema().Len(), coefficient),
		"intercept":     intercept,
	}
}

// NeutralArtifacts writes an identity scaler and a zero-weight model, under
// which every client scores PD 0.5.
func NeutralArtifacts(t *testing.T) (modelPath, scalerPath string) {
	t.Helper()
	return WriteJSON(t, "model.json", ModelDocument(0, 0)),
		WriteJSON(t, "scaler.json", ScalerDocument(0, 1))
}

// SampleCSV writes rows copies of the sample client as comma separated
// values. A non-empty drop omits that column.
func SampleCSV(t *testing.T, rows int, drop string) string {
	t.Helper()
	sample := model.SampleRecord()
	var header, values []string
	for _, name := range model.DefaultSchema().Names() {
		if name == drop {
			continue
		}
		header = append(header, name)
		values = append(values, sample[name])
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ",") + "\n")
	for i := 0; i < rows; i++ {
		b.WriteString(strings.Join(values, ",") + "\n")
	}
	path := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}
