package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/service"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/artifact"
	"github.com/JBB13/credit-risk-model/internal/testutil"
)

func scalerDoc() map[string]any { return testutil.ScalerDocument(1, 2) }

func modelDoc() map[string]any { return testutil.ModelDocument(0, 0) }

func requireLoadError(t *testing.T, err error, artifactName string) *model.ArtifactLoadError {
	t.Helper()
	var loadErr *model.ArtifactLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, artifactName, loadErr.Artifact)
	return loadErr
}

func TestLoad_BundledArtifacts(t *testing.T) {
	schema := model.DefaultSchema()
	set, err := artifact.Load(schema, "../../../artifacts/model.json", "../../../artifacts/scaler.json")
	require.NoError(t, err)
	assert.NotEmpty(t, set.Model.Version())
	assert.NotEmpty(t, set.Scaler.Version())

	pipeline := service.NewScoringPipeline(schema, set.Scaler, set.Model)
	m, err := pipeline.ValidateAndOrder([]model.ClientRecord{model.SampleRecord()})
	require.NoError(t, err)
	scaled, err := pipeline.Scale(m)
	require.NoError(t, err)
	pds, err := pipeline.PredictPD(scaled)
	require.NoError(t, err)

	require.Len(t, pds, 1)
	assert.Greater(t, pds[0], 0.05)
	assert.Less(t, pds[0], 0.15)
}

func TestLoadScaler(t *testing.T) {
	schema := model.DefaultSchema()

	t.Run("standardizes features", func(t *testing.T) {
		s, err := artifact.LoadScaler(schema, testutil.WriteJSON(t, "scaler.json", scalerDoc()))
		require.NoError(t, err)

		out, err := s.Transform(model.FeatureMatrix{testutil.Filled(10, 5)})
		require.NoError(t, err)
		assert.Equal(t, testutil.Filled(10, 2), out[0])
	})

	t.Run("rejects wrong row width", func(t *testing.T) {
		s, err := artifact.LoadScaler(schema, testutil.WriteJSON(t, "scaler.json", scalerDoc()))
		require.NoError(t, err)

		_, err = s.Transform(model.FeatureMatrix{testutil.Filled(3, 1)})
		assert.Error(t, err)
	})

	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{"wrong kind", func(doc map[string]any) { doc["kind"] = "minmax_scaler" }},
		{"missing mean", func(doc map[string]any) { delete(doc, "mean") }},
		{"zero scale", func(doc map[string]any) { doc["scale"] = testutil.Filled(10, 0) }},
		{"short mean", func(doc map[string]any) { doc["mean"] = testutil.Filled(9, 0) }},
		{"reordered features", func(doc map[string]any) {
			names := model.DefaultSchema().Names()
			names[0], names[1] = names[1], names[0]
			doc["feature_names"] = names
		}},
		{"unknown field", func(doc map[string]any) { doc["with_mean"] = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := scalerDoc()
			tt.mutate(doc)

			_, err := artifact.LoadScaler(schema, testutil.WriteJSON(t, "scaler.json", doc))
			requireLoadError(t, err, artifact.NameScaler)
		})
	}
}

func TestLoadModel(t *testing.T) {
	schema := model.DefaultSchema()

	t.Run("zero weights give even odds", func(t *testing.T) {
		m, err := artifact.LoadModel(schema, testutil.WriteJSON(t, "model.json", modelDoc()))
		require.NoError(t, err)

		pds, err := m.PredictProbability(model.FeatureMatrix{testutil.Filled(10, 3), testutil.Filled(10, -3)})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.5}, pds)
	})

	t.Run("extreme logits stay in range", func(t *testing.T) {
		doc := modelDoc()
		doc["coefficients"] = testutil.Filled(10, 100)
		m, err := artifact.LoadModel(schema, testutil.WriteJSON(t, "model.json", doc))
		require.NoError(t, err)

		pds, err := m.PredictProbability(model.FeatureMatrix{testutil.Filled(10, 10), testutil.Filled(10, -10)})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, pds[0], 1e-12)
		assert.InDelta(t, 0.0, pds[1], 1e-12)
	})

	t.Run("intercept only", func(t *testing.T) {
		doc := modelDoc()
		doc["intercept"] = -2.0
		m, err := artifact.LoadModel(schema, testutil.WriteJSON(t, "model.json", doc))
		require.NoError(t, err)

		pds, err := m.PredictProbability(model.FeatureMatrix{testutil.Filled(10, 1)})
		require.NoError(t, err)
		assert.InDelta(t, 0.1192, pds[0], 1e-4)
	})

	t.Run("missing intercept", func(t *testing.T) {
		doc := modelDoc()
		delete(doc, "intercept")

		_, err := artifact.LoadModel(schema, testutil.WriteJSON(t, "model.json", doc))
		requireLoadError(t, err, artifact.NameModel)
	})

	t.Run("coefficient count", func(t *testing.T) {
		doc := modelDoc()
		doc["coefficients"] = testutil.Filled(11, 0)

		_, err := artifact.LoadModel(schema, testutil.WriteJSON(t, "model.json", doc))
		requireLoadError(t, err, artifact.NameModel)
	})
}

func TestLoad_Errors(t *testing.T) {
	schema := model.DefaultSchema()
	scalerPath := testutil.WriteJSON(t, "scaler.json", scalerDoc())
	modelPath := testutil.WriteJSON(t, "model.json", modelDoc())

	t.Run("missing model file", func(t *testing.T) {
		_, err := artifact.Load(schema, filepath.Join(t.TempDir(), "nope.json"), scalerPath)
		loadErr := requireLoadError(t, err, artifact.NameModel)
		assert.ErrorIs(t, loadErr, os.ErrNotExist)
	})

	t.Run("malformed scaler json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scaler.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := artifact.Load(schema, modelPath, path)
		requireLoadError(t, err, artifact.NameScaler)
	})

	t.Run("both present", func(t *testing.T) {
		set, err := artifact.Load(schema, modelPath, scalerPath)
		require.NoError(t, err)
		assert.Equal(t, modelPath, set.ModelPath)
		assert.Equal(t, scalerPath, set.ScalerPath)
	})
}

func TestSet_Status(t *testing.T) {
	var missing *artifact.Set
	assert.Equal(t, "not_loaded", missing.Status())
	assert.Equal(t, "not_loaded", (&artifact.Set{}).Status())

	set, err := artifact.Load(model.DefaultSchema(), "../../../artifacts/model.json", "../../../artifacts/scaler.json")
	require.NoError(t, err)
	assert.Equal(t, "ok", set.Status())
}
