package artifact

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// Artifact names used in load errors.
const (
	NameScaler = "scaler"
	NameModel  = "model"
)

var (
	//go:embed schemas/standard_scaler.schema.json
	scalerSchema []byte

	//go:embed schemas/logistic_regression.schema.json
	modelSchema []byte
)

// Set holds the artifacts loaded at startup. It is read-only once built and
// shared by every request.
type Set struct {
	Scaler     *StandardScaler
	Model      *LogisticModel
	ScalerPath string
	ModelPath  string
}

// Load reads and validates both artifacts against the feature schema.
// Any failure is returned as a *model.ArtifactLoadError.
func Load(schema *model.Schema, modelPath, scalerPath string) (*Set, error) {
	scaler, err := LoadScaler(schema, scalerPath)
	if err != nil {
		return nil, err
	}
	m, err := LoadModel(schema, modelPath)
	if err != nil {
		return nil, err
	}
	return &Set{
		Scaler:     scaler,
		Model:      m,
		ScalerPath: scalerPath,
		ModelPath:  modelPath,
	}, nil
}

// Status reports "ok" once both artifacts are loaded, for readiness probes.
func (s *Set) Status() string {
	if s == nil || s.Scaler == nil || s.Model == nil {
		return "not_loaded"
	}
	return "ok"
}

// LoadScaler reads a standard scaler document from path.
func LoadScaler(schema *model.Schema, path string) (*StandardScaler, error) {
	var doc scalerDocument
	if err := readDocument(path, scalerSchema, &doc); err != nil {
		return nil, model.NewArtifactLoadError(NameScaler, path, err)
	}
	s, err := newStandardScaler(schema, doc)
	if err != nil {
		return nil, model.NewArtifactLoadError(NameScaler, path, err)
	}
	return s, nil
}

// LoadModel reads a logistic regression document from path.
func LoadModel(schema *model.Schema, path string) (*LogisticModel, error) {
	var doc modelDocument
	if err := readDocument(path, modelSchema, &doc); err != nil {
		return nil, model.NewArtifactLoadError(NameModel, path, err)
	}
	m, err := newLogisticModel(schema, doc)
	if err != nil {
		return nil, model.NewArtifactLoadError(NameModel, path, err)
	}
	return m, nil
}

func readDocument(path string, schemaDoc []byte, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaDoc),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document validation failed: %s", strings.Join(errs, "; "))
	}

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// checkFeatureNames requires the artifact to list the schema features in
// schema order.
func checkFeatureNames(schema *model.Schema, names []string) error {
	if !slices.Equal(schema.Names(), names) {
		return fmt.Errorf("feature_names %v do not match schema order %v", names, schema.Names())
	}
	return nil
}

var errLengthMismatch = errors.New("array length does not match feature count")
