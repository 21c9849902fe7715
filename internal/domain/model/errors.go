package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

var (
	// ErrEmptyBatch is returned when a calculation is requested for zero records.
	ErrEmptyBatch = errors.New("no client records to score")

	// ErrInvalidScaling is returned when the scaler fails or breaks its
	// contract: wrong row count or row width.
	ErrInvalidScaling = errors.New("invalid output from feature scaler")

	// ErrInvalidPrediction is returned when the classifier output breaks its
	// contract: wrong length or a probability outside [0,1].
	ErrInvalidPrediction = errors.New("invalid prediction from PD model")
)

// MissingFeatureError reports schema fields absent from the input columns.
type MissingFeatureError struct {
	Missing []string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing required features: %s", strings.Join(e.Missing, ", "))
}

// InvalidFeatureValueError reports a value that cannot be used as a model input.
// Row is zero-based.
type InvalidFeatureValueError struct {
	Feature string
	Value   string
	Reason  string
	Row     int
}

func (e *InvalidFeatureValueError) Error() string {
	return fmt.Sprintf("row %d: invalid value %q for feature %s: %s", e.Row, e.Value, e.Feature, e.Reason)
}

// ArtifactLoadError reports a model or scaler artifact that could not be loaded.
type ArtifactLoadError struct {
	err      error
	Artifact string
	Path     string
}

// NewArtifactLoadError wraps cause as a load failure of the named artifact.
func NewArtifactLoadError(artifact, path string, cause error) *ArtifactLoadError {
	return &ArtifactLoadError{Artifact: artifact, Path: path, err: cause}
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact %s: %v", e.Artifact, e.Path, e.err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.err
}

// IsValidationError reports whether err was caused by bad caller input rather
// than by the service itself.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var missing *MissingFeatureError
	var invalid *InvalidFeatureValueError
	return errors.As(err, &missing) ||
		errors.As(err, &invalid) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, valueobject.ErrInvalidLGD) ||
		errors.Is(err, money.ErrNegativeAmount)
}
