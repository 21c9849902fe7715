package model_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

func TestErrorMessages(t *testing.T) {
	missing := &model.MissingFeatureError{Missing: []string{"age", "DebtRatio"}}
	assert.Equal(t, "missing required features: age, DebtRatio", missing.Error())

	invalid := &model.InvalidFeatureValueError{Row: 3, Feature: "age", Value: "old", Reason: "not a number"}
	assert.Equal(t, `row 3: invalid value "old" for feature age: not a number`, invalid.Error())
}

func TestArtifactLoadError_Unwrap(t *testing.T) {
	err := model.NewArtifactLoadError("model", "artifacts/model.json", os.ErrNotExist)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "model", err.Artifact)
	assert.Contains(t, err.Error(), "artifacts/model.json")
	assert.False(t, model.IsValidationError(err))
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "missing", err: fmt.Errorf("score: %w", &model.MissingFeatureError{Missing: []string{"age"}}), expected: true},
		{name: "invalid", err: &model.InvalidFeatureValueError{Feature: "age"}, expected: true},
		{name: "empty batch", err: model.ErrEmptyBatch, expected: true},
		{name: "lgd", err: valueobject.ErrInvalidLGD, expected: true},
		{name: "negative ead", err: money.ErrNegativeAmount, expected: true},
		{name: "prediction", err: model.ErrInvalidPrediction, expected: false},
		{name: "other", err: errors.New("disk full"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.IsValidationError(tt.err))
		})
	}
}
