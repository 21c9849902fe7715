package port

import (
	"context"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/pkg/events"
)

// Scaler applies the pre-fitted feature normalization.
type Scaler interface {
	// Transform returns a scaled copy of m with the same shape and row order.
	Transform(m model.FeatureMatrix) (model.FeatureMatrix, error)
}

// Classifier is the pre-trained probability-of-default model.
type Classifier interface {
	// PredictProbability returns the probability of the default class for each row.
	PredictProbability(m model.FeatureMatrix) ([]float64, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
