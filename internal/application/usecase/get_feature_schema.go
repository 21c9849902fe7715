package usecase

import (
	"github.com/JBB13/credit-risk-model/internal/application/dto"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// GetFeatureSchema is the use case for describing the model's input features.
type GetFeatureSchema struct {
	schema *model.Schema
}

// NewGetFeatureSchema creates a new GetFeatureSchema use case.
func NewGetFeatureSchema(schema *model.Schema) *GetFeatureSchema {
	return &GetFeatureSchema{schema: schema}
}

// Execute returns the schema features in model order.
func (uc *GetFeatureSchema) Execute() dto.FeatureSchemaResponse {
	return dto.FromSchema(uc.schema)
}
