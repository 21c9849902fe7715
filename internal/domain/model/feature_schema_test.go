package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

func TestDefaultSchema(t *testing.T) {
	s := model.DefaultSchema()

	assert.Equal(t, 10, s.Len())
	assert.Equal(t, []string{
		"RevolvingUtilizationOfUnsecuredLines",
		"age",
		"NumberOfTime30-59DaysPastDueNotWorse",
		"DebtRatio",
		"MonthlyIncome",
		"NumberOfOpenCreditLinesAndLoans",
		"NumberOfTimes90DaysLate",
		"NumberRealEstateLoansOrLines",
		"NumberOfTime60-89DaysPastDueNotWorse",
		"NumberOfDependents",
	}, s.Names())

	for _, f := range s.Features() {
		assert.Zero(t, f.Min, f.Name)
		assert.NotEmpty(t, f.Description, f.Name)
	}
}

func TestSchema_FeaturesReturnsCopy(t *testing.T) {
	s := model.DefaultSchema()
	features := s.Features()
	features[0].Name = "changed"

	assert.Equal(t, model.FeatureRevolvingUtilization, s.Feature(0).Name)
}

func TestNewSchema(t *testing.T) {
	_, err := model.NewSchema()
	assert.Error(t, err)

	_, err = model.NewSchema(model.Feature{Name: "a"}, model.Feature{Name: "a"})
	assert.ErrorContains(t, err, "duplicate")

	_, err = model.NewSchema(model.Feature{Name: ""})
	assert.ErrorContains(t, err, "empty name")

	s, err := model.NewSchema(model.Feature{Name: "x"}, model.Feature{Name: "y", Min: -5})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, s.Names())
	assert.Equal(t, -5.0, s.Feature(1).Min)
}

func TestSampleRecord_CoversSchema(t *testing.T) {
	rec := model.SampleRecord()
	for _, name := range model.DefaultSchema().Names() {
		assert.Contains(t, rec, name)
	}
	assert.Equal(t, "45", rec[model.FeatureAge])
	assert.Equal(t, "5000", rec[model.FeatureMonthlyIncome])
}
