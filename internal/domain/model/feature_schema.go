package model

import "fmt"

// Column names of the ten features the PD model was trained on, in model order.
const (
	FeatureRevolvingUtilization = "RevolvingUtilizationOfUnsecuredLines"
	FeatureAge                  = "age"
	FeaturePastDue30To59        = "NumberOfTime30-59DaysPastDueNotWorse"
	FeatureDebtRatio            = "DebtRatio"
	FeatureMonthlyIncome        = "MonthlyIncome"
	FeatureOpenCreditLines      = "NumberOfOpenCreditLinesAndLoans"
	FeaturePastDue90Plus        = "NumberOfTimes90DaysLate"
	FeatureRealEstateLoans      = "NumberRealEstateLoansOrLines"
	FeaturePastDue60To89        = "NumberOfTime60-89DaysPastDueNotWorse"
	FeatureNumberOfDependents   = "NumberOfDependents"
)

// Feature describes one numeric model input.
type Feature struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Min         float64 `json:"min" yaml:"min"`
}

// Schema is the fixed, ordered set of features a client record must supply.
type Schema struct {
	features []Feature
}

// NewSchema builds a schema from an ordered feature list. Names must be unique
// and non-empty.
func NewSchema(features ...Feature) (*Schema, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("schema requires at least one feature")
	}

	seen := make(map[string]bool, len(features))
	for i, f := range features {
		if f.Name == "" {
			return nil, fmt.Errorf("feature %d has an empty name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate feature %q", f.Name)
		}
		seen[f.Name] = true
	}

	return &Schema{features: append([]Feature(nil), features...)}, nil
}

// DefaultSchema returns the ten-feature credit schema.
func DefaultSchema() *Schema {
	s, err := NewSchema(
		Feature{Name: FeatureRevolvingUtilization, Description: "Utilization ratio of unsecured revolving credit lines"},
		Feature{Name: FeatureAge, Description: "Borrower age in years"},
		Feature{Name: FeaturePastDue30To59, Description: "Times 30-59 days past due in the last two years"},
		Feature{Name: FeatureDebtRatio, Description: "Monthly debt payments divided by monthly gross income"},
		Feature{Name: FeatureMonthlyIncome, Description: "Monthly gross income"},
		Feature{Name: FeatureOpenCreditLines, Description: "Open loans and lines of credit"},
		Feature{Name: FeaturePastDue90Plus, Description: "Times 90 days or more past due"},
		Feature{Name: FeatureRealEstateLoans, Description: "Mortgage and real estate loans"},
		Feature{Name: FeaturePastDue60To89, Description: "Times 60-89 days past due in the last two years"},
		Feature{Name: FeatureNumberOfDependents, Description: "Dependents in the family, excluding the borrower"},
	)
	if err != nil {
		panic(err)
	}
	return s
}

// Features returns a copy of the ordered feature list.
func (s *Schema) Features() []Feature {
	return append([]Feature(nil), s.features...)
}

// Names returns the feature names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.features))
	for i, f := range s.features {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of features.
func (s *Schema) Len() int {
	return len(s.features)
}

// Feature returns the feature at position i.
func (s *Schema) Feature(i int) Feature {
	return s.features[i]
}
