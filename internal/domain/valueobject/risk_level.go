package valueobject

// RiskLevel is an immutable value object representing the risk band of a
// probability of default.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// PD thresholds at which a band starts.
const (
	mediumPDThreshold   = 0.05
	highPDThreshold     = 0.15
	criticalPDThreshold = 0.30
)

// RiskLevelFromPD derives the RiskLevel for a probability of default in [0,1].
func RiskLevelFromPD(pd float64) RiskLevel {
	switch {
	case pd >= criticalPDThreshold:
		return RiskLevelCritical
	case pd >= highPDThreshold:
		return RiskLevelHigh
	case pd >= mediumPDThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalText encodes the level as its name.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}
