package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidLGD is returned for a loss given default outside 0..100 percent.
var ErrInvalidLGD = errors.New("loss given default must be between 0 and 100 percent")

var hundred = decimal.NewFromInt(100)

// LossGivenDefault is the fraction of the exposure lost if the client defaults.
type LossGivenDefault struct {
	fraction decimal.Decimal
}

// NewLossGivenDefaultFromPercent builds an LGD from a percentage in [0,100].
func NewLossGivenDefaultFromPercent(pct decimal.Decimal) (LossGivenDefault, error) {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return LossGivenDefault{}, fmt.Errorf("%w, got %s", ErrInvalidLGD, pct.String())
	}
	return LossGivenDefault{fraction: pct.Div(hundred)}, nil
}

// ParseLossGivenDefault parses a percentage string such as "60" or "45.5".
func ParseLossGivenDefault(pct string) (LossGivenDefault, error) {
	d, err := decimal.NewFromString(pct)
	if err != nil {
		return LossGivenDefault{}, fmt.Errorf("%w: %q is not a number", ErrInvalidLGD, pct)
	}
	return NewLossGivenDefaultFromPercent(d)
}

// Fraction returns the LGD in [0,1].
func (l LossGivenDefault) Fraction() decimal.Decimal {
	return l.fraction
}

// Percent returns the LGD in [0,100].
func (l LossGivenDefault) Percent() decimal.Decimal {
	return l.fraction.Mul(hundred)
}

// String formats the LGD as a percentage, for example "60%".
func (l LossGivenDefault) String() string {
	return l.Percent().String() + "%"
}
