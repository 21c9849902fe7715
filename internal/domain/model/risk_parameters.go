package model

import (
	"fmt"

	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// RiskParameters are the loss assumptions shared by every row of one calculation.
type RiskParameters struct {
	ead money.Money
	lgd valueobject.LossGivenDefault
}

// NewRiskParameters validates the exposure at default and pairs it with lgd.
func NewRiskParameters(lgd valueobject.LossGivenDefault, ead money.Money) (RiskParameters, error) {
	if ead.IsNegative() {
		return RiskParameters{}, fmt.Errorf("exposure at default %s: %w", ead, money.ErrNegativeAmount)
	}
	return RiskParameters{lgd: lgd, ead: ead}, nil
}

// LGD returns the loss given default.
func (p RiskParameters) LGD() valueobject.LossGivenDefault {
	return p.lgd
}

// EAD returns the exposure at default.
func (p RiskParameters) EAD() money.Money {
	return p.ead
}
