package model

import (
	"github.com/JBB13/credit-risk-model/internal/domain/valueobject"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// ScoreResult is the outcome for one client row.
type ScoreResult struct {
	RiskLevel    valueobject.RiskLevel
	LGD          valueobject.LossGivenDefault
	EAD          money.Money
	ExpectedLoss money.Money
	PD           float64
	Row          int
}
