// Package ratio computes the debt-to-income ratio (PDN) and classifies it into
// load bands.
package ratio

import (
	"math"

	"fjacquet/pdn-calc/internal/apperror"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns round(100 * sum(payments) / monthlyIncome, 2).
// An empty payment list yields 0.
func Calculate(monthlyIncome float64, payments []float64) (float64, error) {
	if !isFinite(monthlyIncome) {
		return 0, &apperror.InvalidInputError{Field: "income", Reason: "income must be a finite number"}
	}
	if monthlyIncome <= 0 {
		return 0, &apperror.InvalidInputError{Field: "income", Reason: "income must be positive"}
	}

	total := decimal.Zero
	for _, p := range payments {
		if !isFinite(p) {
			return 0, &apperror.InvalidInputError{Field: "payments", Reason: "payments must be finite numbers"}
		}
		if p < 0 {
			return 0, &apperror.InvalidInputError{Field: "payments", Reason: "payments must not be negative"}
		}
		total = total.Add(decimal.NewFromFloat(p))
	}

	pdn := total.Mul(hundred).Div(decimal.NewFromFloat(monthlyIncome)).Round(2).InexactFloat64()
	if !isFinite(pdn) {
		return 0, &apperror.InvalidInputError{Field: "payments", Reason: "ratio is out of range"}
	}
	return pdn, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
