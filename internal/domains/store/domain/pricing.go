package domain

import (
	"fmt"
	"math"
)

// DefaultTaxPercentage applies when no tax percentage is configured.
const DefaultTaxPercentage = 13.0

// TaxFactor is the multiplier applied to discounted prices, 1 + pct/100.
// It is built once at startup and passed to every price computation.
type TaxFactor struct {
	multiplier float64
}

// NewTaxFactor converts a tax percentage into a multiplicative factor.
func NewTaxFactor(percentage float64) (TaxFactor, error) {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < 0 {
		return TaxFactor{}, fmt.Errorf("%w: got %v", ErrInvalidTax, percentage)
	}
	return TaxFactor{multiplier: 1 + percentage/100}, nil
}

// DefaultTaxFactor returns the factor for DefaultTaxPercentage.
func DefaultTaxFactor() TaxFactor {
	return TaxFactor{multiplier: 1 + DefaultTaxPercentage/100}
}

// Multiplier returns the factor. The zero TaxFactor behaves as no tax.
func (t TaxFactor) Multiplier() float64 {
	if t.multiplier == 0 {
		return 1
	}
	return t.multiplier
}

// Percentage returns the tax percentage the factor was built from.
func (t TaxFactor) Percentage() float64 {
	return (t.Multiplier() - 1) * 100
}

// Apply returns amount with tax applied.
func (t TaxFactor) Apply(amount float64) float64 {
	return amount * t.Multiplier()
}
