package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/rules"
)

// AdvancePaymentCalculator computes the forward advance on next year's tax.
// The percentage climbs with the declaration-year count, and from the second
// declaration on the taxpayer always gets the cheaper of the current-tax and
// two-year-average options.
type AdvancePaymentCalculator struct {
	Rules rules.Rules
}

// NewAdvancePaymentCalculator creates an advance-payment calculator for one year.
func NewAdvancePaymentCalculator(r rules.Rules) *AdvancePaymentCalculator {
	return &AdvancePaymentCalculator{Rules: r}
}

// Calculate returns the advance owed. Both options subtract withholding
// before comparison and each floors at zero.
func (ac *AdvancePaymentCalculator) Calculate(declarationYears int, currentTax, priorYearTax, withholding decimal.Decimal) decimal.Decimal {
	r := ac.Rules

	rate := r.AdvanceLaterRate
	switch {
	case declarationYears <= 1:
		rate = r.AdvanceFirstYearRate
	case declarationYears == 2:
		rate = r.AdvanceSecondYearRate
	}

	currentOption := floorZero(currentTax.Mul(rate).Sub(withholding))
	if declarationYears <= 1 {
		return currentOption.Round(0)
	}

	average := currentTax.Add(priorYearTax).Div(decimal.NewFromInt(2))
	averageOption := floorZero(average.Mul(rate).Sub(withholding))

	return decimal.Min(currentOption, averageOption).Round(0)
}

func floorZero(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}
