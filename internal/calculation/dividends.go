package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// DividendsCalculator prepares the dividend schedule. Residents split into
// two sub-types: dividends from company-taxed profits are consolidated into
// the progressive table by the engine (their tax is a marginal layer, not
// computed here); dividends from untaxed profits pay a flat rate first and
// only the remainder is consolidated. Non-residents pay a flat rate on the
// whole amount with withholding equal to the tax.
type DividendsCalculator struct {
	Rules rules.Rules
}

// NewDividendsCalculator creates a dividends calculator for one year.
func NewDividendsCalculator(r rules.Rules) *DividendsCalculator {
	return &DividendsCalculator{Rules: r}
}

// Calculate branches on residency and fills every field except the marginal
// tax and discount, which require the consolidated bases.
func (dc *DividendsCalculator) Calculate(incomes []domain.IncomeSource, isResident bool) domain.DividendScheduleResult {
	r := dc.Rules

	taxed := decimal.Zero   // sub-type 1: distributed from profits taxed at the company
	untaxed := decimal.Zero // sub-type 2: distributed from untaxed profits
	for _, inc := range incomes {
		switch inc.Category {
		case domain.IncomeDividendTaxed:
			taxed = taxed.Add(inc.Value)
		case domain.IncomeDividendUntaxed:
			untaxed = untaxed.Add(inc.Value)
		}
	}
	gross := taxed.Add(untaxed)

	if !isResident {
		tax := gross.Mul(r.DividendNonResidentRate).Round(0)
		return domain.DividendScheduleResult{
			GrossIncome:    gross,
			NonResidentTax: tax,
			Withholding:    tax,
		}
	}

	flatTax := untaxed.Mul(r.DividendUntaxedFlatRate).Round(0)
	remainder := untaxed.Sub(flatTax)

	return domain.DividendScheduleResult{
		GrossIncome:      gross,
		TaxedSubTotal:    taxed,
		UntaxedSubTotal:  untaxed,
		UntaxedFlatTax:   flatTax,
		UntaxedRemainder: remainder,
		Withholding:      dc.withholding(gross),
	}
}

// withholding applies the two-bracket dividend withholding schedule: nothing
// below the floor, a flat rate on the excess.
func (dc *DividendsCalculator) withholding(gross decimal.Decimal) decimal.Decimal {
	floor := dc.Rules.FromUVT(dc.Rules.DividendWithholdingFloor)
	if gross.LessThanOrEqual(floor) {
		return decimal.Zero
	}
	return gross.Sub(floor).Mul(dc.Rules.DividendWithholdingRate).Round(0)
}

// Discount computes the tax discount on company-taxed dividends: a fixed rate
// on the excess over the floor, locked to never exceed the layer's own
// marginal tax so the layer cannot go net negative.
func (dc *DividendsCalculator) Discount(taxedSubTotal, layerMarginalTax decimal.Decimal) decimal.Decimal {
	floor := dc.Rules.FromUVT(dc.Rules.DividendDiscountFloor)
	excess := taxedSubTotal.Sub(floor)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	discount := excess.Mul(dc.Rules.DividendDiscountRate).Round(0)
	return decimal.Min(discount, layerMarginalTax)
}
