package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// TaxCreditCalculator applies tax credits against total tax: a proportional
// foreign-tax credit, group-limited donation and R&D credits, and uncapped
// categories, with a grand total never above the tax itself.
type TaxCreditCalculator struct {
	Rules rules.Rules
}

// NewTaxCreditCalculator creates a tax-credit calculator for one year.
func NewTaxCreditCalculator(r rules.Rules) *TaxCreditCalculator {
	return &TaxCreditCalculator{Rules: r}
}

// Calculate resolves every credit. foreignNet and totalNet feed the
// proportional limit on the foreign-tax credit; a zero totalNet guards the
// ratio to zero instead of failing.
func (tc *TaxCreditCalculator) Calculate(credits []domain.TaxCredit, totalTax, foreignNet, totalNet decimal.Decimal) domain.CreditsResult {
	r := tc.Rules

	foreignPaid := decimal.Zero
	donationBase := decimal.Zero
	rndBase := decimal.Zero
	uncapped := decimal.Zero

	for _, c := range credits {
		switch c.Category {
		case domain.CreditForeignTax:
			foreignPaid = foreignPaid.Add(c.Value)
		case domain.CreditDonation, domain.CreditFoodDonation:
			donationBase = donationBase.Add(c.Value)
		case domain.CreditRnDInvestment:
			rndBase = rndBase.Add(c.Value)
		case domain.CreditFixedAssetVAT, domain.CreditOther:
			uncapped = uncapped.Add(c.Value)
		}
	}

	// Foreign credit: what was paid abroad, never more than the share of the
	// tax attributable to foreign-source income, never more than the tax.
	attributable := decimal.Zero
	if totalNet.GreaterThan(decimal.Zero) {
		attributable = totalTax.Mul(foreignNet).Div(totalNet)
	}
	foreign := decimal.Min(decimal.Min(foreignPaid, attributable), totalTax)

	// Donations and R&D each earn a fixed percentage, then share one group cap.
	groupClaims := donationBase.Mul(r.DonationCreditRate).Add(rndBase.Mul(r.RnDCreditRate))
	groupLimited := decimal.Min(groupClaims, totalTax.Mul(r.CreditGroupCapRate))

	total := decimal.Min(foreign.Add(groupLimited).Add(uncapped), totalTax)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return domain.CreditsResult{
		ForeignTax:   foreign,
		GroupLimited: groupLimited,
		Uncapped:     uncapped,
		Total:        total.Round(0),
	}
}
