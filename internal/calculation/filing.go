package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// FilingObligationChecker decides whether the taxpayer must file. Every
// threshold test is a strict inequality; reasons accumulate rather than
// short-circuit so the taxpayer sees all of them.
type FilingObligationChecker struct {
	Rules rules.Rules
}

// NewFilingObligationChecker creates a filing-obligation checker for one year.
func NewFilingObligationChecker(r rules.Rules) *FilingObligationChecker {
	return &FilingObligationChecker{Rules: r}
}

// Check runs every threshold test and the VAT-responsibility flag.
func (fc *FilingObligationChecker) Check(tp *domain.Taxpayer) domain.FilingObligation {
	r := fc.Rules
	var reasons []string

	check := func(value decimal.Decimal, thresholdUVT decimal.Decimal, label string) {
		threshold := r.FromUVT(thresholdUVT)
		if value.GreaterThan(threshold) {
			reasons = append(reasons, fmt.Sprintf("%s of %s exceeds %s UVT (%s)",
				label, value.StringFixed(0), thresholdUVT.StringFixed(0), threshold.StringFixed(0)))
		}
	}

	check(tp.GrossAssets(), r.FilingAssetsUVT, "gross assets")
	check(tp.TotalGrossIncome(), r.FilingIncomeUVT, "gross income")
	check(tp.CardConsumption, r.FilingCardUVT, "card consumption")
	check(tp.TotalPurchases, r.FilingPurchasesUVT, "total purchases")
	check(tp.BankDeposits, r.FilingDepositsUVT, "bank deposits")

	if tp.IsVATResponsible {
		reasons = append(reasons, "registered as VAT responsible")
	}

	return domain.FilingObligation{
		Obligated: len(reasons) > 0,
		Reasons:   reasons,
	}
}
