package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// PensionsCalculator depurates pension income: a fixed per-installment
// exemption, no deductions of any kind.
type PensionsCalculator struct {
	Rules rules.Rules
}

// NewPensionsCalculator creates a pensions calculator for one year.
func NewPensionsCalculator(r rules.Rules) *PensionsCalculator {
	return &PensionsCalculator{Rules: r}
}

// Calculate sums pension income and removes the per-installment exemption.
// Taxpayers report 13 or 14 installments (mesadas); an unreported count
// defaults to 13.
func (pc *PensionsCalculator) Calculate(incomes []domain.IncomeSource) domain.PensionScheduleResult {
	gross := decimal.Zero
	exemption := decimal.Zero

	for _, inc := range incomes {
		if inc.Category != domain.IncomePension {
			continue
		}
		gross = gross.Add(inc.Value)

		installments := inc.PensionInstallments
		if installments <= 0 {
			installments = 13
		}
		perRecord := pc.Rules.FromUVT(pc.Rules.PensionInstallmentExemptionUVT).Mul(decimal.NewFromInt(int64(installments)))
		exemption = exemption.Add(decimal.Min(perRecord, inc.Value))
	}

	taxable := gross.Sub(exemption)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	return domain.PensionScheduleResult{
		GrossIncome:   gross,
		Exemption:     exemption,
		TaxableIncome: taxable,
	}
}
