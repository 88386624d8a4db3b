package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralScheduleResult is the depuration breakdown of the general schedule
// (labor, fees, capital, non-labor).
type GeneralScheduleResult struct {
	GrossIncome       decimal.Decimal `json:"gross_income"`
	INCR              decimal.Decimal `json:"incr"` // non-constitutive income: mandatory + capped voluntary contributions
	Deductions        decimal.Decimal `json:"deductions"`
	Exemptions        decimal.Decimal `json:"exemptions"`
	LaborExemption    decimal.Decimal `json:"labor_exemption"`
	CappedClaims      decimal.Decimal `json:"capped_claims"` // deductions+exemptions after the 40%/1340-UVT cap
	UncappedClaims    decimal.Decimal `json:"uncapped_claims"`
	LossesApplied     decimal.Decimal `json:"losses_applied"`
	CANTreatyIncome   decimal.Decimal `json:"can_treaty_income"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
}

// PensionScheduleResult is the pension schedule breakdown.
type PensionScheduleResult struct {
	GrossIncome   decimal.Decimal `json:"gross_income"`
	Exemption     decimal.Decimal `json:"exemption"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
}

// DividendScheduleResult covers both resident sub-types and the non-resident
// flat-rate branch. For residents the taxes on the consolidated layers are
// filled in by the engine after marginal stacking.
type DividendScheduleResult struct {
	GrossIncome      decimal.Decimal `json:"gross_income"`
	TaxedSubTotal    decimal.Decimal `json:"taxed_subtotal"`    // sub-type 1, consolidated against the progressive table
	UntaxedSubTotal  decimal.Decimal `json:"untaxed_subtotal"`  // sub-type 2, flat-rate first
	UntaxedFlatTax   decimal.Decimal `json:"untaxed_flat_tax"`
	UntaxedRemainder decimal.Decimal `json:"untaxed_remainder"` // post-flat-tax amount entering consolidation
	MarginalTax      decimal.Decimal `json:"marginal_tax"`      // stacked tax on both layers
	Discount         decimal.Decimal `json:"discount"`
	NonResidentTax   decimal.Decimal `json:"non_resident_tax"`
	Withholding      decimal.Decimal `json:"withholding"`
}

// OccasionalGainsResult is the occasional-gains schedule breakdown.
type OccasionalGainsResult struct {
	GrossGains    decimal.Decimal `json:"gross_gains"`
	Costs         decimal.Decimal `json:"costs"`
	Exemptions    decimal.Decimal `json:"exemptions"`
	TaxableGains  decimal.Decimal `json:"taxable_gains"`
	GainsTax      decimal.Decimal `json:"gains_tax"`
	LotteryGross  decimal.Decimal `json:"lottery_gross"`
	LotteryTax    decimal.Decimal `json:"lottery_tax"`
}

// WealthTaxResult is the wealth-tax evaluation.
type WealthTaxResult struct {
	Subject            decimal.Decimal `json:"subject_base"` // net worth considered
	ResidenceExclusion decimal.Decimal `json:"residence_exclusion"`
	TaxableBase        decimal.Decimal `json:"taxable_base"`
	Tax                decimal.Decimal `json:"tax"`
	IsSubject          bool            `json:"is_subject"`
}

// CreditsResult is the applied-credit breakdown.
type CreditsResult struct {
	ForeignTax    decimal.Decimal `json:"foreign_tax"`
	GroupLimited  decimal.Decimal `json:"group_limited"` // donations + R&D after the group cap
	Uncapped      decimal.Decimal `json:"uncapped"`
	Total         decimal.Decimal `json:"total"`
}

// FilingObligation is the outcome of the threshold checks.
type FilingObligation struct {
	Obligated bool     `json:"obligated"`
	Reasons   []string `json:"reasons"`
}

// DeclarationResult is the terminal output of one calculation. It is
// constructed once by the engine and never mutated afterwards.
type DeclarationResult struct {
	ID           string    `json:"id"`
	TaxYear      int       `json:"tax_year"`
	CalculatedAt time.Time `json:"calculated_at"`

	General    GeneralScheduleResult  `json:"general"`
	Pensions   PensionScheduleResult  `json:"pensions"`
	Dividends  DividendScheduleResult `json:"dividends"`
	Occasional OccasionalGainsResult  `json:"occasional"`
	Wealth     WealthTaxResult        `json:"wealth"`

	ScheduleTax      decimal.Decimal  `json:"schedule_tax"` // progressive tax on general+pensions before dividend layers
	TotalIncomeTax   decimal.Decimal  `json:"total_income_tax"`
	Credits          CreditsResult    `json:"credits"`
	NetTax           decimal.Decimal  `json:"net_tax"`
	TotalWithholding decimal.Decimal  `json:"total_withholding"`
	AdvancePayment   decimal.Decimal  `json:"advance_payment"`
	PriorAdvance     decimal.Decimal  `json:"prior_advance"`
	BalanceDue       decimal.Decimal  `json:"balance_due"` // negative means refundable
	Filing           FilingObligation `json:"filing"`
	FilingDeadline   string           `json:"filing_deadline,omitempty"`
}

// Refundable reports whether the declaration closes with a balance in the
// taxpayer's favor.
func (r *DeclarationResult) Refundable() bool {
	return r.BalanceDue.LessThan(decimal.Zero)
}
