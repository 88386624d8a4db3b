package rules

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rules holds every statutory constant for one tax year. Thresholds and caps
// are expressed in UVT unless the field name says otherwise; UVTValue converts
// them to pesos.
type Rules struct {
	Year     int
	UVTValue decimal.Decimal // pesos per UVT

	IncomeTable Table // Art. 241 progressive table
	WealthTable Table

	// General schedule.
	VoluntaryPensionCapUVT   decimal.Decimal // global INCR cap across all income records
	BankYieldInflationShare  decimal.Decimal // non-taxable fraction of bank yields
	HousingInterestMonthlyCapUVT decimal.Decimal
	PrepaidHealthMonthlyCapUVT   decimal.Decimal
	DependentsRate               decimal.Decimal // fraction of gross, capped per month
	DependentsMonthlyCapUVT      decimal.Decimal
	DependentFixedAllowanceUVT   decimal.Decimal // per dependent, outside the global cap
	GMFDeductibleShare           decimal.Decimal
	EducationLoanCapUVT          decimal.Decimal
	ElectronicInvoiceRate        decimal.Decimal
	ElectronicInvoiceCapUVT      decimal.Decimal
	RetirementSavingsRate        decimal.Decimal // fraction of tributary income
	RetirementSavingsCapUVT      decimal.Decimal
	LaborExemptionRate           decimal.Decimal
	LaborExemptionCapUVT         decimal.Decimal
	GlobalCapRate                decimal.Decimal // fraction of gross minus INCR
	GlobalCapUVT                 decimal.Decimal
	SeveranceLadder              []SeveranceStep

	// Pensions.
	PensionInstallmentExemptionUVT decimal.Decimal

	// Dividends.
	DividendNonResidentRate  decimal.Decimal
	DividendUntaxedFlatRate  decimal.Decimal
	DividendWithholdingFloor decimal.Decimal // UVT, zero withholding below
	DividendWithholdingRate  decimal.Decimal
	DividendDiscountFloor    decimal.Decimal // UVT, discount on the excess
	DividendDiscountRate     decimal.Decimal

	// Occasional gains.
	OccasionalGainsRate        decimal.Decimal
	LotteryRate                decimal.Decimal
	InheritanceHousingCapUVT   decimal.Decimal
	InheritanceRealEstateCapUVT decimal.Decimal
	InheritanceOtherCapUVT     decimal.Decimal
	DonationExemptionRate      decimal.Decimal
	DonationExemptionCapUVT    decimal.Decimal
	LifeInsuranceCapUVT        decimal.Decimal
	ResidenceSaleCapUVT        decimal.Decimal

	// Wealth tax.
	WealthTaxFloorUVT          decimal.Decimal
	WealthResidenceCapUVT      decimal.Decimal

	// Credits.
	DonationCreditRate  decimal.Decimal
	RnDCreditRate       decimal.Decimal
	CreditGroupCapRate  decimal.Decimal // donations + R&D as a fraction of tax
	ICACreditRate       decimal.Decimal

	// Advance payment percentages by declaration-year count.
	AdvanceFirstYearRate  decimal.Decimal
	AdvanceSecondYearRate decimal.Decimal
	AdvanceLaterRate      decimal.Decimal

	// Filing obligation thresholds, UVT.
	FilingAssetsUVT       decimal.Decimal
	FilingIncomeUVT       decimal.Decimal
	FilingCardUVT         decimal.Decimal
	FilingPurchasesUVT    decimal.Decimal
	FilingDepositsUVT     decimal.Decimal
}

// SeveranceStep is one rung of the progressive severance exemption: salaries
// at or under Limit (in UVT) keep ExemptShare of the severance.
type SeveranceStep struct {
	Limit       decimal.Decimal
	ExemptShare decimal.Decimal
}

// ToUVT converts a peso amount to UVT for the rules' year.
func (r Rules) ToUVT(pesos decimal.Decimal) decimal.Decimal {
	return pesos.Div(r.UVTValue)
}

// FromUVT converts a UVT amount to pesos for the rules' year.
func (r Rules) FromUVT(uvt decimal.Decimal) decimal.Decimal {
	return uvt.Mul(r.UVTValue)
}

// UVT is shorthand for a whole-UVT peso amount.
func (r Rules) UVT(n int64) decimal.Decimal {
	return decimal.NewFromInt(n).Mul(r.UVTValue)
}

// ForYear returns the rule set for a supported tax year. Unsupported years are
// a caller error, never silently defaulted.
func ForYear(year int) (Rules, error) {
	switch year {
	case 2023:
		return rules2023(), nil
	case 2024:
		return rules2024(), nil
	default:
		return Rules{}, fmt.Errorf("unsupported tax year %d (supported: 2023, 2024)", year)
	}
}

func d(f float64) decimal.Decimal      { return decimal.NewFromFloat(f) }
func di(n int64) decimal.Decimal       { return decimal.NewFromInt(n) }

// incomeTable is the Art. 241 personal income table; it has not changed
// between the supported years (only the UVT value moves).
func incomeTable() Table {
	return Table{
		{Lower: di(0), Upper: di(1090), Rate: d(0), BaseAmount: di(0)},
		{Lower: di(1090), Upper: di(1700), Rate: d(0.19), BaseAmount: di(0)},
		{Lower: di(1700), Upper: di(4100), Rate: d(0.28), BaseAmount: di(116)},
		{Lower: di(4100), Upper: di(8670), Rate: d(0.33), BaseAmount: di(788)},
		{Lower: di(8670), Upper: di(18970), Rate: d(0.35), BaseAmount: di(2296)},
		{Lower: di(18970), Upper: di(31000), Rate: d(0.37), BaseAmount: di(5901)},
		{Lower: di(31000), Rate: d(0.39), BaseAmount: di(10352)},
	}
}

func wealthTable() Table {
	return Table{
		{Lower: di(0), Upper: di(72000), Rate: d(0), BaseAmount: di(0)},
		{Lower: di(72000), Upper: di(122000), Rate: d(0.005), BaseAmount: di(0)},
		{Lower: di(122000), Upper: di(239000), Rate: d(0.01), BaseAmount: di(250)},
		{Lower: di(239000), Rate: d(0.015), BaseAmount: di(1420)},
	}
}

func severanceLadder() []SeveranceStep {
	return []SeveranceStep{
		{Limit: di(350), ExemptShare: d(1.00)},
		{Limit: di(410), ExemptShare: d(0.90)},
		{Limit: di(470), ExemptShare: d(0.80)},
		{Limit: di(530), ExemptShare: d(0.60)},
		{Limit: di(590), ExemptShare: d(0.40)},
		{Limit: di(650), ExemptShare: d(0.20)},
	}
}

// baseRules carries the constants shared by every supported year.
func baseRules() Rules {
	return Rules{
		IncomeTable: incomeTable(),
		WealthTable: wealthTable(),

		VoluntaryPensionCapUVT:       di(2500),
		HousingInterestMonthlyCapUVT: di(100),
		PrepaidHealthMonthlyCapUVT:   di(16),
		DependentsRate:               d(0.10),
		DependentsMonthlyCapUVT:      di(32),
		DependentFixedAllowanceUVT:   di(72),
		GMFDeductibleShare:           d(0.50),
		EducationLoanCapUVT:          di(100),
		ElectronicInvoiceRate:        d(0.01),
		ElectronicInvoiceCapUVT:      di(240),
		RetirementSavingsRate:        d(0.30),
		RetirementSavingsCapUVT:      di(3800),
		LaborExemptionRate:           d(0.25),
		LaborExemptionCapUVT:         di(790),
		GlobalCapRate:                d(0.40),
		GlobalCapUVT:                 di(1340),
		SeveranceLadder:              severanceLadder(),

		PensionInstallmentExemptionUVT: di(1000),

		DividendNonResidentRate:  d(0.20),
		DividendUntaxedFlatRate:  d(0.35),
		DividendWithholdingFloor: di(1090),
		DividendWithholdingRate:  d(0.15),
		DividendDiscountFloor:    di(1090),
		DividendDiscountRate:     d(0.19),

		OccasionalGainsRate:         d(0.15),
		LotteryRate:                 d(0.20),
		InheritanceHousingCapUVT:    di(13000),
		InheritanceRealEstateCapUVT: di(6500),
		InheritanceOtherCapUVT:      di(3250),
		DonationExemptionRate:       d(0.20),
		DonationExemptionCapUVT:     di(1625),
		LifeInsuranceCapUVT:         di(3250),
		ResidenceSaleCapUVT:         di(5000),

		WealthTaxFloorUVT:     di(72000),
		WealthResidenceCapUVT: di(12000),

		DonationCreditRate: d(0.25),
		RnDCreditRate:      d(0.30),
		CreditGroupCapRate: d(0.25),
		ICACreditRate:      d(0.50),

		AdvanceFirstYearRate:  d(0.25),
		AdvanceSecondYearRate: d(0.50),
		AdvanceLaterRate:      d(0.75),

		FilingAssetsUVT:    di(4500),
		FilingIncomeUVT:    di(1400),
		FilingCardUVT:      di(1400),
		FilingPurchasesUVT: di(1400),
		FilingDepositsUVT:  di(1400),
	}
}

func rules2023() Rules {
	r := baseRules()
	r.Year = 2023
	r.UVTValue = di(42412)
	r.BankYieldInflationShare = d(0.5918)
	return r
}

func rules2024() Rules {
	r := baseRules()
	r.Year = 2024
	r.UVTValue = di(47065)
	r.BankYieldInflationShare = d(0.6237)
	return r
}

// SeveranceExemptShare returns the exempt fraction of severance income for an
// average monthly salary. The ladder thresholds are UVT amounts; above the
// last rung the exemption is zero.
func (r Rules) SeveranceExemptShare(avgMonthlySalary decimal.Decimal) decimal.Decimal {
	if r.UVTValue.IsZero() {
		return decimal.Zero
	}
	units := avgMonthlySalary.Div(r.UVTValue)
	for _, step := range r.SeveranceLadder {
		if units.LessThanOrEqual(step.Limit) {
			return step.ExemptShare
		}
	}
	return decimal.Zero
}
