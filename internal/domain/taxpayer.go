package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeCategory identifies which schedule consumes an income record.
type IncomeCategory string

const (
	IncomeLabor             IncomeCategory = "labor"
	IncomeFees              IncomeCategory = "fees"
	IncomeCapital           IncomeCategory = "capital"
	IncomeNonLabor          IncomeCategory = "non_labor"
	IncomeSeverance         IncomeCategory = "severance"
	IncomeSeveranceInterest IncomeCategory = "severance_interest"
	IncomePension           IncomeCategory = "pension"
	IncomeDividendTaxed     IncomeCategory = "dividend_taxed"   // distributed from profits already taxed at the company
	IncomeDividendUntaxed   IncomeCategory = "dividend_untaxed" // distributed from untaxed company profits
	IncomeOccasionalGain    IncomeCategory = "occasional_gain"
	IncomeLottery           IncomeCategory = "lottery"
)

// GainKind is the explicit occasional-gain sub-category driving exemption
// caps. Ingestion fills it; when absent, the input parser maps it from the
// description as a best-effort default. The calculators never inspect
// free text themselves.
type GainKind string

const (
	GainUnclassified         GainKind = ""
	GainInheritanceHousing   GainKind = "inheritance_housing"
	GainInheritanceRealEstate GainKind = "inheritance_real_estate"
	GainInheritanceOther     GainKind = "inheritance_other"
	GainDonation             GainKind = "donation"
	GainLifeInsurance        GainKind = "life_insurance"
	GainResidenceSale        GainKind = "residence_sale"
	GainOther                GainKind = "other"
)

// DeductionCategory identifies the cap rule a deduction is subject to.
type DeductionCategory string

const (
	DeductionHousingInterest   DeductionCategory = "housing_interest"
	DeductionPrepaidHealth     DeductionCategory = "prepaid_health"
	DeductionElectronicInvoice DeductionCategory = "electronic_invoice"
	DeductionGMF               DeductionCategory = "gmf"
	DeductionEducationLoan     DeductionCategory = "education_loan"
	DeductionOther             DeductionCategory = "other"

	// Exemption categories carried in the same ledger.
	ExemptionRetirementSavings DeductionCategory = "retirement_savings" // AFC / voluntary pension fund
	ExemptionOther             DeductionCategory = "exemption_other"
)

// TaxCreditCategory identifies how a credit is limited before reducing tax.
type TaxCreditCategory string

const (
	CreditForeignTax    TaxCreditCategory = "foreign_tax"
	CreditDonation      TaxCreditCategory = "donation"
	CreditFoodDonation  TaxCreditCategory = "food_donation"
	CreditRnDInvestment TaxCreditCategory = "rnd_investment"
	CreditFixedAssetVAT TaxCreditCategory = "fixed_asset_vat"
	CreditOther         TaxCreditCategory = "other"
)

// IncomeSource is one declared income line item. Category-specific fields are
// optional and default to zero; the schedule calculators treat a missing value
// as zero rather than an error.
type IncomeSource struct {
	Description         string            `yaml:"description" json:"description"`
	Category            IncomeCategory    `yaml:"category" json:"category"`
	Value               decimal.Decimal   `yaml:"value" json:"value"`
	HealthContribution  decimal.Decimal   `yaml:"health_contribution" json:"health_contribution"`
	PensionContribution decimal.Decimal   `yaml:"pension_contribution" json:"pension_contribution"`
	SolidarityFund      decimal.Decimal   `yaml:"solidarity_fund" json:"solidarity_fund"`
	VoluntaryPension    decimal.Decimal   `yaml:"voluntary_pension" json:"voluntary_pension"`
	Costs               decimal.Decimal   `yaml:"costs" json:"costs"`
	Withholding         decimal.Decimal   `yaml:"withholding" json:"withholding"`
	ICAPaid             decimal.Decimal   `yaml:"ica_paid" json:"ica_paid"`
	ClaimsCosts         bool              `yaml:"claims_costs" json:"claims_costs"`         // fee income electing itemized costs over the 25% exemption
	IsBankYield         bool              `yaml:"is_bank_yield" json:"is_bank_yield"`       // capital income with an inflationary component
	IsForeignSource     bool              `yaml:"is_foreign_source" json:"is_foreign_source"`
	IsCANTreaty         bool              `yaml:"is_can_treaty" json:"is_can_treaty"`       // exempt under the Andean Community treaty
	HoldingYears        int               `yaml:"holding_years" json:"holding_years"`       // occasional gains only
	GainKind            GainKind          `yaml:"gain_kind" json:"gain_kind"`               // occasional gains only
	PensionInstallments int               `yaml:"pension_installments" json:"pension_installments"` // 13 or 14 mesadas
	AverageSalary       decimal.Decimal   `yaml:"average_salary" json:"average_salary"`     // severance exemption reference, monthly
}

// Deduction is one claimed deduction or exemption line item.
type Deduction struct {
	Description string            `yaml:"description" json:"description"`
	Category    DeductionCategory `yaml:"category" json:"category"`
	Value       decimal.Decimal   `yaml:"value" json:"value"`
	Months      int               `yaml:"months" json:"months"` // for per-month capped categories
}

// Asset is a patrimony entry. TaxCost and CadastralValue back the
// higher-of valuation rule for real estate; zero values fall back to Value.
type Asset struct {
	Description        string          `yaml:"description" json:"description"`
	Category           string          `yaml:"category" json:"category"`
	Value              decimal.Decimal `yaml:"value" json:"value"`
	TaxCost            decimal.Decimal `yaml:"tax_cost" json:"tax_cost"`
	CadastralValue     decimal.Decimal `yaml:"cadastral_value" json:"cadastral_value"`
	IsPrimaryResidence bool            `yaml:"is_primary_residence" json:"is_primary_residence"`
}

// Liability is a declared debt reducing net worth.
type Liability struct {
	Description string          `yaml:"description" json:"description"`
	Value       decimal.Decimal `yaml:"value" json:"value"`
}

// TaxCredit reduces tax directly, never the taxable base.
type TaxCredit struct {
	Description string            `yaml:"description" json:"description"`
	Category    TaxCreditCategory `yaml:"category" json:"category"`
	Value       decimal.Decimal   `yaml:"value" json:"value"`
}

// Taxpayer is the complete input record for one declaration. It owns all of
// its child collections; the engine never mutates it.
type Taxpayer struct {
	Name             string `yaml:"name" json:"name"`
	DocumentNumber   string `yaml:"document_number" json:"document_number"`
	TaxYear          int    `yaml:"tax_year" json:"tax_year"`
	IsResident       bool   `yaml:"is_resident" json:"is_resident"`
	IsVATResponsible bool   `yaml:"is_vat_responsible" json:"is_vat_responsible"`
	Dependents       int    `yaml:"dependents" json:"dependents"`
	DeclarationYears int    `yaml:"declaration_years" json:"declaration_years"` // how many years the taxpayer has declared, counting this one

	PriorYearTax     decimal.Decimal `yaml:"prior_year_tax" json:"prior_year_tax"`
	PriorYearAdvance decimal.Decimal `yaml:"prior_year_advance" json:"prior_year_advance"`
	PriorYearLosses  decimal.Decimal `yaml:"prior_year_losses" json:"prior_year_losses"`

	// Filing-obligation inputs reported by banks and card networks.
	CardConsumption decimal.Decimal `yaml:"card_consumption" json:"card_consumption"`
	TotalPurchases  decimal.Decimal `yaml:"total_purchases" json:"total_purchases"`
	BankDeposits    decimal.Decimal `yaml:"bank_deposits" json:"bank_deposits"`

	Incomes     []IncomeSource `yaml:"incomes" json:"incomes"`
	Deductions  []Deduction    `yaml:"deductions" json:"deductions"`
	Assets      []Asset        `yaml:"assets" json:"assets"`
	Liabilities []Liability    `yaml:"liabilities" json:"liabilities"`
	TaxCredits  []TaxCredit    `yaml:"tax_credits" json:"tax_credits"`
}

// IncomesByCategory returns the income records matching any of the given categories.
func (t *Taxpayer) IncomesByCategory(categories ...IncomeCategory) []IncomeSource {
	var matched []IncomeSource
	for _, inc := range t.Incomes {
		for _, c := range categories {
			if inc.Category == c {
				matched = append(matched, inc)
				break
			}
		}
	}
	return matched
}

// TotalGrossIncome sums the gross value of every income record.
func (t *Taxpayer) TotalGrossIncome() decimal.Decimal {
	total := decimal.Zero
	for _, inc := range t.Incomes {
		total = total.Add(inc.Value)
	}
	return total
}

// TotalWithholding sums withholding reported across all income records.
func (t *Taxpayer) TotalWithholding() decimal.Decimal {
	total := decimal.Zero
	for _, inc := range t.Incomes {
		total = total.Add(inc.Withholding)
	}
	return total
}

// GrossAssets sums declared asset values without liabilities.
func (t *Taxpayer) GrossAssets() decimal.Decimal {
	total := decimal.Zero
	for _, a := range t.Assets {
		total = total.Add(a.DeclaredValue())
	}
	return total
}

// NetWorth is gross assets minus liabilities.
func (t *Taxpayer) NetWorth() decimal.Decimal {
	net := t.GrossAssets()
	for _, l := range t.Liabilities {
		net = net.Sub(l.Value)
	}
	return net
}

// WithCredit returns a copy of the taxpayer with one credit appended. The
// child collections are re-sliced, not deep-cloned; callers must treat the
// original and the copy as immutable.
func (t *Taxpayer) WithCredit(credit TaxCredit) *Taxpayer {
	clone := *t
	clone.TaxCredits = make([]TaxCredit, 0, len(t.TaxCredits)+1)
	clone.TaxCredits = append(clone.TaxCredits, t.TaxCredits...)
	clone.TaxCredits = append(clone.TaxCredits, credit)
	return &clone
}

// DeclaredValue applies the higher-of rule for real estate: the greater of
// tax cost and cadastral value when either is reported, otherwise Value.
func (a *Asset) DeclaredValue() decimal.Decimal {
	if a.TaxCost.IsZero() && a.CadastralValue.IsZero() {
		return a.Value
	}
	if a.TaxCost.GreaterThan(a.CadastralValue) {
		return a.TaxCost
	}
	return a.CadastralValue
}

// MandatoryContributions is the INCR base of a single record before the
// voluntary-pension global cap is applied.
func (i *IncomeSource) MandatoryContributions() decimal.Decimal {
	return i.HealthContribution.Add(i.PensionContribution).Add(i.SolidarityFund)
}
