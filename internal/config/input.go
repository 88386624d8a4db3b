package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// InputParser loads and validates taxpayer input files. All input hygiene
// lives here: the calculators downstream are total functions and assume
// well-formed records.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a taxpayer record from a YAML file, validates it, and
// fills default classifications for untagged records.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Taxpayer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tp domain.Taxpayer
	if err := yaml.Unmarshal(data, &tp); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTaxpayer(&tp); err != nil {
		return nil, fmt.Errorf("taxpayer validation failed: %w", err)
	}
	ip.ApplyDefaultClassification(&tp)

	return &tp, nil
}

// ValidateTaxpayer checks the record for the malformed input the engine does
// not defend against: negative amounts, unknown categories, missing year.
func (ip *InputParser) ValidateTaxpayer(tp *domain.Taxpayer) error {
	if tp.TaxYear == 0 {
		return fmt.Errorf("tax_year is required")
	}
	if tp.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	if tp.DeclarationYears < 0 {
		return fmt.Errorf("declaration_years cannot be negative")
	}
	for _, v := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"prior_year_tax", tp.PriorYearTax},
		{"prior_year_advance", tp.PriorYearAdvance},
		{"prior_year_losses", tp.PriorYearLosses},
		{"card_consumption", tp.CardConsumption},
		{"total_purchases", tp.TotalPurchases},
		{"bank_deposits", tp.BankDeposits},
	} {
		if v.value.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative", v.name)
		}
	}

	for i, inc := range tp.Incomes {
		if err := ip.validateIncome(&inc); err != nil {
			return fmt.Errorf("income %d (%s): %w", i, inc.Description, err)
		}
	}
	for i, ded := range tp.Deductions {
		if err := ip.validateDeduction(&ded); err != nil {
			return fmt.Errorf("deduction %d (%s): %w", i, ded.Description, err)
		}
	}
	for i, a := range tp.Assets {
		if a.Value.LessThan(decimal.Zero) || a.TaxCost.LessThan(decimal.Zero) || a.CadastralValue.LessThan(decimal.Zero) {
			return fmt.Errorf("asset %d (%s): values cannot be negative", i, a.Description)
		}
	}
	for i, l := range tp.Liabilities {
		if l.Value.LessThan(decimal.Zero) {
			return fmt.Errorf("liability %d (%s): value cannot be negative", i, l.Description)
		}
	}
	for i, c := range tp.TaxCredits {
		if !validCreditCategories[c.Category] {
			return fmt.Errorf("tax credit %d (%s): unknown category %q", i, c.Description, c.Category)
		}
		if c.Value.LessThan(decimal.Zero) {
			return fmt.Errorf("tax credit %d (%s): value cannot be negative", i, c.Description)
		}
	}

	return nil
}

var validIncomeCategories = map[domain.IncomeCategory]bool{
	domain.IncomeLabor: true, domain.IncomeFees: true, domain.IncomeCapital: true,
	domain.IncomeNonLabor: true, domain.IncomeSeverance: true, domain.IncomeSeveranceInterest: true,
	domain.IncomePension: true, domain.IncomeDividendTaxed: true, domain.IncomeDividendUntaxed: true,
	domain.IncomeOccasionalGain: true, domain.IncomeLottery: true,
}

var validDeductionCategories = map[domain.DeductionCategory]bool{
	domain.DeductionHousingInterest: true, domain.DeductionPrepaidHealth: true,
	domain.DeductionElectronicInvoice: true, domain.DeductionGMF: true,
	domain.DeductionEducationLoan: true, domain.DeductionOther: true,
	domain.ExemptionRetirementSavings: true, domain.ExemptionOther: true,
}

var validCreditCategories = map[domain.TaxCreditCategory]bool{
	domain.CreditForeignTax: true, domain.CreditDonation: true, domain.CreditFoodDonation: true,
	domain.CreditRnDInvestment: true, domain.CreditFixedAssetVAT: true, domain.CreditOther: true,
}

func (ip *InputParser) validateIncome(inc *domain.IncomeSource) error {
	if !validIncomeCategories[inc.Category] {
		return fmt.Errorf("unknown category %q", inc.Category)
	}
	for _, v := range []decimal.Decimal{
		inc.Value, inc.HealthContribution, inc.PensionContribution, inc.SolidarityFund,
		inc.VoluntaryPension, inc.Costs, inc.Withholding, inc.ICAPaid, inc.AverageSalary,
	} {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("amounts cannot be negative")
		}
	}
	if inc.Category == domain.IncomePension && inc.PensionInstallments != 0 &&
		inc.PensionInstallments != 13 && inc.PensionInstallments != 14 {
		return fmt.Errorf("pension installments must be 13 or 14")
	}
	if inc.HoldingYears < 0 {
		return fmt.Errorf("holding years cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateDeduction(ded *domain.Deduction) error {
	if !validDeductionCategories[ded.Category] {
		return fmt.Errorf("unknown category %q", ded.Category)
	}
	if ded.Value.LessThan(decimal.Zero) {
		return fmt.Errorf("value cannot be negative")
	}
	if ded.Months < 0 || ded.Months > 12 {
		return fmt.Errorf("months must be between 0 and 12")
	}
	return nil
}
