package calculation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// CalculationEngine sequences the schedule calculators into one declaration.
// It is a pure computation: one call reads the taxpayer record and the year's
// rule table, allocates only local state, and returns an immutable result.
type CalculationEngine struct {
	Logger Logger
	Debug  bool
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate produces the full declaration for a taxpayer. An unsupported tax
// year is the only error; everything downstream is a total function.
//
// When fee income reports ICA paid, the amount is always converted into a
// 50% tax credit rather than a cost deduction: under the current bracket
// ceiling the credit dominates. This holds only while the top marginal rate
// stays below the credit percentage; revisit if the table is ever revised
// upward.
func (ce *CalculationEngine) Calculate(tp *domain.Taxpayer) (*domain.DeclarationResult, error) {
	r, err := rules.ForYear(tp.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("calculating declaration: %w", err)
	}

	if icaPaid := totalICAOnFees(tp); icaPaid.GreaterThan(decimal.Zero) {
		credit := domain.TaxCredit{
			Description: "ICA paid on fee income",
			Category:    domain.CreditOther,
			Value:       icaPaid.Mul(r.ICACreditRate).Round(0),
		}
		ce.Logger.Debugf("converting ICA %s into tax credit %s", icaPaid, credit.Value)
		tp = tp.WithCredit(credit)
	}

	return ce.calculate(tp, r), nil
}

// calculate runs the pipeline proper against a resolved rule set.
func (ce *CalculationEngine) calculate(tp *domain.Taxpayer, r rules.Rules) *domain.DeclarationResult {
	generalIncomes, occasionalIncomes := splitByHoldingPeriod(tp.Incomes)

	general := NewGeneralScheduleCalculator(r).Calculate(generalIncomes, tp.Deductions, tp.Dependents, tp.PriorYearLosses)
	pensions := NewPensionsCalculator(r).Calculate(tp.Incomes)
	dividends := NewDividendsCalculator(r).Calculate(tp.Incomes, tp.IsResident)
	occasional := NewOccasionalGainsCalculator(r).Calculate(occasionalIncomes)
	wealth := NewWealthTaxCalculator(r).Calculate(tp)

	// Marginal stacking: evaluate the progressive table on three increasing
	// consolidated bases and take successive differences. The table is
	// non-linear, so each dividend layer's tax must be isolated this way
	// rather than computed flat.
	base0 := general.TaxableIncome.Add(pensions.TaxableIncome)
	base1 := base0.Add(dividends.TaxedSubTotal)
	base2 := base1.Add(dividends.UntaxedRemainder)

	scheduleTax := r.ApplyPesos(r.IncomeTable, base0)
	taxWithTaxedDiv := r.ApplyPesos(r.IncomeTable, base1)
	taxWithAllDiv := r.ApplyPesos(r.IncomeTable, base2)

	taxedLayerTax := taxWithTaxedDiv.Sub(scheduleTax)
	dividends.MarginalTax = taxWithAllDiv.Sub(scheduleTax)
	dividends.Discount = NewDividendsCalculator(r).Discount(dividends.TaxedSubTotal, taxedLayerTax)

	if ce.Debug {
		ce.Logger.Debugf("consolidated bases: %s / %s / %s; schedule tax %s, dividend layers %s",
			base0, base1, base2, scheduleTax, dividends.MarginalTax)
	}

	totalIncomeTax := taxWithAllDiv.
		Sub(dividends.Discount).
		Add(dividends.UntaxedFlatTax).
		Add(dividends.NonResidentTax).
		Add(occasional.GainsTax).
		Add(occasional.LotteryTax)

	foreignNet := foreignSourceNet(tp.Incomes)
	credits := NewTaxCreditCalculator(r).Calculate(tp.TaxCredits, totalIncomeTax, foreignNet, base2)
	netTax := totalIncomeTax.Sub(credits.Total)
	if netTax.LessThan(decimal.Zero) {
		netTax = decimal.Zero
	}

	withholding := reportedWithholdingExceptDividends(tp.Incomes).Add(dividends.Withholding)
	advance := NewAdvancePaymentCalculator(r).Calculate(tp.DeclarationYears, netTax, tp.PriorYearTax, withholding)
	filing := NewFilingObligationChecker(r).Check(tp)

	balance := netTax.Add(wealth.Tax).Add(advance).Sub(withholding).Sub(tp.PriorYearAdvance)

	return &domain.DeclarationResult{
		ID:           uuid.NewString(),
		TaxYear:      tp.TaxYear,
		CalculatedAt: time.Now().UTC(),

		General:    general,
		Pensions:   pensions,
		Dividends:  dividends,
		Occasional: occasional,
		Wealth:     wealth,

		ScheduleTax:      scheduleTax,
		TotalIncomeTax:   totalIncomeTax,
		Credits:          credits,
		NetTax:           netTax,
		TotalWithholding: withholding,
		AdvancePayment:   advance,
		PriorAdvance:     tp.PriorYearAdvance,
		BalanceDue:       balance,
		Filing:           filing,
		FilingDeadline:   FilingDeadline(tp.DocumentNumber),
	}
}

// splitByHoldingPeriod routes occasional-gain records held under two years
// into the general schedule as non-labor income. The occasional-gains
// calculator only ever sees long-held records.
func splitByHoldingPeriod(incomes []domain.IncomeSource) (general, occasional []domain.IncomeSource) {
	for _, inc := range incomes {
		if inc.Category == domain.IncomeOccasionalGain && inc.HoldingYears < 2 {
			reclassified := inc
			reclassified.Category = domain.IncomeNonLabor
			general = append(general, reclassified)
			continue
		}
		general = append(general, inc)
		if inc.Category == domain.IncomeOccasionalGain || inc.Category == domain.IncomeLottery {
			occasional = append(occasional, inc)
		}
	}
	return general, occasional
}

// totalICAOnFees sums the local-tax payments reported on fee income.
func totalICAOnFees(tp *domain.Taxpayer) decimal.Decimal {
	total := decimal.Zero
	for _, inc := range tp.Incomes {
		if inc.Category == domain.IncomeFees {
			total = total.Add(inc.ICAPaid)
		}
	}
	return total
}

// foreignSourceNet is the net income attributable to foreign-source records,
// feeding the proportional foreign-tax-credit limit.
func foreignSourceNet(incomes []domain.IncomeSource) decimal.Decimal {
	total := decimal.Zero
	for _, inc := range incomes {
		if !inc.IsForeignSource {
			continue
		}
		net := inc.Value.Sub(inc.Costs).Sub(inc.MandatoryContributions())
		if net.GreaterThan(decimal.Zero) {
			total = total.Add(net)
		}
	}
	return total
}

// reportedWithholdingExceptDividends aggregates record-level withholding.
// Dividend withholding is computed by schedule, not taken from the records,
// so those lines are skipped to avoid double counting.
func reportedWithholdingExceptDividends(incomes []domain.IncomeSource) decimal.Decimal {
	total := decimal.Zero
	for _, inc := range incomes {
		if inc.Category == domain.IncomeDividendTaxed || inc.Category == domain.IncomeDividendUntaxed {
			continue
		}
		total = total.Add(inc.Withholding)
	}
	return total
}
