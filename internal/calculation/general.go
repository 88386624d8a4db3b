package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// GeneralScheduleCalculator depurates labor, fee, capital and non-labor
// income into one taxable base.
//
// DEPURATION ORDER (the steps interact and must not be reordered):
//  1. classify incomes into three disjoint buckets
//  2. per-record INCR: mandatory contributions plus voluntary pension under a
//     global running cap consumed in declaration order
//  3. inflationary component on bank yields, before bucket aggregation
//  4. deduction ledger (per-month caps, GMF share, absolute caps)
//  5. exemption ledger (retirement savings, severance ladder, pass-through)
//  6. sub-allocation: free claims against capital and costs buckets first
//  7. 25% labor exemption on what is left of the labor-eligible bucket
//  8. global cap: min(40% of gross-minus-INCR, 1340 UVT); electronic-invoice
//     and the fixed dependent allowance bypass it
//  9. prior-year losses, only after the cap, never below zero
// 10. CAN-treaty income subtracted once, at the very end
type GeneralScheduleCalculator struct {
	Rules rules.Rules
}

// NewGeneralScheduleCalculator creates a general schedule calculator for one year.
func NewGeneralScheduleCalculator(r rules.Rules) *GeneralScheduleCalculator {
	return &GeneralScheduleCalculator{Rules: r}
}

// voluntaryCapState threads the global voluntary-pension cap through a fold
// over the income records. The cap is consumed in declaration order; once
// exhausted, later records contribute nothing.
type voluntaryCapState struct {
	remaining decimal.Decimal
}

// take grants as much of the requested contribution as the cap still allows.
func (s voluntaryCapState) take(requested decimal.Decimal) (decimal.Decimal, voluntaryCapState) {
	if requested.LessThanOrEqual(decimal.Zero) || s.remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, s
	}
	granted := decimal.Min(requested, s.remaining)
	return granted, voluntaryCapState{remaining: s.remaining.Sub(granted)}
}

// bucketTotals accumulates one classification bucket.
type bucketTotals struct {
	gross decimal.Decimal
	incr  decimal.Decimal
	costs decimal.Decimal
}

func (b bucketTotals) net() decimal.Decimal {
	n := b.gross.Sub(b.incr).Sub(b.costs)
	if n.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return n
}

// Calculate runs the full depuration. The caller has already reclassified
// short-held occasional gains into this schedule's income list.
func (g *GeneralScheduleCalculator) Calculate(incomes []domain.IncomeSource, deductions []domain.Deduction, dependents int, priorLosses decimal.Decimal) domain.GeneralScheduleResult {
	r := g.Rules

	var laborEligible, laborWithCosts, capitalNonLabor bucketTotals
	severanceExemption := decimal.Zero
	canTreatyNet := decimal.Zero
	gross := decimal.Zero
	totalINCR := decimal.Zero

	capState := voluntaryCapState{remaining: r.FromUVT(r.VoluntaryPensionCapUVT)}

	for _, inc := range incomes {
		switch inc.Category {
		case domain.IncomeLabor, domain.IncomeFees, domain.IncomeCapital, domain.IncomeNonLabor,
			domain.IncomeSeverance, domain.IncomeSeveranceInterest:
			// consumed here
		default:
			// Other schedules' records pass through untouched.
			continue
		}

		value := inc.Value

		// Bank yields carry a statutory non-taxable inflationary component,
		// removed before the value reaches any bucket.
		if inc.Category == domain.IncomeCapital && inc.IsBankYield {
			value = value.Sub(value.Mul(r.BankYieldInflationShare))
		}

		var voluntary decimal.Decimal
		voluntary, capState = capState.take(inc.VoluntaryPension)
		incr := inc.MandatoryContributions().Add(voluntary)

		gross = gross.Add(value)
		totalINCR = totalINCR.Add(incr)

		switch inc.Category {
		case domain.IncomeLabor:
			laborEligible.gross = laborEligible.gross.Add(value)
			laborEligible.incr = laborEligible.incr.Add(incr)
		case domain.IncomeSeverance, domain.IncomeSeveranceInterest:
			laborEligible.gross = laborEligible.gross.Add(value)
			laborEligible.incr = laborEligible.incr.Add(incr)
			share := r.SeveranceExemptShare(inc.AverageSalary)
			severanceExemption = severanceExemption.Add(value.Mul(share))
		case domain.IncomeFees:
			if inc.ClaimsCosts {
				laborWithCosts.gross = laborWithCosts.gross.Add(value)
				laborWithCosts.incr = laborWithCosts.incr.Add(incr)
				laborWithCosts.costs = laborWithCosts.costs.Add(inc.Costs)
			} else {
				laborEligible.gross = laborEligible.gross.Add(value)
				laborEligible.incr = laborEligible.incr.Add(incr)
			}
		case domain.IncomeCapital, domain.IncomeNonLabor:
			capitalNonLabor.gross = capitalNonLabor.gross.Add(value)
			capitalNonLabor.incr = capitalNonLabor.incr.Add(incr)
			capitalNonLabor.costs = capitalNonLabor.costs.Add(inc.Costs)
		}

		if inc.IsCANTreaty {
			net := value.Sub(incr).Sub(inc.Costs)
			if net.GreaterThan(decimal.Zero) {
				canTreatyNet = canTreatyNet.Add(net)
			}
		}
	}

	// Tributary income: gross minus INCR, before costs. The retirement-savings
	// cap and the global cap are both measured against it.
	tributaryIncome := gross.Sub(totalINCR)

	freeDeductions, einvoiceDeduction := g.deductionLedger(deductions, gross, dependents)
	retirementSavings, otherExemptions := g.exemptionLedger(deductions, tributaryIncome)

	// Sub-allocation: spend freely-allocable claims against the buckets that
	// get no proportional exemption first, protecting the labor-eligible base.
	freeClaims := freeDeductions.Add(otherExemptions)
	usedOnCapital := decimal.Min(freeClaims, capitalNonLabor.net())
	freeClaims = freeClaims.Sub(usedOnCapital)
	usedOnCosts := decimal.Min(freeClaims, laborWithCosts.net())
	spillToLabor := freeClaims.Sub(usedOnCosts)

	// 25% labor exemption on the labor-eligible remainder, net of spilled
	// claims and source-tied exemptions.
	laborBase := laborEligible.net().Sub(spillToLabor).Sub(retirementSavings).Sub(severanceExemption)
	if laborBase.LessThan(decimal.Zero) {
		laborBase = decimal.Zero
	}
	laborExemption := decimal.Min(laborBase.Mul(r.LaborExemptionRate), r.FromUVT(r.LaborExemptionCapUVT))

	totalDeductions := freeDeductions
	totalExemptions := retirementSavings.Add(severanceExemption).Add(otherExemptions).Add(laborExemption)

	// Global cap over everything claimed so far. The electronic-invoice
	// deduction and the fixed per-dependent allowance sit outside it.
	globalCap := decimal.Min(tributaryIncome.Mul(r.GlobalCapRate), r.FromUVT(r.GlobalCapUVT))
	if globalCap.LessThan(decimal.Zero) {
		globalCap = decimal.Zero
	}
	cappedClaims := decimal.Min(totalDeductions.Add(totalExemptions), globalCap)

	dependentAllowance := r.FromUVT(r.DependentFixedAllowanceUVT).Mul(decimal.NewFromInt(int64(dependents)))
	uncappedClaims := einvoiceDeduction.Add(dependentAllowance)

	taxable := gross.Sub(totalINCR).Sub(laborWithCosts.costs).Sub(capitalNonLabor.costs).Sub(cappedClaims).Sub(uncappedClaims)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	// Losses only reduce what the caps left taxable, never below zero.
	lossesApplied := decimal.Min(priorLosses, taxable)
	if lossesApplied.LessThan(decimal.Zero) {
		lossesApplied = decimal.Zero
	}
	taxable = taxable.Sub(lossesApplied)

	// CAN-treaty income rode through every intermediate base; it leaves once,
	// here, and only here.
	taxable = taxable.Sub(canTreatyNet)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	return domain.GeneralScheduleResult{
		GrossIncome:     gross,
		INCR:            totalINCR,
		Deductions:      totalDeductions,
		Exemptions:      totalExemptions,
		LaborExemption:  laborExemption,
		CappedClaims:    cappedClaims,
		UncappedClaims:  uncappedClaims,
		LossesApplied:   lossesApplied,
		CANTreatyIncome: canTreatyNet,
		TaxableIncome:   taxable,
	}
}

// deductionLedger applies the per-category cap rules and returns the
// cap-subject total plus the electronic-invoice deduction, which bypasses the
// global cap.
func (g *GeneralScheduleCalculator) deductionLedger(deductions []domain.Deduction, gross decimal.Decimal, dependents int) (capped, einvoice decimal.Decimal) {
	r := g.Rules

	for _, ded := range deductions {
		months := decimal.NewFromInt(int64(monthsOrFullYear(ded.Months)))
		switch ded.Category {
		case domain.DeductionHousingInterest:
			cap := r.FromUVT(r.HousingInterestMonthlyCapUVT).Mul(months)
			capped = capped.Add(decimal.Min(ded.Value, cap))
		case domain.DeductionPrepaidHealth:
			cap := r.FromUVT(r.PrepaidHealthMonthlyCapUVT).Mul(months)
			capped = capped.Add(decimal.Min(ded.Value, cap))
		case domain.DeductionGMF:
			capped = capped.Add(ded.Value.Mul(r.GMFDeductibleShare))
		case domain.DeductionEducationLoan:
			capped = capped.Add(decimal.Min(ded.Value, r.FromUVT(r.EducationLoanCapUVT)))
		case domain.DeductionElectronicInvoice:
			claim := ded.Value.Mul(r.ElectronicInvoiceRate)
			einvoice = einvoice.Add(decimal.Min(claim, r.FromUVT(r.ElectronicInvoiceCapUVT)))
		case domain.DeductionOther:
			capped = capped.Add(ded.Value)
		}
	}

	// Dependents deduction: 10% of gross, capped per month, claimed without a
	// ledger entry when the taxpayer reports dependents.
	if dependents > 0 {
		cap := r.FromUVT(r.DependentsMonthlyCapUVT).Mul(decimal.NewFromInt(12))
		capped = capped.Add(decimal.Min(gross.Mul(r.DependentsRate), cap))
	}

	return capped, einvoice
}

// exemptionLedger caps the retirement-savings exemption against tributary
// income and passes other exemption entries through.
func (g *GeneralScheduleCalculator) exemptionLedger(deductions []domain.Deduction, tributaryIncome decimal.Decimal) (retirementSavings, other decimal.Decimal) {
	r := g.Rules

	for _, ded := range deductions {
		switch ded.Category {
		case domain.ExemptionRetirementSavings:
			retirementSavings = retirementSavings.Add(ded.Value)
		case domain.ExemptionOther:
			other = other.Add(ded.Value)
		}
	}

	cap := decimal.Min(tributaryIncome.Mul(r.RetirementSavingsRate), r.FromUVT(r.RetirementSavingsCapUVT))
	if cap.LessThan(decimal.Zero) {
		cap = decimal.Zero
	}
	retirementSavings = decimal.Min(retirementSavings, cap)

	return retirementSavings, other
}

func monthsOrFullYear(months int) int {
	if months <= 0 || months > 12 {
		return 12
	}
	return months
}
