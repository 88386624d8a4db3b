package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// ConsoleFormatter renders the detailed per-schedule breakdown.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *domain.DeclarationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintf(&buf, "INCOME TAX DECLARATION — TAX YEAR %d\n", result.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintln(&buf)

	g := result.General
	fmt.Fprintln(&buf, "GENERAL SCHEDULE")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Gross income:          %s\n", FormatCurrency(g.GrossIncome))
	fmt.Fprintf(&buf, "Non-taxable (INCR):    %s\n", FormatCurrency(g.INCR))
	fmt.Fprintf(&buf, "Capped claims:         %s\n", FormatCurrency(g.CappedClaims))
	fmt.Fprintf(&buf, "Uncapped claims:       %s\n", FormatCurrency(g.UncappedClaims))
	if g.LossesApplied.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&buf, "Losses applied:        %s\n", FormatCurrency(g.LossesApplied))
	}
	if g.CANTreatyIncome.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&buf, "CAN treaty income:     %s\n", FormatCurrency(g.CANTreatyIncome))
	}
	fmt.Fprintf(&buf, "Taxable income:        %s\n", FormatCurrency(g.TaxableIncome))
	fmt.Fprintln(&buf)

	if result.Pensions.GrossIncome.GreaterThan(decimal.Zero) {
		fmt.Fprintln(&buf, "PENSIONS SCHEDULE")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "Gross pensions:        %s\n", FormatCurrency(result.Pensions.GrossIncome))
		fmt.Fprintf(&buf, "Exemption:             %s\n", FormatCurrency(result.Pensions.Exemption))
		fmt.Fprintf(&buf, "Taxable income:        %s\n", FormatCurrency(result.Pensions.TaxableIncome))
		fmt.Fprintln(&buf)
	}

	d := result.Dividends
	if d.GrossIncome.GreaterThan(decimal.Zero) {
		fmt.Fprintln(&buf, "DIVIDENDS SCHEDULE")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "Gross dividends:       %s\n", FormatCurrency(d.GrossIncome))
		if d.NonResidentTax.GreaterThan(decimal.Zero) {
			fmt.Fprintf(&buf, "Non-resident tax:      %s\n", FormatCurrency(d.NonResidentTax))
		} else {
			fmt.Fprintf(&buf, "Flat tax (untaxed):    %s\n", FormatCurrency(d.UntaxedFlatTax))
			fmt.Fprintf(&buf, "Marginal tax (stacked): %s\n", FormatCurrency(d.MarginalTax))
			fmt.Fprintf(&buf, "Discount:              %s\n", FormatCurrency(d.Discount))
		}
		fmt.Fprintf(&buf, "Withholding:           %s\n", FormatCurrency(d.Withholding))
		fmt.Fprintln(&buf)
	}

	o := result.Occasional
	if o.GrossGains.GreaterThan(decimal.Zero) || o.LotteryGross.GreaterThan(decimal.Zero) {
		fmt.Fprintln(&buf, "OCCASIONAL GAINS SCHEDULE")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "Gross gains:           %s\n", FormatCurrency(o.GrossGains))
		fmt.Fprintf(&buf, "Costs:                 %s\n", FormatCurrency(o.Costs))
		fmt.Fprintf(&buf, "Exemptions:            %s\n", FormatCurrency(o.Exemptions))
		fmt.Fprintf(&buf, "Gains tax (15%%):       %s\n", FormatCurrency(o.GainsTax))
		if o.LotteryGross.GreaterThan(decimal.Zero) {
			fmt.Fprintf(&buf, "Lottery gross:         %s\n", FormatCurrency(o.LotteryGross))
			fmt.Fprintf(&buf, "Lottery tax (20%%):     %s\n", FormatCurrency(o.LotteryTax))
		}
		fmt.Fprintln(&buf)
	}

	if result.Wealth.IsSubject {
		fmt.Fprintln(&buf, "WEALTH TAX")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		fmt.Fprintf(&buf, "Net worth:             %s\n", FormatCurrency(result.Wealth.Subject))
		fmt.Fprintf(&buf, "Residence exclusion:   %s\n", FormatCurrency(result.Wealth.ResidenceExclusion))
		fmt.Fprintf(&buf, "Wealth tax:            %s\n", FormatCurrency(result.Wealth.Tax))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "SETTLEMENT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Total income tax:      %s\n", FormatCurrency(result.TotalIncomeTax))
	fmt.Fprintf(&buf, "Tax credits:           %s\n", FormatCurrency(result.Credits.Total))
	fmt.Fprintf(&buf, "Net tax:               %s\n", FormatCurrency(result.NetTax))
	fmt.Fprintf(&buf, "Withholding:           %s\n", FormatCurrency(result.TotalWithholding))
	fmt.Fprintf(&buf, "Advance payment:       %s\n", FormatCurrency(result.AdvancePayment))
	if result.PriorAdvance.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&buf, "Prior-year advance:    %s\n", FormatCurrency(result.PriorAdvance))
	}
	if result.Refundable() {
		fmt.Fprintf(&buf, "BALANCE IN FAVOR:      %s\n", FormatCurrency(result.BalanceDue.Neg()))
	} else {
		fmt.Fprintf(&buf, "BALANCE DUE:           %s\n", FormatCurrency(result.BalanceDue))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FILING OBLIGATION")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if result.Filing.Obligated {
		fmt.Fprintln(&buf, "Obligated to file:")
		for _, reason := range result.Filing.Reasons {
			fmt.Fprintf(&buf, "  • %s\n", reason)
		}
	} else {
		fmt.Fprintln(&buf, "Not obligated to file.")
	}
	if result.FilingDeadline != "" {
		fmt.Fprintf(&buf, "Filing deadline:       %s\n", result.FilingDeadline)
	}

	return buf.Bytes(), nil
}
