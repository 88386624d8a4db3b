package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// CSVFormatter renders the settlement lines as a two-column CSV, one line
// item per row.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.DeclarationResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][2]string{
		{"line", "amount"},
		{"general_gross_income", fixed(result.General.GrossIncome)},
		{"general_incr", fixed(result.General.INCR)},
		{"general_capped_claims", fixed(result.General.CappedClaims)},
		{"general_taxable_income", fixed(result.General.TaxableIncome)},
		{"pensions_taxable_income", fixed(result.Pensions.TaxableIncome)},
		{"dividends_gross", fixed(result.Dividends.GrossIncome)},
		{"dividends_marginal_tax", fixed(result.Dividends.MarginalTax)},
		{"dividends_discount", fixed(result.Dividends.Discount)},
		{"occasional_taxable_gains", fixed(result.Occasional.TaxableGains)},
		{"occasional_gains_tax", fixed(result.Occasional.GainsTax)},
		{"lottery_tax", fixed(result.Occasional.LotteryTax)},
		{"wealth_tax", fixed(result.Wealth.Tax)},
		{"total_income_tax", fixed(result.TotalIncomeTax)},
		{"tax_credits", fixed(result.Credits.Total)},
		{"net_tax", fixed(result.NetTax)},
		{"withholding", fixed(result.TotalWithholding)},
		{"advance_payment", fixed(result.AdvancePayment)},
		{"balance_due", fixed(result.BalanceDue)},
	}

	for _, row := range rows {
		if err := w.Write(row[:]); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fixed(v decimal.Decimal) string {
	return v.StringFixed(0)
}
