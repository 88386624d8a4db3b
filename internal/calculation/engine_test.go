package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogonzalezm/tributo/internal/domain"
)

func TestEngine_UnsupportedYear(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.Calculate(&domain.Taxpayer{TaxYear: 2019})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tax year 2019")
}

func TestEngine_ModestSalaryOwesNothing(t *testing.T) {
	engine := NewCalculationEngine()

	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Incomes: []domain.IncomeSource{
			{
				Category:            domain.IncomeLabor,
				Value:               money(60000000),
				HealthContribution:  money(2400000),
				PensionContribution: money(2400000),
			},
		},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	// Taxable income lands at 41,400,000 pesos, under the first bracket edge.
	assertMoney(t, 41400000, result.General.TaxableIncome)
	assert.True(t, result.NetTax.IsZero())
	assert.True(t, result.BalanceDue.IsZero())
	assert.False(t, result.Filing.Obligated, "60,000,000 of income stays under every threshold")
	assert.NotEmpty(t, result.ID)
}

func TestEngine_TaxedDividendLayerNetsToZero(t *testing.T) {
	r := rules2024(t)
	engine := NewCalculationEngine()

	// 1500 UVT of company-taxed dividends and nothing else: the marginal
	// layer tax is 19% of the excess over 1090 UVT, and the discount is the
	// same 19% of the same excess, so they cancel exactly.
	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Incomes: []domain.IncomeSource{
			{Category: domain.IncomeDividendTaxed, Value: r.UVT(1500)},
		},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	assert.True(t, result.Dividends.MarginalTax.Equal(result.Dividends.Discount),
		"marginal %s vs discount %s", result.Dividends.MarginalTax, result.Dividends.Discount)
	assert.True(t, result.NetTax.IsZero())

	// Withholding at source still happened, so the balance is refundable.
	expectedWH := r.UVT(410).Mul(decimal.NewFromFloat(0.15)).Round(0)
	assert.True(t, result.TotalWithholding.Equal(expectedWH), "got %s", result.TotalWithholding)
	assert.True(t, result.Refundable())
}

func TestEngine_UntaxedDividendsStackMarginally(t *testing.T) {
	r := rules2024(t)
	engine := NewCalculationEngine()

	// A general base already deep into the table, plus untaxed dividends.
	// The flat 35% comes off first; the remainder stacks on top of the
	// general base at the marginal rate, not from bracket zero.
	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Incomes: []domain.IncomeSource{
			{Category: domain.IncomeNonLabor, Value: r.UVT(2000)},
			{Category: domain.IncomeDividendUntaxed, Value: money(20000000)},
		},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	assertMoney(t, 7000000, result.Dividends.UntaxedFlatTax)
	// The base sits in the 28% bracket, so the stacked remainder is taxed
	// at 28%, well above what it would draw starting from zero.
	expectedLayer := result.Dividends.UntaxedRemainder.Mul(decimal.NewFromFloat(0.28))
	assert.True(t, result.Dividends.MarginalTax.Equal(expectedLayer),
		"marginal %s vs expected %s", result.Dividends.MarginalTax, expectedLayer)
}

func TestEngine_ICAConvertsToCredit(t *testing.T) {
	engine := NewCalculationEngine()

	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Incomes: []domain.IncomeSource{
			{Category: domain.IncomeFees, Value: money(100000000), ICAPaid: money(2000000)},
		},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	// Half the local tax paid comes back as an uncapped credit, and the
	// original taxpayer record stays untouched.
	assertMoney(t, 1000000, result.Credits.Uncapped)
	assertMoney(t, 1000000, result.Credits.Total)
	assert.Empty(t, tp.TaxCredits)
}

func TestEngine_ShortHeldGainsMoveToGeneralSchedule(t *testing.T) {
	engine := NewCalculationEngine()

	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Incomes: []domain.IncomeSource{
			{Category: domain.IncomeOccasionalGain, Value: money(30000000), Costs: money(10000000), HoldingYears: 1},
		},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	assert.True(t, result.Occasional.GrossGains.IsZero(), "short-held records leave the schedule")
	assertMoney(t, 20000000, result.General.TaxableIncome, "reclassified as non-labor, costs allowed")
}

func TestEngine_WealthTaxEntersTheBalance(t *testing.T) {
	r := rules2024(t)
	engine := NewCalculationEngine()

	tp := &domain.Taxpayer{
		TaxYear:    2024,
		IsResident: true,
		Assets:     []domain.Asset{{Value: r.UVT(150000)}},
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	assertMoney(t, 24944450, result.Wealth.Tax)
	assertMoney(t, 24944450, result.BalanceDue, "no income tax, the balance is the wealth tax alone")
	assert.True(t, result.Filing.Obligated, "assets over 4500 UVT force filing")
}

func TestEngine_PriorAdvanceCreditsTheBalance(t *testing.T) {
	engine := NewCalculationEngine()

	tp := &domain.Taxpayer{
		TaxYear:          2024,
		IsResident:       true,
		PriorYearAdvance: money(3000000),
	}

	result, err := engine.Calculate(tp)
	require.NoError(t, err)

	assertMoney(t, -3000000, result.BalanceDue)
	assert.True(t, result.Refundable())
}
