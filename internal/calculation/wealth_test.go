package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ogonzalezm/tributo/internal/domain"
)

func TestWealthTax_BelowFloorNotSubject(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	tp := &domain.Taxpayer{
		Assets: []domain.Asset{{Value: r.UVT(72000)}},
	}

	result := calc.Calculate(tp)

	assert.False(t, result.IsSubject, "the floor itself is inclusive")
	assert.True(t, result.Tax.IsZero())
}

func TestWealthTax_ProgressiveBrackets(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	// 150,000 UVT of net worth with no tagged residence: 250 UVT at the
	// second-bracket base plus 1% of the 28,000 UVT excess.
	tp := &domain.Taxpayer{
		Assets: []domain.Asset{{Value: r.UVT(150000)}},
	}

	result := calc.Calculate(tp)

	assert.True(t, result.IsSubject)
	assert.True(t, result.ResidenceExclusion.IsZero())
	assertMoney(t, 24944450, result.Tax)
}

func TestWealthTax_ResidenceExclusion(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	// Two tagged residences: the exclusion goes to the higher value, once.
	// The cash position is sized so the post-exclusion base lands exactly on
	// the top of the 0.5% bracket.
	tp := &domain.Taxpayer{
		Assets: []domain.Asset{
			{Value: r.UVT(122000).Sub(money(400000000))},
			{Value: money(400000000), IsPrimaryResidence: true},
			{Value: money(500000000), IsPrimaryResidence: true},
		},
	}

	result := calc.Calculate(tp)

	assertMoney(t, 500000000, result.ResidenceExclusion)
	assert.True(t, result.TaxableBase.Equal(r.UVT(122000)), "got %s", result.TaxableBase)
	// Exactly the top of the 0.5% bracket: 50,000 UVT at 0.5% = 250 UVT.
	assertMoney(t, 11766250, result.Tax)
}

func TestWealthTax_ExclusionCappedAtTwelveThousandUVT(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	tp := &domain.Taxpayer{
		Assets: []domain.Asset{
			{Value: r.UVT(200000)},
			{Value: r.UVT(20000), IsPrimaryResidence: true},
		},
	}

	result := calc.Calculate(tp)

	assert.True(t, result.ResidenceExclusion.Equal(r.UVT(12000)), "got %s", result.ResidenceExclusion)
}

func TestWealthTax_LiabilitiesReduceNetWorth(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	tp := &domain.Taxpayer{
		Assets:      []domain.Asset{{Value: r.UVT(100000)}},
		Liabilities: []domain.Liability{{Value: r.UVT(50000)}},
	}

	result := calc.Calculate(tp)

	assert.False(t, result.IsSubject)
	assert.True(t, result.Subject.Equal(r.UVT(50000)), "got %s", result.Subject)
}

func TestWealthTax_HigherOfValuationRule(t *testing.T) {
	r := rules2024(t)
	calc := NewWealthTaxCalculator(r)

	// Real estate declares the greater of tax cost and cadastral value.
	tp := &domain.Taxpayer{
		Assets: []domain.Asset{
			{Value: r.UVT(60000), TaxCost: r.UVT(73000), CadastralValue: r.UVT(70000)},
		},
	}

	result := calc.Calculate(tp)

	assert.True(t, result.IsSubject, "the cadastral floor rule lifts the base over the threshold")
	assert.True(t, result.Subject.Equal(r.UVT(73000)), "got %s", result.Subject)
	exp := decimal.NewFromInt(1000).Mul(decimal.NewFromFloat(0.005)).Mul(r.UVTValue).Round(0)
	assert.True(t, result.Tax.Equal(exp), "got %s", result.Tax)
}
