package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAssetDeclaredValue(t *testing.T) {
	// Plain assets fall back to their reported value.
	cash := Asset{Value: decimal.NewFromInt(1000)}
	assert.True(t, cash.DeclaredValue().Equal(decimal.NewFromInt(1000)))

	// Real estate declares the greater of tax cost and cadastral value.
	house := Asset{
		Value:          decimal.NewFromInt(300),
		TaxCost:        decimal.NewFromInt(380),
		CadastralValue: decimal.NewFromInt(410),
	}
	assert.True(t, house.DeclaredValue().Equal(decimal.NewFromInt(410)))

	house.TaxCost = decimal.NewFromInt(450)
	assert.True(t, house.DeclaredValue().Equal(decimal.NewFromInt(450)))
}

func TestTaxpayerNetWorth(t *testing.T) {
	tp := &Taxpayer{
		Assets: []Asset{
			{Value: decimal.NewFromInt(500)},
			{Value: decimal.NewFromInt(300), CadastralValue: decimal.NewFromInt(350)},
		},
		Liabilities: []Liability{{Value: decimal.NewFromInt(200)}},
	}

	assert.True(t, tp.GrossAssets().Equal(decimal.NewFromInt(850)))
	assert.True(t, tp.NetWorth().Equal(decimal.NewFromInt(650)))
}

func TestTaxpayerWithCredit(t *testing.T) {
	tp := &Taxpayer{
		TaxCredits: []TaxCredit{{Description: "original", Value: decimal.NewFromInt(100)}},
	}

	clone := tp.WithCredit(TaxCredit{Description: "added", Value: decimal.NewFromInt(50)})

	assert.Len(t, clone.TaxCredits, 2)
	assert.Len(t, tp.TaxCredits, 1, "the original record is never mutated")
}

func TestIncomesByCategory(t *testing.T) {
	tp := &Taxpayer{
		Incomes: []IncomeSource{
			{Category: IncomeLabor, Value: decimal.NewFromInt(1)},
			{Category: IncomePension, Value: decimal.NewFromInt(2)},
			{Category: IncomeDividendTaxed, Value: decimal.NewFromInt(3)},
			{Category: IncomeDividendUntaxed, Value: decimal.NewFromInt(4)},
		},
	}

	dividends := tp.IncomesByCategory(IncomeDividendTaxed, IncomeDividendUntaxed)
	assert.Len(t, dividends, 2)

	assert.Empty(t, tp.IncomesByCategory(IncomeLottery))
}

func TestRefundable(t *testing.T) {
	owing := &DeclarationResult{BalanceDue: decimal.NewFromInt(100)}
	assert.False(t, owing.Refundable())

	refund := &DeclarationResult{BalanceDue: decimal.NewFromInt(-100)}
	assert.True(t, refund.Refundable())
}
