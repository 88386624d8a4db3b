package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// WealthTaxCalculator evaluates the wealth tax: a net-worth floor in UVT,
// a primary-residence exclusion, then a three-bracket progressive table.
type WealthTaxCalculator struct {
	Rules rules.Rules
}

// NewWealthTaxCalculator creates a wealth-tax calculator for one year.
func NewWealthTaxCalculator(r rules.Rules) *WealthTaxCalculator {
	return &WealthTaxCalculator{Rules: r}
}

// Calculate checks subjectivity on the full net worth, removes the residence
// exclusion, and applies the bracket table to what remains. When several
// assets are tagged as primary residence, the exclusion goes to the highest
// declared value and is applied once.
func (wc *WealthTaxCalculator) Calculate(tp *domain.Taxpayer) domain.WealthTaxResult {
	r := wc.Rules
	netWorth := tp.NetWorth()

	if netWorth.LessThanOrEqual(r.FromUVT(r.WealthTaxFloorUVT)) {
		return domain.WealthTaxResult{Subject: netWorth}
	}

	exclusion := decimal.Zero
	if residence := primaryResidence(tp.Assets); residence != nil {
		exclusion = decimal.Min(residence.DeclaredValue(), r.FromUVT(r.WealthResidenceCapUVT))
	}

	base := netWorth.Sub(exclusion)
	if base.LessThan(decimal.Zero) {
		base = decimal.Zero
	}

	return domain.WealthTaxResult{
		Subject:            netWorth,
		ResidenceExclusion: exclusion,
		TaxableBase:        base,
		Tax:                r.ApplyPesos(r.WealthTable, base),
		IsSubject:          true,
	}
}

// primaryResidence picks the highest-valued asset tagged as the taxpayer's
// home, or nil when none is tagged.
func primaryResidence(assets []domain.Asset) *domain.Asset {
	var best *domain.Asset
	for i := range assets {
		if !assets[i].IsPrimaryResidence {
			continue
		}
		if best == nil || assets[i].DeclaredValue().GreaterThan(best.DeclaredValue()) {
			best = &assets[i]
		}
	}
	return best
}
