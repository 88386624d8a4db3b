package rules

import (
	"github.com/shopspring/decimal"
)

// Bracket is one row of a progressive table, expressed in UVT. Upper is zero
// on the final row, meaning unbounded.
type Bracket struct {
	Lower      decimal.Decimal
	Upper      decimal.Decimal
	Rate       decimal.Decimal
	BaseAmount decimal.Decimal // tax in UVT accumulated below Lower
}

// Table is an ordered progressive bracket table in UVT terms.
type Table []Bracket

// Apply maps a base (in UVT) to tax (in UVT): find the bracket where the base
// falls strictly above the lower bound and at or under the upper bound, and
// return baseAmount + (base - lower) * rate. Non-positive bases return zero
// without a lookup.
func (t Table) Apply(baseUVT decimal.Decimal) decimal.Decimal {
	if baseUVT.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for _, b := range t {
		if baseUVT.LessThanOrEqual(b.Lower) {
			continue
		}
		if b.Upper.IsZero() || baseUVT.LessThanOrEqual(b.Upper) {
			return b.BaseAmount.Add(baseUVT.Sub(b.Lower).Mul(b.Rate))
		}
	}
	// Structurally unreachable: the final bracket is unbounded, so every
	// positive base matches a row. Kept as an explicit fallback.
	last := t[len(t)-1]
	return last.BaseAmount.Add(baseUVT.Sub(last.Lower).Mul(last.Rate))
}

// ApplyPesos evaluates the table on a peso base: converts to UVT, applies the
// bracket formula, and rounds the peso result to the nearest whole peso.
func (r Rules) ApplyPesos(t Table, basePesos decimal.Decimal) decimal.Decimal {
	if basePesos.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	taxUVT := t.Apply(r.ToUVT(basePesos))
	return r.FromUVT(taxUVT).Round(0)
}
