package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForYear(t *testing.T) {
	r2024, err := ForYear(2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, r2024.Year)
	assert.True(t, r2024.UVTValue.Equal(decimal.NewFromInt(47065)), "2024 UVT value")

	r2023, err := ForYear(2023)
	require.NoError(t, err)
	assert.True(t, r2023.UVTValue.Equal(decimal.NewFromInt(42412)), "2023 UVT value")

	_, err = ForYear(2019)
	require.Error(t, err, "Unknown years are a caller error, never defaulted")
	assert.Contains(t, err.Error(), "unsupported tax year 2019")
}

func TestTableApply_ZeroAndNegative(t *testing.T) {
	table := incomeTable()

	assert.True(t, table.Apply(decimal.Zero).IsZero(), "Zero base yields zero tax")
	assert.True(t, table.Apply(decimal.NewFromInt(-500)).IsZero(), "Negative base yields zero tax")
}

func TestTableApply_BracketEdges(t *testing.T) {
	table := incomeTable()

	// The first bracket's upper edge is inclusive: exactly 1090 UVT pays nothing.
	assert.True(t, table.Apply(decimal.NewFromInt(1090)).IsZero())

	// 1100 UVT: 10 UVT over the floor at 19%.
	tax := table.Apply(decimal.NewFromInt(1100))
	assert.True(t, tax.Equal(decimal.NewFromFloat(1.9)), "got %s", tax)

	// 1700 UVT closes the 19% bracket at its base amount for the next one.
	tax = table.Apply(decimal.NewFromInt(1700))
	assert.True(t, tax.Equal(decimal.NewFromFloat(115.9)), "got %s", tax)

	// Far above every finite bound the unbounded bracket answers.
	tax = table.Apply(decimal.NewFromInt(40000))
	expected := decimal.NewFromInt(10352).Add(decimal.NewFromInt(9000).Mul(decimal.NewFromFloat(0.39)))
	assert.True(t, tax.Equal(expected), "got %s", tax)
}

func TestApplyPesos(t *testing.T) {
	r, err := ForYear(2024)
	require.NoError(t, err)

	assert.True(t, r.ApplyPesos(r.IncomeTable, decimal.Zero).IsZero())
	assert.True(t, r.ApplyPesos(r.IncomeTable, decimal.NewFromInt(-1)).IsZero())

	// 41,400,000 pesos is below the first bracket edge for 2024.
	assert.True(t, r.ApplyPesos(r.IncomeTable, decimal.NewFromInt(41400000)).IsZero())

	// 150,000 UVT of net wealth: 250 + 28,000 × 1% = 530 UVT.
	base := r.UVT(150000)
	tax := r.ApplyPesos(r.WealthTable, base)
	assert.True(t, tax.Equal(decimal.NewFromInt(24944450)), "got %s", tax)
}

func TestSeveranceExemptShare(t *testing.T) {
	r, err := ForYear(2024)
	require.NoError(t, err)

	tests := []struct {
		name     string
		salaryUVT int64
		share    float64
	}{
		{"at the full-exemption edge", 350, 1.00},
		{"first step down", 380, 0.90},
		{"middle of the ladder", 500, 0.60},
		{"last step", 650, 0.20},
		{"above the ladder", 651, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salary := r.UVT(tt.salaryUVT)
			share := r.SeveranceExemptShare(salary)
			assert.True(t, share.Equal(decimal.NewFromFloat(tt.share)), "got %s", share)
		})
	}
}
