package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogonzalezm/tributo/internal/domain"
)

func sampleResult() *domain.DeclarationResult {
	return &domain.DeclarationResult{
		ID:      "test-declaration",
		TaxYear: 2024,
		General: domain.GeneralScheduleResult{
			GrossIncome:   decimal.NewFromInt(96000000),
			INCR:          decimal.NewFromInt(7680000),
			TaxableIncome: decimal.NewFromInt(66240000),
		},
		NetTax:     decimal.NewFromInt(1234567),
		BalanceDue: decimal.NewFromInt(-500000),
		Filing:     domain.FilingObligation{Obligated: true, Reasons: []string{"gross income over threshold"}},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in  int64
		out string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{24944450, "$24.944.450"},
		{-500000, "-$500.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, FormatCurrency(decimal.NewFromInt(tt.in)))
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{
		"":        "console",
		"console": "console",
		"json":    "json",
		"csv":     "csv",
	} {
		f, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, f.Name())
	}

	_, err := ByName("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := (ConsoleFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "TAX YEAR 2024")
	assert.Contains(t, text, "GENERAL SCHEDULE")
	assert.Contains(t, text, "$96.000.000")
	assert.NotContains(t, text, "PENSIONS SCHEDULE", "empty schedules stay out of the report")
}

func TestJSONFormatter(t *testing.T) {
	out, err := (JSONFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "test-declaration", decoded["id"])
	assert.EqualValues(t, 2024, decoded["tax_year"])
}

func TestCSVFormatter(t *testing.T) {
	out, err := (CSVFormatter{}).Format(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"line", "amount"}, records[0])

	byLine := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		byLine[rec[0]] = rec[1]
	}
	assert.Equal(t, "96000000", byLine["general_gross_income"])
	assert.Equal(t, "1234567", byLine["net_tax"])
	assert.Equal(t, "-500000", byLine["balance_due"])
}
