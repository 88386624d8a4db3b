package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ogonzalezm/tributo/internal/domain"
)

func TestClassifyGain(t *testing.T) {
	tests := []struct {
		description string
		expected    domain.GainKind
	}{
		{"Herencia casa de habitación de mi madre", domain.GainInheritanceHousing},
		{"Herencia lote rural", domain.GainInheritanceRealEstate},
		{"Herencia cuentas bancarias", domain.GainInheritanceOther},
		{"Sucesión apartamento", domain.GainInheritanceRealEstate},
		{"Indemnización por seguro de vida", domain.GainLifeInsurance},
		{"Donación de mi padre", domain.GainDonation},
		{"Venta casa de habitación", domain.GainResidenceSale},
		{"Venta de acciones", domain.GainOther},
		{"", domain.GainOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyGain(tt.description))
		})
	}
}

func TestApplyDefaultClassification_RespectsExistingTags(t *testing.T) {
	parser := NewInputParser()

	tp := &domain.Taxpayer{
		Incomes: []domain.IncomeSource{
			{
				Category:    domain.IncomeOccasionalGain,
				Description: "Venta casa de habitación",
				GainKind:    domain.GainOther, // explicitly tagged by the taxpayer
			},
		},
		Assets: []domain.Asset{
			{Description: "Apartamento arrendado"},
			{Description: "Casa campestre", IsPrimaryResidence: true},
		},
	}

	parser.ApplyDefaultClassification(tp)

	assert.Equal(t, domain.GainOther, tp.Incomes[0].GainKind, "an explicit tag wins over keywords")
	assert.False(t, tp.Assets[0].IsPrimaryResidence, "a taxpayer-tagged residence disables keyword tagging")
}

func TestApplyDefaultClassification_TagsFirstResidenceMatch(t *testing.T) {
	parser := NewInputParser()

	tp := &domain.Taxpayer{
		Assets: []domain.Asset{
			{Description: "Cuenta de ahorros"},
			{Description: "Apartamento de habitación"},
			{Description: "Casa de recreo"},
		},
	}

	parser.ApplyDefaultClassification(tp)

	assert.False(t, tp.Assets[0].IsPrimaryResidence)
	assert.True(t, tp.Assets[1].IsPrimaryResidence)
	assert.False(t, tp.Assets[2].IsPrimaryResidence, "only one asset gets the default tag")
}
