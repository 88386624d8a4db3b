package config

import (
	"strings"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// Keyword vocabularies for the best-effort default classification of
// free-text descriptions. Classification belongs at this ingestion boundary:
// the calculators only ever look at the resulting tags.
var (
	inheritanceKeywords = []string{"herencia", "sucesion", "sucesión", "legado", "inheritance"}
	housingKeywords     = []string{"vivienda", "casa de habitacion", "casa de habitación", "apartamento de habitacion"}
	realEstateKeywords  = []string{"inmueble", "apartamento", "lote", "finca", "local", "bodega"}
	donationKeywords    = []string{"donacion", "donación", "regalo", "gift"}
	insuranceKeywords   = []string{"seguro de vida", "indemnizacion por seguro", "indemnización por seguro"}
	saleKeywords        = []string{"venta", "enajenacion", "enajenación"}
	residenceKeywords   = []string{"casa", "apartamento", "vivienda", "habitacion", "habitación"}
)

// ApplyDefaultClassification fills missing tags from description keywords:
// the occasional-gain kind on income records and the primary-residence flag
// on assets. Records already tagged are left alone.
func (ip *InputParser) ApplyDefaultClassification(tp *domain.Taxpayer) {
	for i := range tp.Incomes {
		inc := &tp.Incomes[i]
		if inc.Category == domain.IncomeOccasionalGain && inc.GainKind == domain.GainUnclassified {
			inc.GainKind = ClassifyGain(inc.Description)
		}
	}

	// Tag a primary residence only when the taxpayer tagged none themselves.
	for _, a := range tp.Assets {
		if a.IsPrimaryResidence {
			return
		}
	}
	for i := range tp.Assets {
		if containsAny(tp.Assets[i].Description, residenceKeywords) {
			tp.Assets[i].IsPrimaryResidence = true
			return
		}
	}
}

// ClassifyGain maps a free-text description to an occasional-gain kind.
// Inheritance sub-kinds are checked most-specific first.
func ClassifyGain(description string) domain.GainKind {
	desc := strings.ToLower(description)

	switch {
	case containsAny(desc, inheritanceKeywords) && containsAny(desc, housingKeywords):
		return domain.GainInheritanceHousing
	case containsAny(desc, inheritanceKeywords) && containsAny(desc, realEstateKeywords):
		return domain.GainInheritanceRealEstate
	case containsAny(desc, inheritanceKeywords):
		return domain.GainInheritanceOther
	case containsAny(desc, insuranceKeywords):
		return domain.GainLifeInsurance
	case containsAny(desc, donationKeywords):
		return domain.GainDonation
	case containsAny(desc, saleKeywords) && containsAny(desc, housingKeywords):
		return domain.GainResidenceSale
	default:
		return domain.GainOther
	}
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
