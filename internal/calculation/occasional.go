package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
	"github.com/ogonzalezm/tributo/internal/rules"
)

// OccasionalGainsCalculator depurates the occasional-gains schedule: lottery
// and prize income at its own flat rate with no return-level exemption, and
// everything else (asset sales held two years or more, inheritances, life
// insurance, donations received) with per-kind exemption caps before the
// general rate.
//
// Records held under two years never reach this calculator; the engine
// reclassifies them into the general schedule first.
type OccasionalGainsCalculator struct {
	Rules rules.Rules
}

// NewOccasionalGainsCalculator creates an occasional-gains calculator for one year.
func NewOccasionalGainsCalculator(r rules.Rules) *OccasionalGainsCalculator {
	return &OccasionalGainsCalculator{Rules: r}
}

// Calculate evaluates both halves of the schedule.
func (oc *OccasionalGainsCalculator) Calculate(incomes []domain.IncomeSource) domain.OccasionalGainsResult {
	r := oc.Rules

	var res domain.OccasionalGainsResult
	taxableGains := decimal.Zero

	for _, inc := range incomes {
		switch inc.Category {
		case domain.IncomeLottery:
			// The below-threshold lottery exemption exists only for
			// withholding; the annual return taxes the full prize.
			res.LotteryGross = res.LotteryGross.Add(inc.Value)
		case domain.IncomeOccasionalGain:
			net := inc.Value.Sub(inc.Costs)
			if net.LessThan(decimal.Zero) {
				net = decimal.Zero
			}
			exemption := oc.exemptionFor(inc, net)

			res.GrossGains = res.GrossGains.Add(inc.Value)
			res.Costs = res.Costs.Add(inc.Costs)
			res.Exemptions = res.Exemptions.Add(exemption)
			taxableGains = taxableGains.Add(net.Sub(exemption))
		}
	}

	if taxableGains.LessThan(decimal.Zero) {
		taxableGains = decimal.Zero
	}
	res.TaxableGains = taxableGains
	res.GainsTax = taxableGains.Mul(r.OccasionalGainsRate).Round(0)
	res.LotteryTax = res.LotteryGross.Mul(r.LotteryRate).Round(0)

	return res
}

// exemptionFor resolves the per-record exemption from the tagged gain kind.
// Absolute caps never exceed the record's net value.
func (oc *OccasionalGainsCalculator) exemptionFor(inc domain.IncomeSource, net decimal.Decimal) decimal.Decimal {
	r := oc.Rules

	switch inc.GainKind {
	case domain.GainInheritanceHousing:
		return decimal.Min(net, r.FromUVT(r.InheritanceHousingCapUVT))
	case domain.GainInheritanceRealEstate:
		return decimal.Min(net, r.FromUVT(r.InheritanceRealEstateCapUVT))
	case domain.GainInheritanceOther:
		return decimal.Min(net, r.FromUVT(r.InheritanceOtherCapUVT))
	case domain.GainDonation:
		share := net.Mul(r.DonationExemptionRate)
		return decimal.Min(share, r.FromUVT(r.DonationExemptionCapUVT))
	case domain.GainLifeInsurance:
		return decimal.Min(net, r.FromUVT(r.LifeInsuranceCapUVT))
	case domain.GainResidenceSale:
		return decimal.Min(net, r.FromUVT(r.ResidenceSaleCapUVT))
	default:
		return decimal.Zero
	}
}
