// Package lcoh prices hydrogen from a renewable-fed electrolyzer that tops
// up from the grid when renewables fall short of its loading target.
package lcoh

import (
	"math"

	"energy-sizing/internal/finance"
	"energy-sizing/internal/model"
)

// Yearly O&M as a fraction of CAPEX.
const (
	PVOMFraction           = 0.02
	WindOMFraction         = 0.025
	ElectrolyzerOMFraction = 0.03
)

// Inputs for one LCOH evaluation.
// Units:
// - capacities: MW
// - capacity factors, LoadingFactor: 0..1
// - GridPricePerMWh: $/MWh
// - costs: $/kW
// - ElectrolyzerKWhPerKg: specific energy consumption
type Inputs struct {
	ElectrolyzerMW        float64
	LoadingFactor         float64
	GridPricePerMWh       float64
	PVCapacityFactor      float64
	PVMW                  float64
	WindCapacityFactor    float64
	WindMW                float64
	PVCostPerKW           float64
	WindCostPerKW         float64
	ElectrolyzerCostPerKW float64
	ElectrolyzerKWhPerKg  float64
	Finance               model.FinanceParams
}

func (in Inputs) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"electrolyzer_mw", in.ElectrolyzerMW},
		{"grid_price_per_mwh", in.GridPricePerMWh},
		{"pv_mw", in.PVMW},
		{"wind_mw", in.WindMW},
		{"pv_cost_per_kw", in.PVCostPerKW},
		{"wind_cost_per_kw", in.WindCostPerKW},
		{"electrolyzer_cost_per_kw", in.ElectrolyzerCostPerKW},
	} {
		if err := model.CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"loading_factor", in.LoadingFactor},
		{"pv_capacity_factor", in.PVCapacityFactor},
		{"wind_capacity_factor", in.WindCapacityFactor},
	} {
		if err := model.CheckFraction(f.name, f.v); err != nil {
			return err
		}
	}
	if err := model.CheckPositive("electrolyzer_kwh_per_kg", in.ElectrolyzerKWhPerKg); err != nil {
		return err
	}
	return in.Finance.WithDefaults().Validate()
}

type Result struct {
	LCOHPerKg            float64
	RenewableFractionPct float64
	H2TonnesPerYr        float64
	H2KgPerYr            float64

	RenewableMWhPerYr float64
	DemandMWhPerYr    float64
	RenewableUsedMWh  float64
	GridMWhPerYr      float64
	GridGWhPerYr      float64

	CRF             float64
	AnnualizedCapex float64
	GridCost        float64
	OMCost          float64
	AnnualOpex      float64
	TotalAnnualCost float64
}

// Calculate evaluates the LCOH formulas. LCOH is 0 when no hydrogen is made.
func Calculate(in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	fin := in.Finance.WithDefaults()

	r := &Result{}
	pvMWh := in.PVMW * in.PVCapacityFactor * finance.HoursPerYear
	windMWh := in.WindMW * in.WindCapacityFactor * finance.HoursPerYear
	r.RenewableMWhPerYr = pvMWh + windMWh

	r.DemandMWhPerYr = in.ElectrolyzerMW * in.LoadingFactor * finance.HoursPerYear
	r.RenewableUsedMWh = math.Min(r.RenewableMWhPerYr, r.DemandMWhPerYr)
	r.GridMWhPerYr = math.Max(0, r.DemandMWhPerYr-r.RenewableMWhPerYr)
	r.GridGWhPerYr = r.GridMWhPerYr / 1000
	consumed := r.RenewableUsedMWh + r.GridMWhPerYr

	r.H2KgPerYr = consumed * 1000 / in.ElectrolyzerKWhPerKg
	r.H2TonnesPerYr = r.H2KgPerYr / 1000
	if consumed > 0 {
		r.RenewableFractionPct = r.RenewableUsedMWh / consumed * 100
	}

	pvCapex := in.PVMW * in.PVCostPerKW * 1000
	windCapex := in.WindMW * in.WindCostPerKW * 1000
	elCapex := in.ElectrolyzerMW * in.ElectrolyzerCostPerKW * 1000

	r.CRF = finance.CRF(fin.Rate(), fin.LifetimeYears)
	r.AnnualizedCapex = (pvCapex + windCapex + elCapex) * r.CRF
	r.GridCost = r.GridMWhPerYr * in.GridPricePerMWh
	r.OMCost = pvCapex*PVOMFraction + windCapex*WindOMFraction + elCapex*ElectrolyzerOMFraction
	r.AnnualOpex = r.GridCost + r.OMCost
	r.TotalAnnualCost = r.AnnualizedCapex + r.AnnualOpex

	if r.H2KgPerYr > 0 {
		r.LCOHPerKg = r.TotalAnnualCost / r.H2KgPerYr
	}
	return r, nil
}
