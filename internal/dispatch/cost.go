package dispatch

import (
	"energy-sizing/internal/finance"
	"energy-sizing/internal/model"
)

// CostBreakdown is the life-cycle cost of a sized microgrid in $.
type CostBreakdown struct {
	PVCapex      float64
	WindCapex    float64
	BatteryCapex float64
	DieselCapex  float64
	TotalCapex   float64

	PVOM            float64
	WindOM          float64
	BatteryOM       float64
	DieselFuel      float64
	AnnualOpex      float64
	AnnualFuelL     float64
	PVFactor        float64
	OpexNPV         float64
	TotalSystemCost float64
}

// RollUpCost prices the sized system: CAPEX up front plus the present value
// of yearly O&M and diesel fuel over the finance horizon.
func RollUpCost(sys model.SystemConfig, costs model.CostParams, fin model.FinanceParams, annual Totals) (CostBreakdown, error) {
	if err := costs.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	if err := model.CheckPositive("diesel_efficiency_kwh_per_l", sys.DieselEfficiencyKWhPerL); err != nil {
		return CostBreakdown{}, err
	}
	fin = fin.WithDefaults()
	if err := fin.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	var b CostBreakdown
	b.PVCapex = sys.PVCapacityKW * costs.PVCapexPerKW
	b.WindCapex = sys.WindCapacityKW * costs.WindCapexPerKW
	b.BatteryCapex = sys.BatteryCapacityKWh * costs.BatteryCapexPerKWh
	b.DieselCapex = sys.DieselCapacityKW * costs.DieselCapexPerKW
	b.TotalCapex = b.PVCapex + b.WindCapex + b.BatteryCapex + b.DieselCapex

	b.PVOM = b.PVCapex * costs.PVOMFraction
	b.WindOM = b.WindCapex * costs.WindOMFraction
	b.BatteryOM = b.BatteryCapex * costs.BatteryOMFraction
	b.AnnualFuelL = annual.DieselKWh / sys.DieselEfficiencyKWhPerL
	b.DieselFuel = b.AnnualFuelL * costs.DieselFuelPricePerL
	b.AnnualOpex = b.PVOM + b.WindOM + b.BatteryOM + b.DieselFuel

	b.PVFactor = finance.PVFactor(fin.Rate(), fin.LifetimeYears)
	b.OpexNPV = b.AnnualOpex * b.PVFactor
	b.TotalSystemCost = b.TotalCapex + b.OpexNPV
	return b, nil
}
