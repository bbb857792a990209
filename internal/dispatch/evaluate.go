package dispatch

import "energy-sizing/internal/model"

// Summary holds the headline scalars shown next to the dispatch chart.
type Summary struct {
	TotalSystemCost         float64
	RenewableFractionPct    float64
	DieselRuntimeHoursPerYr float64
	BatteryCyclesPerYr      float64
	UnservedKWhPerYr        float64
	CurtailedKWhPerYr       float64
}

// Evaluation bundles a dispatch run with its priced outcome.
type Evaluation struct {
	Inputs   model.MicrogridInputs
	Dispatch *Result
	Cost     CostBreakdown
	Summary  Summary
}

// Evaluate validates every input section, then simulates and prices the
// system. Nothing runs when any field is invalid.
func (e *Engine) Evaluate(in model.MicrogridInputs) (*Evaluation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	res, err := e.Simulate(in.System)
	if err != nil {
		return nil, err
	}
	cost, err := RollUpCost(in.System, in.Costs, in.Finance, res.Annual)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Inputs:   in,
		Dispatch: res,
		Cost:     cost,
		Summary: Summary{
			TotalSystemCost:         cost.TotalSystemCost,
			RenewableFractionPct:    res.RenewableFractionPct,
			DieselRuntimeHoursPerYr: res.Annual.DieselRuntimeHours,
			BatteryCyclesPerYr:      res.Annual.BatteryCycles,
			UnservedKWhPerYr:        res.Annual.UnservedKWh,
			CurtailedKWhPerYr:       res.Annual.CurtailedKWh,
		},
	}, nil
}
