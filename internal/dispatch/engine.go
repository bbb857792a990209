package dispatch

import (
	"fmt"
	"math"

	"energy-sizing/internal/model"
)

// residualToleranceKW is the deficit below which diesel is not started.
const residualToleranceKW = 0.01

type Engine struct{}

func New() *Engine { return &Engine{} }

// Simulate runs the greedy battery-first dispatch over the representative
// day and annualizes the totals. It is deterministic and keeps no state
// between calls.
func (e *Engine) Simulate(cfg model.SystemConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loadProfile, ok := cfg.Archetype.LoadProfile()
	if !ok {
		return nil, fmt.Errorf("no load profile for archetype %q", cfg.Archetype)
	}
	batt, err := model.NewBattery(cfg.BatteryParams(), model.InitialSOCFraction)
	if err != nil {
		return nil, err
	}

	rows := make([]HourRow, 0, model.HoursPerDay)
	var day Totals

	for h := 0; h < model.HoursPerDay; h++ {
		load := cfg.PeakLoadKW * loadProfile[h]
		pv := cfg.PVCapacityKW * model.PVProfile[h]
		wind := cfg.WindCapacityKW * cfg.WindCapacityFactor * model.WindProfile[h]

		renewable := pv + wind
		net := load - renewable

		day.LoadKWh += load
		day.RenewableKWh += renewable

		row := HourRow{
			Hour:        h,
			LoadKW:      load,
			PVKW:        pv,
			WindKW:      wind,
			SOCStartKWh: batt.State.SOCKWh,
		}

		if net > 0 {
			withdrawn, delivered := batt.Discharge(net)
			day.BatteryCycles += batt.CycleContribution(withdrawn)
			row.BatteryWithdrawnKW = withdrawn
			row.BatteryDischargeKW = delivered

			remaining := net - delivered
			if remaining > residualToleranceKW {
				diesel := math.Min(remaining, cfg.DieselCapacityKW)
				row.DieselKW = diesel
				remaining -= diesel
				day.DieselKWh += diesel
				if diesel > 0 {
					day.DieselRuntimeHours++
				}
			}
			if remaining > 0 {
				row.UnservedKW = remaining
				day.UnservedKWh += remaining
			}
		} else {
			excess := -net
			input, _ := batt.Charge(excess)
			day.BatteryCycles += batt.CycleContribution(input)
			row.BatteryChargeKW = input
			row.CurtailedKW = excess - input
			day.CurtailedKWh += row.CurtailedKW
		}

		batt.ClampSOC()
		row.SOCEndKWh = batt.State.SOCKWh
		row.Action = model.ActionForHour(row.BatteryChargeKW, row.BatteryDischargeKW, row.DieselKW)
		rows = append(rows, row)
	}

	annual := day.Scale(DaysPerYear)
	return &Result{
		Hourly:               rows,
		Daily:                day,
		Annual:               annual,
		RenewableFractionPct: RenewableFraction(annual),
		FinalSOCKWh:          batt.State.SOCKWh,
	}, nil
}

// RenewableFraction is renewable generation over load, in percent. It counts
// curtailed generation too, so it can exceed 100 for oversized systems.
func RenewableFraction(t Totals) float64 {
	if t.LoadKWh <= 0 {
		return 0
	}
	return t.RenewableKWh / t.LoadKWh * 100
}
