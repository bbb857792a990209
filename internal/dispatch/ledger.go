package dispatch

import "energy-sizing/internal/model"

// DaysPerYear annualizes the representative day.
const DaysPerYear = 365

// HourRow is one row of per-hour output. Every power value is the average
// over the hour, so it is also the hour's energy in kWh.
// This is the primary artifact for "what happened" in a simulation.
type HourRow struct {
	Hour int

	Action model.Action

	LoadKW float64
	PVKW   float64
	WindKW float64

	DieselKW float64

	// BatteryChargeKW is energy taken from the bus; BatteryDischargeKW is
	// energy delivered to the load. Both are grid-side, after losses.
	BatteryChargeKW    float64
	BatteryDischargeKW float64
	// BatteryWithdrawnKW is what left storage to produce BatteryDischargeKW.
	BatteryWithdrawnKW float64

	UnservedKW  float64
	CurtailedKW float64

	SOCStartKWh float64
	SOCEndKWh   float64
}

// Totals accumulates energy and counters over a period.
type Totals struct {
	LoadKWh            float64
	RenewableKWh       float64
	DieselKWh          float64
	UnservedKWh        float64
	CurtailedKWh       float64
	DieselRuntimeHours float64
	BatteryCycles      float64
}

// Scale multiplies every accumulator by f.
func (t Totals) Scale(f float64) Totals {
	return Totals{
		LoadKWh:            t.LoadKWh * f,
		RenewableKWh:       t.RenewableKWh * f,
		DieselKWh:          t.DieselKWh * f,
		UnservedKWh:        t.UnservedKWh * f,
		CurtailedKWh:       t.CurtailedKWh * f,
		DieselRuntimeHours: t.DieselRuntimeHours * f,
		BatteryCycles:      t.BatteryCycles * f,
	}
}

type Result struct {
	Hourly []HourRow
	Daily  Totals
	Annual Totals

	RenewableFractionPct float64
	FinalSOCKWh          float64
}

// Series is the chart-ready view of a run: six series over 24 ticks.
type Series struct {
	Load             model.HourlyProfile
	PV               model.HourlyProfile
	Wind             model.HourlyProfile
	Diesel           model.HourlyProfile
	BatteryCharge    model.HourlyProfile
	BatteryDischarge model.HourlyProfile
}

func (r *Result) Series() Series {
	var s Series
	for i, row := range r.Hourly {
		if i >= model.HoursPerDay {
			break
		}
		s.Load[i] = row.LoadKW
		s.PV[i] = row.PVKW
		s.Wind[i] = row.WindKW
		s.Diesel[i] = row.DieselKW
		s.BatteryCharge[i] = row.BatteryChargeKW
		s.BatteryDischarge[i] = row.BatteryDischargeKW
	}
	return s
}
