package model

import "math"

// CRateCap is the fraction of capacity that may move into or out of storage
// in one hour.
const CRateCap = 0.25

// InitialSOCFraction is where every simulation run starts.
const InitialSOCFraction = 0.5

// BatteryParams defines the storage asset of a microgrid.
// Units:
// - CapacityKWh: kWh
// - Efficiency: round-trip, (0, 1]
type BatteryParams struct {
	CapacityKWh float64
	Efficiency  float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOCKWh is the stored energy, bounded to [0, CapacityKWh].
	SOCKWh float64
}

// Battery is a convenience wrapper bundling params + state. It lives for one
// simulation run only.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

func NewBattery(params BatteryParams, initialSOCFraction float64) (*Battery, error) {
	b := &Battery{Params: params}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := CheckFraction("initial_soc", initialSOCFraction); err != nil {
		return nil, err
	}
	b.State.SOCKWh = initialSOCFraction * params.CapacityKWh
	return b, nil
}

func (b *Battery) Validate() error {
	if err := CheckNonNegative("battery_capacity_kwh", b.Params.CapacityKWh); err != nil {
		return err
	}
	return CheckEfficiency("battery_efficiency", b.Params.Efficiency)
}

// Discharge withdraws stored energy to cover up to demandKW at the load.
// withdrawn is taken from SOC (rate-capped), delivered is what reaches the
// load after losses and never exceeds demandKW.
func (b *Battery) Discharge(demandKW float64) (withdrawn, delivered float64) {
	if b.Params.CapacityKWh <= 0 || demandKW <= 0 {
		return 0, 0
	}
	limit := math.Min(b.State.SOCKWh, b.Params.CapacityKWh*CRateCap)
	withdrawn = math.Max(0, math.Min(demandKW/b.Params.Efficiency, limit))
	b.State.SOCKWh -= withdrawn
	b.ClampSOC()
	return withdrawn, withdrawn * b.Params.Efficiency
}

// Charge absorbs up to surplusKW. input is the energy taken from the bus,
// stored is what lands in SOC after losses (rate-capped).
func (b *Battery) Charge(surplusKW float64) (input, stored float64) {
	if b.Params.CapacityKWh <= 0 || surplusKW <= 0 {
		return 0, 0
	}
	headroom := math.Min(b.Params.CapacityKWh-b.State.SOCKWh, b.Params.CapacityKWh*CRateCap)
	input = math.Max(0, math.Min(surplusKW, headroom/b.Params.Efficiency))
	stored = input * b.Params.Efficiency
	b.State.SOCKWh += stored
	b.ClampSOC()
	return input, stored
}

// CycleContribution converts one direction of throughput into equivalent
// full cycles. A zero-capacity battery never cycles.
func (b *Battery) CycleContribution(throughputKWh float64) float64 {
	if b.Params.CapacityKWh <= 0 {
		return 0
	}
	return throughputKWh / (b.Params.CapacityKWh * 2)
}

// ClampSOC keeps SOC within [0, CapacityKWh].
func (b *Battery) ClampSOC() {
	b.State.SOCKWh = math.Max(0, math.Min(b.Params.CapacityKWh, b.State.SOCKWh))
}

// SOCFraction reports SOC as a fraction of capacity (0 for no battery).
func (b *Battery) SOCFraction() float64 {
	if b.Params.CapacityKWh <= 0 {
		return 0
	}
	return b.State.SOCKWh / b.Params.CapacityKWh
}
