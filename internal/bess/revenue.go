// Package bess estimates the yearly revenue stack of a grid battery across
// energy arbitrage, balancing reserves, congestion relief and capacity
// payments.
package bess

import (
	"math"

	"energy-sizing/internal/finance"
	"energy-sizing/internal/model"
)

// DefaultCapexPerMW is used when Params.CapexPerMW is zero.
const DefaultCapexPerMW = 800000

// Service identifies one revenue stream. Values are stable API/CSV labels.
type Service string

const (
	ServiceArbitrage  Service = "arbitrage"
	ServiceMFRR       Service = "mfrr"
	ServiceAFRR       Service = "afrr"
	ServiceFCR        Service = "fcr"
	ServiceCongestion Service = "congestion"
	ServiceCapacity   Service = "capacity"
)

var serviceLabels = map[Service]string{
	ServiceArbitrage:  "Energy Arbitrage",
	ServiceMFRR:       "Manual FRR",
	ServiceAFRR:       "Automatic FRR",
	ServiceFCR:        "FCR (Primary)",
	ServiceCongestion: "Congestion Mgmt",
	ServiceCapacity:   "Capacity Market",
}

func (s Service) Label() string { return serviceLabels[s] }

// Share of the year each service is assumed to be contracted.
const (
	mfrrAvailability       = 0.5
	afrrAvailability       = 0.3
	fcrAvailability        = 0.2
	congestionAvailability = 0.1

	mfrrActivationPrice = 50.0
	mfrrActivationRate  = 0.05
	afrrActivationPrice = 60.0
	afrrActivationRate  = 0.15

	congestionPremium      = 1.5
	congestionDispatchRate = 0.3

	arbitrageCycleYield    = 0.8
	arbitrageSpreadCapture = 0.6
	afrrCyclesPerYear      = 200
)

// Services toggles which markets the battery participates in.
type Services struct {
	Arbitrage  bool
	MFRR       bool
	AFRR       bool
	FCR        bool
	Congestion bool
	Capacity   bool
}

// Params for one revenue estimate.
// Units:
// - PowerMW: MW, EnergyMWh: MWh
// - RoundTripEfficiency, PriceVolatility: 0..1
// - prices: €/MWh (DA, degradation) or €/MW/h (reserves)
// - CapacityPaymentPerMWMonth: €/MW/month
type Params struct {
	PowerMW                   float64
	EnergyMWh                 float64
	RoundTripEfficiency       float64
	DegradationCostPerMWh     float64
	Services                  Services
	DayAheadPrice             float64
	PriceVolatility           float64
	MFRRPricePerMWh           float64
	AFRRPricePerMWh           float64
	FCRPricePerMWh            float64
	CapacityPaymentPerMWMonth float64
	CapexPerMW                float64
}

func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"power_mw", p.PowerMW},
		{"energy_mwh", p.EnergyMWh},
		{"degradation_cost_per_mwh", p.DegradationCostPerMWh},
		{"day_ahead_price", p.DayAheadPrice},
		{"mfrr_price", p.MFRRPricePerMWh},
		{"afrr_price", p.AFRRPricePerMWh},
		{"fcr_price", p.FCRPricePerMWh},
		{"capacity_payment", p.CapacityPaymentPerMWMonth},
		{"capex_per_mw", p.CapexPerMW},
	} {
		if err := model.CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if err := model.CheckEfficiency("round_trip_efficiency", p.RoundTripEfficiency); err != nil {
		return err
	}
	return model.CheckFraction("price_volatility", p.PriceVolatility)
}

// Stream is one chartable slice of the revenue doughnut.
type Stream struct {
	Service Service
	Label   string
	Revenue float64
}

type Result struct {
	ArbitrageRevenue  float64
	MFRRRevenue       float64
	AFRRRevenue       float64
	FCRRevenue        float64
	CongestionRevenue float64
	CapacityRevenue   float64
	TotalRevenue      float64

	ArbitrageCycles float64
	CyclesPerYear   float64
	UtilizationPct  float64
	Capex           float64
	PaybackYears    float64

	// Streams lists the selected services with positive revenue, in a fixed
	// order. Loss-making arbitrage still counts toward TotalRevenue.
	Streams []Stream
}

// Calculate estimates yearly revenue for the selected services.
func Calculate(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	const hours = finance.HoursPerYear
	r := &Result{}

	if p.Services.Arbitrage {
		r.ArbitrageCycles = math.Min(365, math.Floor(p.PriceVolatility*365*arbitrageCycleYield))
		spread := p.DayAheadPrice * p.PriceVolatility * arbitrageSpreadCapture
		throughput := r.ArbitrageCycles * p.EnergyMWh

		gross := spread * r.ArbitrageCycles * p.PowerMW
		efficiencyLoss := throughput * p.DayAheadPrice * (1 - p.RoundTripEfficiency)
		degradation := throughput * p.DegradationCostPerMWh
		r.ArbitrageRevenue = gross - efficiencyLoss - degradation
	}

	var afrrHours float64
	if p.Services.MFRR {
		h := hours * mfrrAvailability
		r.MFRRRevenue = p.PowerMW*p.MFRRPricePerMWh*h + p.PowerMW*mfrrActivationPrice*h*mfrrActivationRate
	}
	if p.Services.AFRR {
		afrrHours = hours * afrrAvailability
		r.AFRRRevenue = p.PowerMW*p.AFRRPricePerMWh*afrrHours + p.PowerMW*afrrActivationPrice*afrrHours*afrrActivationRate
	}
	if p.Services.FCR {
		r.FCRRevenue = p.PowerMW * p.FCRPricePerMWh * hours * fcrAvailability
	}
	if p.Services.Congestion {
		r.CongestionRevenue = p.PowerMW * p.DayAheadPrice * congestionPremium * hours * congestionAvailability * congestionDispatchRate
	}
	if p.Services.Capacity {
		r.CapacityRevenue = p.PowerMW * p.CapacityPaymentPerMWMonth * 12
	}

	r.TotalRevenue = r.ArbitrageRevenue + r.MFRRRevenue + r.AFRRRevenue + r.FCRRevenue + r.CongestionRevenue + r.CapacityRevenue

	r.CyclesPerYear = r.ArbitrageCycles + afrrHours/hours*afrrCyclesPerYear
	r.UtilizationPct = math.Min(100, r.CyclesPerYear/365*100)

	capexPerMW := p.CapexPerMW
	if capexPerMW == 0 {
		capexPerMW = DefaultCapexPerMW
	}
	r.Capex = p.PowerMW * capexPerMW
	r.PaybackYears = finance.Payback(r.Capex, r.TotalRevenue)

	for _, s := range []struct {
		on  bool
		svc Service
		v   float64
	}{
		{p.Services.Arbitrage, ServiceArbitrage, r.ArbitrageRevenue},
		{p.Services.MFRR, ServiceMFRR, r.MFRRRevenue},
		{p.Services.AFRR, ServiceAFRR, r.AFRRRevenue},
		{p.Services.FCR, ServiceFCR, r.FCRRevenue},
		{p.Services.Congestion, ServiceCongestion, r.CongestionRevenue},
		{p.Services.Capacity, ServiceCapacity, r.CapacityRevenue},
	} {
		if s.on && s.v > 0 {
			r.Streams = append(r.Streams, Stream{Service: s.svc, Label: s.svc.Label(), Revenue: s.v})
		}
	}
	return r, nil
}
