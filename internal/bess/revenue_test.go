package bess

import (
	"errors"
	"testing"

	"energy-sizing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allServices() Params {
	return Params{
		PowerMW:                   10,
		EnergyMWh:                 20,
		RoundTripEfficiency:       0.9,
		DegradationCostPerMWh:     2,
		Services:                  Services{Arbitrage: true, MFRR: true, AFRR: true, FCR: true, Congestion: true, Capacity: true},
		DayAheadPrice:             80,
		PriceVolatility:           0.3,
		MFRRPricePerMWh:           5,
		AFRRPricePerMWh:           10,
		FCRPricePerMWh:            15,
		CapacityPaymentPerMWMonth: 3000,
	}
}

func TestCalculate_AllServices(t *testing.T) {
	r, err := Calculate(allServices())
	require.NoError(t, err)

	assert.Equal(t, 87.0, r.ArbitrageCycles)
	assert.InDelta(t, 12528-13920-3480, r.ArbitrageRevenue, 1e-6)
	assert.InDelta(t, 328500, r.MFRRRevenue, 1e-6)
	assert.InDelta(t, 499320, r.AFRRRevenue, 1e-6)
	assert.InDelta(t, 262800, r.FCRRevenue, 1e-6)
	assert.InDelta(t, 315360, r.CongestionRevenue, 1e-6)
	assert.InDelta(t, 360000, r.CapacityRevenue, 1e-6)
	assert.InDelta(t, 1761108, r.TotalRevenue, 1e-4)

	assert.InDelta(t, 147, r.CyclesPerYear, 1e-9)
	assert.InDelta(t, 147.0/365*100, r.UtilizationPct, 1e-9)
	assert.Equal(t, 8e6, r.Capex)
	assert.InDelta(t, 8e6/1761108, r.PaybackYears, 1e-9)
}

func TestCalculate_StreamsSkipLossesAndKeepOrder(t *testing.T) {
	r, err := Calculate(allServices())
	require.NoError(t, err)

	var got []Service
	for _, s := range r.Streams {
		got = append(got, s.Service)
	}
	assert.Equal(t, []Service{ServiceMFRR, ServiceAFRR, ServiceFCR, ServiceCongestion, ServiceCapacity}, got)
	assert.Equal(t, "Manual FRR", r.Streams[0].Label)
}

func TestCalculate_NoServices(t *testing.T) {
	p := allServices()
	p.Services = Services{}
	r, err := Calculate(p)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.TotalRevenue)
	assert.Equal(t, 0.0, r.PaybackYears)
	assert.Equal(t, 0.0, r.CyclesPerYear)
	assert.Empty(t, r.Streams)
}

func TestCalculate_FullVolatility(t *testing.T) {
	p := allServices()
	p.PriceVolatility = 1
	r, err := Calculate(p)
	require.NoError(t, err)

	assert.Equal(t, 292.0, r.ArbitrageCycles)
	assert.InDelta(t, 352, r.CyclesPerYear, 1e-9)
	assert.LessOrEqual(t, r.UtilizationPct, 100.0)
}

func TestCalculate_CustomCapex(t *testing.T) {
	p := allServices()
	p.CapexPerMW = 500000
	r, err := Calculate(p)
	require.NoError(t, err)
	assert.Equal(t, 5e6, r.Capex)
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	p := allServices()
	p.RoundTripEfficiency = 0
	_, err := Calculate(p)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	p = allServices()
	p.PowerMW = -1
	_, err = Calculate(p)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}
