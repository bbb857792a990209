package dispatch

import (
	"errors"
	"math"
	"testing"

	"energy-sizing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commercialScenario() model.SystemConfig {
	return model.SystemConfig{
		Archetype:               model.ArchetypeCommercial,
		PeakLoadKW:              100,
		PVCapacityKW:            50,
		WindCapacityKW:          0,
		WindCapacityFactor:      0.35,
		BatteryCapacityKWh:      50,
		BatteryEfficiency:       0.9,
		DieselCapacityKW:        30,
		DieselEfficiencyKWhPerL: 3.5,
	}
}

func propertyConfigs() []model.SystemConfig {
	var out []model.SystemConfig
	for _, a := range model.Archetypes {
		out = append(out,
			// Undersized diesel, leaves unserved load.
			model.SystemConfig{Archetype: a, PeakLoadKW: 100, PVCapacityKW: 50, WindCapacityKW: 20, WindCapacityFactor: 0.4,
				BatteryCapacityKWh: 50, BatteryEfficiency: 0.9, DieselCapacityKW: 30, DieselEfficiencyKWhPerL: 3.5},
			// Oversized renewables, forces curtailment and a full battery.
			model.SystemConfig{Archetype: a, PeakLoadKW: 80, PVCapacityKW: 400, WindCapacityKW: 300, WindCapacityFactor: 0.5,
				BatteryCapacityKWh: 200, BatteryEfficiency: 0.85, DieselCapacityKW: 100, DieselEfficiencyKWhPerL: 3},
			// No storage at all.
			model.SystemConfig{Archetype: a, PeakLoadKW: 250, PVCapacityKW: 120, WindCapacityKW: 0, WindCapacityFactor: 0,
				BatteryCapacityKWh: 0, BatteryEfficiency: 1, DieselCapacityKW: 300, DieselEfficiencyKWhPerL: 3.5},
		)
	}
	return out
}

func TestSimulate_CommercialHourZero(t *testing.T) {
	res, err := New().Simulate(commercialScenario())
	require.NoError(t, err)
	require.Len(t, res.Hourly, model.HoursPerDay)

	h0 := res.Hourly[0]
	assert.InDelta(t, 30, h0.LoadKW, 1e-9)
	assert.InDelta(t, 0, h0.PVKW, 1e-9)
	assert.InDelta(t, 0, h0.WindKW, 1e-9)
	assert.InDelta(t, 25, h0.SOCStartKWh, 1e-9)
	assert.InDelta(t, 12.5, h0.BatteryWithdrawnKW, 1e-9)
	assert.InDelta(t, 11.25, h0.BatteryDischargeKW, 1e-9)
	assert.InDelta(t, 18.75, h0.DieselKW, 1e-9)
	assert.InDelta(t, 0, h0.UnservedKW, 1e-9)
	assert.InDelta(t, 12.5, h0.SOCEndKWh, 1e-9)
	assert.Equal(t, model.ActionDiesel, h0.Action)
}

func TestSimulate_CommercialEmptiesBatteryThenRunsDiesel(t *testing.T) {
	res, err := New().Simulate(commercialScenario())
	require.NoError(t, err)

	// Hour 1 drains the last 12.5 kWh, hour 2 is diesel only.
	assert.InDelta(t, 0, res.Hourly[1].SOCEndKWh, 1e-9)
	assert.InDelta(t, 0, res.Hourly[2].BatteryDischargeKW, 1e-9)
	assert.InDelta(t, 30, res.Hourly[2].DieselKW, 1e-9)
	assert.GreaterOrEqual(t, res.Daily.DieselRuntimeHours, 3.0)
}

func TestSimulate_EnergyBalanceEveryHour(t *testing.T) {
	for _, cfg := range propertyConfigs() {
		res, err := New().Simulate(cfg)
		require.NoError(t, err)
		for _, r := range res.Hourly {
			supplied := r.PVKW + r.WindKW + r.DieselKW + r.BatteryDischargeKW - r.BatteryChargeKW + r.UnservedKW - r.CurtailedKW
			assert.InDelta(t, r.LoadKW, supplied, 1e-6, "%s hour %d", cfg.Archetype, r.Hour)
		}
	}
}

func TestSimulate_StrictBalanceWhenNothingIsLost(t *testing.T) {
	// Plenty of diesel and no surplus: the balance holds without the
	// unserved and curtailed terms.
	cfg := model.SystemConfig{
		Archetype: model.ArchetypeIndustrial, PeakLoadKW: 100, PVCapacityKW: 40, WindCapacityKW: 10, WindCapacityFactor: 0.3,
		BatteryCapacityKWh: 40, BatteryEfficiency: 0.9, DieselCapacityKW: 200, DieselEfficiencyKWhPerL: 3.5,
	}
	res, err := New().Simulate(cfg)
	require.NoError(t, err)
	for _, r := range res.Hourly {
		assert.InDelta(t, 0, r.CurtailedKW, 1e-12)
		assert.Less(t, r.UnservedKW, residualToleranceKW+1e-12)
		supplied := r.PVKW + r.WindKW + r.DieselKW + r.BatteryDischargeKW - r.BatteryChargeKW
		assert.InDelta(t, r.LoadKW, supplied, residualToleranceKW, "hour %d", r.Hour)
	}
}

func TestSimulate_SOCBoundsAndRateLimits(t *testing.T) {
	for _, cfg := range propertyConfigs() {
		res, err := New().Simulate(cfg)
		require.NoError(t, err)
		limit := model.CRateCap * cfg.BatteryCapacityKWh
		for _, r := range res.Hourly {
			assert.GreaterOrEqual(t, r.SOCEndKWh, 0.0)
			assert.LessOrEqual(t, r.SOCEndKWh, cfg.BatteryCapacityKWh)
			assert.LessOrEqual(t, r.BatteryWithdrawnKW, limit+1e-9)
			assert.LessOrEqual(t, r.BatteryChargeKW*cfg.BatteryEfficiency, limit+1e-9)
			assert.GreaterOrEqual(t, r.BatteryChargeKW, 0.0)
			assert.GreaterOrEqual(t, r.BatteryDischargeKW, 0.0)
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	for _, cfg := range propertyConfigs() {
		a, err := New().Simulate(cfg)
		require.NoError(t, err)
		b, err := New().Simulate(cfg)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestSimulate_AnnualIsDailyTimes365(t *testing.T) {
	res, err := New().Simulate(propertyConfigs()[0])
	require.NoError(t, err)

	assert.Equal(t, res.Daily.DieselKWh*365, res.Annual.DieselKWh)
	assert.Equal(t, res.Daily.RenewableKWh*365, res.Annual.RenewableKWh)
	assert.Equal(t, res.Daily.LoadKWh*365, res.Annual.LoadKWh)
	assert.Equal(t, res.Daily.DieselRuntimeHours*365, res.Annual.DieselRuntimeHours)
	assert.Equal(t, res.Daily.BatteryCycles*365, res.Annual.BatteryCycles)
	assert.Equal(t, res.Daily.UnservedKWh*365, res.Annual.UnservedKWh)
	assert.Equal(t, res.Daily.CurtailedKWh*365, res.Annual.CurtailedKWh)
}

func TestSimulate_DieselOnlyDropsLoadAboveCapacity(t *testing.T) {
	cfg := model.SystemConfig{
		Archetype:               model.ArchetypeIndustrial,
		PeakLoadKW:              100,
		BatteryEfficiency:       0.9,
		DieselCapacityKW:        90,
		DieselEfficiencyKWhPerL: 3.5,
	}
	res, err := New().Simulate(cfg)
	require.NoError(t, err)

	profile, _ := model.ArchetypeIndustrial.LoadProfile()
	for h, r := range res.Hourly {
		load := 100 * profile[h]
		assert.InDelta(t, math.Min(load, 90), r.DieselKW, 1e-9, "hour %d", h)
		assert.InDelta(t, math.Max(0, load-90), r.UnservedKW, 1e-9, "hour %d", h)
		assert.Zero(t, r.BatteryDischargeKW)
		assert.Zero(t, r.BatteryChargeKW)
	}
	assert.Equal(t, 24.0, res.Daily.DieselRuntimeHours)
	assert.Equal(t, 0.0, res.Annual.BatteryCycles)
	assert.InDelta(t, 2230, res.Daily.DieselKWh+res.Daily.UnservedKWh, 1e-9)
	assert.Equal(t, 0.0, res.RenewableFractionPct)
}

func TestSimulate_ZeroLoadHasZeroRenewableFraction(t *testing.T) {
	cfg := commercialScenario()
	cfg.PeakLoadKW = 0
	cfg.PVCapacityKW = 0
	res, err := New().Simulate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.RenewableFractionPct)
	assert.Equal(t, 0.0, res.Annual.DieselRuntimeHours)
}

func TestSimulate_CyclesCountBothDirections(t *testing.T) {
	res, err := New().Simulate(propertyConfigs()[1])
	require.NoError(t, err)

	capacity := propertyConfigs()[1].BatteryCapacityKWh
	want := 0.0
	for _, r := range res.Hourly {
		want += r.BatteryWithdrawnKW/(2*capacity) + r.BatteryChargeKW/(2*capacity)
	}
	assert.InDelta(t, want, res.Daily.BatteryCycles, 1e-12)
	assert.Greater(t, res.Daily.CurtailedKWh, 0.0)
}

func TestSimulate_RejectsInvalidInput(t *testing.T) {
	cases := map[string]func(*model.SystemConfig){
		"archetype":       func(c *model.SystemConfig) { c.Archetype = "office" },
		"negative pv":     func(c *model.SystemConfig) { c.PVCapacityKW = -1 },
		"nan peak":        func(c *model.SystemConfig) { c.PeakLoadKW = math.NaN() },
		"zero efficiency": func(c *model.SystemConfig) { c.BatteryEfficiency = 0 },
		"wind cf > 1":     func(c *model.SystemConfig) { c.WindCapacityFactor = 1.5 },
		"diesel eff":      func(c *model.SystemConfig) { c.DieselEfficiencyKWhPerL = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := commercialScenario()
			mutate(&cfg)
			res, err := New().Simulate(cfg)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, model.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestResult_Series(t *testing.T) {
	res, err := New().Simulate(commercialScenario())
	require.NoError(t, err)
	s := res.Series()
	assert.InDelta(t, 30, s.Load[0], 1e-9)
	assert.InDelta(t, 18.75, s.Diesel[0], 1e-9)
	assert.InDelta(t, 11.25, s.BatteryDischarge[0], 1e-9)
	assert.InDelta(t, 50, s.PV[12], 1e-9)
}
