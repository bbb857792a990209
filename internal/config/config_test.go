package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"energy-sizing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.yaml", "{}\n")
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
}

func TestLoad_PresetThenOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scenarios/island.yaml", `
microgrid:
  name: Island
  load_profile: residential
  peak_load_kw: 250
  pv_capacity_kw: 300
  diesel_capacity_kw: 120
`)
	p := writeFile(t, dir, "run.yaml", `
microgrid_file: scenarios/island.yaml
microgrid:
  peak_load_kw: 275
  wind_capacity_kw: 0
  costs:
    diesel_fuel_price_per_l: 2.1
`)
	c, err := Load(p)
	require.NoError(t, err)

	m := c.Microgrid
	assert.Equal(t, "Island", m.Name)
	assert.Equal(t, "residential", m.LoadProfile)
	assert.Equal(t, 275.0, m.PeakLoadKW)
	assert.Equal(t, 300.0, m.PVCapacityKW)
	assert.Equal(t, 120.0, m.DieselCapacityKW)
	// Explicit zero switches the default wind turbine off.
	assert.Equal(t, 0.0, m.WindCapacityKW)
	assert.Equal(t, 2.1, m.Costs.DieselFuelPricePerL)
	// Untouched nested fields keep their defaults.
	assert.Equal(t, Default().Microgrid.Costs.PVCapexPerKW, m.Costs.PVCapexPerKW)
}

func TestLoad_SectionsDecodeOntoDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bess.yaml", `
bess:
  power_mw: 25
  services:
    arbitrage: false
    fcr: true
lcoh:
  loading_factor: 0.9
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 25.0, c.BESS.PowerMW)
	assert.Equal(t, Default().BESS.EnergyMWh, c.BESS.EnergyMWh)
	assert.False(t, c.BESS.Services.Arbitrage)
	assert.True(t, c.BESS.Services.FCR)
	assert.True(t, c.BESS.Services.MFRR)
	assert.Equal(t, 0.9, c.LCOH.LoadingFactor)
	assert.Equal(t, Default().LCOH.ElectrolyzerMW, c.LCOH.ElectrolyzerMW)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"profile":  "microgrid:\n  load_profile: hospital\n",
		"negative": "microgrid:\n  pv_capacity_kw: -5\n",
		"eff":      "microgrid:\n  battery_efficiency: 1.5\n",
		"lcoh":     "lcoh:\n  electrolyzer_kwh_per_kg: 0\n",
		"bess":     "bess:\n  price_volatility: 2\n",
		"horizon":  "microgrid:\n  finance:\n    lifetime_years: -3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, dir, name+".yaml", body)
			_, err := Load(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidInput), "got %v", err)

			// LoadUnchecked still returns the parsed config.
			c, err := LoadUnchecked(p)
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestLoad_MissingPreset(t *testing.T) {
	p := writeFile(t, t.TempDir(), "run.yaml", "microgrid_file: nope.yaml\n")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bad.yaml", "microgrid: [1, 2\n")
	_, err := LoadUnchecked(p)
	assert.Error(t, err)
}

func TestMicrogridConfig_ToModel(t *testing.T) {
	m := Default().Microgrid
	m.LoadProfile = "Industrial"
	in, err := m.ToModel()
	require.NoError(t, err)
	assert.Equal(t, model.ArchetypeIndustrial, in.System.Archetype)
	assert.Equal(t, m.PeakLoadKW, in.System.PeakLoadKW)
	assert.Equal(t, m.Costs.BatteryCapexPerKWh, in.Costs.BatteryCapexPerKWh)
	assert.Equal(t, model.DefaultLifetimeYears, in.Finance.WithDefaults().LifetimeYears)
}

func TestMergeMicrogrid(t *testing.T) {
	base := Default().Microgrid
	out := MergeMicrogrid(base, MicrogridConfig{
		Name:               "big battery",
		BatteryCapacityKWh: 500,
		Costs:              CostConfig{BatteryCapexPerKWh: 300},
		Finance:            FinanceConfig{LifetimeYears: 15},
	})
	assert.Equal(t, "big battery", out.Name)
	assert.Equal(t, 500.0, out.BatteryCapacityKWh)
	assert.Equal(t, 300.0, out.Costs.BatteryCapexPerKWh)
	assert.Equal(t, 15, out.Finance.LifetimeYears)
	assert.Equal(t, base.PVCapacityKW, out.PVCapacityKW)
	assert.Equal(t, base.Costs.PVCapexPerKW, out.Costs.PVCapexPerKW)
	assert.Equal(t, base.LoadProfile, out.LoadProfile)
}

func TestLoad_ZeroDiscountRateIsKept(t *testing.T) {
	p := writeFile(t, t.TempDir(), "undiscounted.yaml", `
microgrid:
  finance:
    discount_rate: 0
    lifetime_years: 10
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.NotNil(t, c.Microgrid.Finance.DiscountRate)

	in, err := c.Microgrid.ToModel()
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.Finance.Rate())

	unset, err := Default().Microgrid.ToModel()
	require.NoError(t, err)
	assert.Nil(t, unset.Finance.DiscountRate)
	assert.Equal(t, model.DefaultDiscountRate, unset.Finance.Rate())

	// A variant can also ask for 0 % on a discounted base.
	base := Default().Microgrid
	base.Finance.DiscountRate = model.Rate(0.1)
	out := MergeMicrogrid(base, MicrogridConfig{Finance: FinanceConfig{DiscountRate: model.Rate(0)}})
	require.NotNil(t, out.Finance.DiscountRate)
	assert.Equal(t, 0.0, *out.Finance.DiscountRate)
	assert.Equal(t, 0.1, *base.Finance.DiscountRate)
}

func TestLoadVariantFile_KeepsOnlyGivenKeys(t *testing.T) {
	p := writeFile(t, t.TempDir(), "v.yaml", "microgrid:\n  name: more pv\n  pv_capacity_kw: 200\n")
	v, err := LoadVariantFile(p)
	require.NoError(t, err)
	assert.Equal(t, MicrogridConfig{Name: "more pv", PVCapacityKW: 200}, v)

	merged := MergeMicrogrid(Default().Microgrid, v)
	assert.Equal(t, 200.0, merged.PVCapacityKW)
	assert.Equal(t, Default().Microgrid.PeakLoadKW, merged.PeakLoadKW)
}

func TestExampleScenarios(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Remote island", c.Microgrid.Name)
	assert.Equal(t, 400.0, c.Microgrid.BatteryCapacityKWh)
	assert.False(t, c.BESS.Services.FCR)

	presets, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, presets)
	for _, p := range presets {
		m, err := LoadMicrogridFile(p)
		require.NoError(t, err, p)
		in, err := m.ToModel()
		require.NoError(t, err, p)
		assert.NoError(t, in.Validate(), p)
	}
}
