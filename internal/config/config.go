package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"energy-sizing/internal/bess"
	"energy-sizing/internal/lcoh"
	"energy-sizing/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML). The same structs double as
// API request bodies, hence the json tags.
type Config struct {
	// Optional: load microgrid parameters from a preset YAML (e.g. examples/scenarios/*.yaml).
	// Non-zero fields in Microgrid override the preset.
	MicrogridFile string          `yaml:"microgrid_file" json:"microgrid_file,omitempty"`
	Microgrid     MicrogridConfig `yaml:"microgrid" json:"microgrid"`
	LCOH          LCOHConfig      `yaml:"lcoh" json:"lcoh"`
	BESS          BESSConfig      `yaml:"bess" json:"bess"`
}

type MicrogridConfig struct {
	Name                    string        `yaml:"name" json:"name,omitempty"`
	Description             string        `yaml:"description" json:"description,omitempty"`
	LoadProfile             string        `yaml:"load_profile" json:"load_profile"`
	PeakLoadKW              float64       `yaml:"peak_load_kw" json:"peak_load_kw"`
	PVCapacityKW            float64       `yaml:"pv_capacity_kw" json:"pv_capacity_kw"`
	WindCapacityKW          float64       `yaml:"wind_capacity_kw" json:"wind_capacity_kw"`
	WindCapacityFactor      float64       `yaml:"wind_capacity_factor" json:"wind_capacity_factor"`
	BatteryCapacityKWh      float64       `yaml:"battery_capacity_kwh" json:"battery_capacity_kwh"`
	BatteryEfficiency       float64       `yaml:"battery_efficiency" json:"battery_efficiency"`
	DieselCapacityKW        float64       `yaml:"diesel_capacity_kw" json:"diesel_capacity_kw"`
	DieselEfficiencyKWhPerL float64       `yaml:"diesel_efficiency_kwh_per_l" json:"diesel_efficiency_kwh_per_l"`
	Costs                   CostConfig    `yaml:"costs" json:"costs"`
	Finance                 FinanceConfig `yaml:"finance" json:"finance"`
}

type CostConfig struct {
	PVCapexPerKW        float64 `yaml:"pv_capex_per_kw" json:"pv_capex_per_kw"`
	WindCapexPerKW      float64 `yaml:"wind_capex_per_kw" json:"wind_capex_per_kw"`
	BatteryCapexPerKWh  float64 `yaml:"battery_capex_per_kwh" json:"battery_capex_per_kwh"`
	DieselCapexPerKW    float64 `yaml:"diesel_capex_per_kw" json:"diesel_capex_per_kw"`
	PVOMFraction        float64 `yaml:"pv_om_fraction" json:"pv_om_fraction"`
	WindOMFraction      float64 `yaml:"wind_om_fraction" json:"wind_om_fraction"`
	BatteryOMFraction   float64 `yaml:"battery_om_fraction" json:"battery_om_fraction"`
	DieselFuelPricePerL float64 `yaml:"diesel_fuel_price_per_l" json:"diesel_fuel_price_per_l"`
}

// FinanceConfig leaves unset values in place; model.FinanceParams.WithDefaults
// fills them at evaluation time. discount_rate: 0 is kept as 0 %.
type FinanceConfig struct {
	DiscountRate  *float64 `yaml:"discount_rate" json:"discount_rate,omitempty"`
	LifetimeYears int      `yaml:"lifetime_years" json:"lifetime_years,omitempty"`
}

type LCOHConfig struct {
	ElectrolyzerMW        float64       `yaml:"electrolyzer_mw" json:"electrolyzer_mw"`
	LoadingFactor         float64       `yaml:"loading_factor" json:"loading_factor"`
	GridPricePerMWh       float64       `yaml:"grid_price_per_mwh" json:"grid_price_per_mwh"`
	PVCapacityFactor      float64       `yaml:"pv_capacity_factor" json:"pv_capacity_factor"`
	PVMW                  float64       `yaml:"pv_mw" json:"pv_mw"`
	WindCapacityFactor    float64       `yaml:"wind_capacity_factor" json:"wind_capacity_factor"`
	WindMW                float64       `yaml:"wind_mw" json:"wind_mw"`
	PVCostPerKW           float64       `yaml:"pv_cost_per_kw" json:"pv_cost_per_kw"`
	WindCostPerKW         float64       `yaml:"wind_cost_per_kw" json:"wind_cost_per_kw"`
	ElectrolyzerCostPerKW float64       `yaml:"electrolyzer_cost_per_kw" json:"electrolyzer_cost_per_kw"`
	ElectrolyzerKWhPerKg  float64       `yaml:"electrolyzer_kwh_per_kg" json:"electrolyzer_kwh_per_kg"`
	Finance               FinanceConfig `yaml:"finance" json:"finance"`
}

type BESSConfig struct {
	PowerMW                   float64        `yaml:"power_mw" json:"power_mw"`
	EnergyMWh                 float64        `yaml:"energy_mwh" json:"energy_mwh"`
	RoundTripEfficiency       float64        `yaml:"round_trip_efficiency" json:"round_trip_efficiency"`
	DegradationCostPerMWh     float64        `yaml:"degradation_cost_per_mwh" json:"degradation_cost_per_mwh"`
	Services                  ServicesConfig `yaml:"services" json:"services"`
	DayAheadPrice             float64        `yaml:"day_ahead_price" json:"day_ahead_price"`
	PriceVolatility           float64        `yaml:"price_volatility" json:"price_volatility"`
	MFRRPricePerMWh           float64        `yaml:"mfrr_price" json:"mfrr_price"`
	AFRRPricePerMWh           float64        `yaml:"afrr_price" json:"afrr_price"`
	FCRPricePerMWh            float64        `yaml:"fcr_price" json:"fcr_price"`
	CapacityPaymentPerMWMonth float64        `yaml:"capacity_payment" json:"capacity_payment"`
	CapexPerMW                float64        `yaml:"capex_per_mw" json:"capex_per_mw,omitempty"`
}

type ServicesConfig struct {
	Arbitrage  bool `yaml:"arbitrage" json:"arbitrage"`
	MFRR       bool `yaml:"mfrr" json:"mfrr"`
	AFRR       bool `yaml:"afrr" json:"afrr"`
	FCR        bool `yaml:"fcr" json:"fcr"`
	Congestion bool `yaml:"congestion" json:"congestion"`
	Capacity   bool `yaml:"capacity" json:"capacity"`
}

// Default returns a representative commercial site, a 100 MW electrolyzer
// case and a 10 MW / 20 MWh battery. Every field the calculators require is
// set so a scenario file only needs to name what it changes.
func Default() Config {
	return Config{
		Microgrid: MicrogridConfig{
			LoadProfile:             string(model.ArchetypeCommercial),
			PeakLoadKW:              100,
			PVCapacityKW:            80,
			WindCapacityKW:          20,
			WindCapacityFactor:      0.35,
			BatteryCapacityKWh:      200,
			BatteryEfficiency:       0.9,
			DieselCapacityKW:        50,
			DieselEfficiencyKWhPerL: 3.5,
			Costs: CostConfig{
				PVCapexPerKW:        1000,
				WindCapexPerKW:      1500,
				BatteryCapexPerKWh:  400,
				DieselCapexPerKW:    500,
				PVOMFraction:        0.01,
				WindOMFraction:      0.02,
				BatteryOMFraction:   0.015,
				DieselFuelPricePerL: 1.2,
			},
		},
		LCOH: LCOHConfig{
			ElectrolyzerMW:        100,
			LoadingFactor:         0.7,
			GridPricePerMWh:       50,
			PVCapacityFactor:      0.2,
			PVMW:                  150,
			WindCapacityFactor:    0.35,
			WindMW:                100,
			PVCostPerKW:           800,
			WindCostPerKW:         1300,
			ElectrolyzerCostPerKW: 1000,
			ElectrolyzerKWhPerKg:  55,
		},
		BESS: BESSConfig{
			PowerMW:                   10,
			EnergyMWh:                 20,
			RoundTripEfficiency:       0.88,
			DegradationCostPerMWh:     5,
			Services:                  ServicesConfig{Arbitrage: true, MFRR: true, AFRR: true},
			DayAheadPrice:             80,
			PriceVolatility:           0.3,
			MFRRPricePerMWh:           8,
			AFRRPricePerMWh:           12,
			FCRPricePerMWh:            15,
			CapacityPaymentPerMWMonth: 3000,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
//
// Layering: defaults, then the microgrid preset, then the file itself. Each
// layer is decoded onto the previous one, so only keys present in a layer
// change anything and an explicit 0 (e.g. wind_capacity_kw: 0) is honoured.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(raw, filepath.Dir(path))
}

// Parse decodes and validates a scenario document. Relative microgrid_file
// paths resolve against baseDir first, then the working directory.
func Parse(raw []byte, baseDir string) (*Config, error) {
	c, err := parse(raw, baseDir)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parse(raw []byte, baseDir string) (*Config, error) {
	var head struct {
		MicrogridFile string `yaml:"microgrid_file"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	c := Default()
	if head.MicrogridFile != "" {
		loaded, err := LoadMicrogridFile(ResolvePath(baseDir, head.MicrogridFile))
		if err != nil {
			return nil, err
		}
		c.Microgrid = loaded
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &c, nil
}

// ResolvePath prefers interpreting relative paths as relative to baseDir,
// but falls back to the provided path (relative to cwd) if that doesn't exist.
func ResolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	cand := filepath.Join(baseDir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	in, err := c.Microgrid.ToModel()
	if err != nil {
		return fmt.Errorf("microgrid config invalid: %w", err)
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("microgrid config invalid: %w", err)
	}
	if err := c.LCOH.ToModel().Validate(); err != nil {
		return fmt.Errorf("lcoh config invalid: %w", err)
	}
	if err := c.BESS.ToModel().Validate(); err != nil {
		return fmt.Errorf("bess config invalid: %w", err)
	}
	return nil
}

// ToModel converts the microgrid section. The only failure is an unknown
// load profile tag; numeric checks are left to model.MicrogridInputs.Validate.
func (m MicrogridConfig) ToModel() (model.MicrogridInputs, error) {
	arch, err := model.ParseLoadArchetype(m.LoadProfile)
	if err != nil {
		return model.MicrogridInputs{}, err
	}
	return model.MicrogridInputs{
		System: model.SystemConfig{
			Archetype:               arch,
			PeakLoadKW:              m.PeakLoadKW,
			PVCapacityKW:            m.PVCapacityKW,
			WindCapacityKW:          m.WindCapacityKW,
			WindCapacityFactor:      m.WindCapacityFactor,
			BatteryCapacityKWh:      m.BatteryCapacityKWh,
			BatteryEfficiency:       m.BatteryEfficiency,
			DieselCapacityKW:        m.DieselCapacityKW,
			DieselEfficiencyKWhPerL: m.DieselEfficiencyKWhPerL,
		},
		Costs: model.CostParams{
			PVCapexPerKW:        m.Costs.PVCapexPerKW,
			WindCapexPerKW:      m.Costs.WindCapexPerKW,
			BatteryCapexPerKWh:  m.Costs.BatteryCapexPerKWh,
			DieselCapexPerKW:    m.Costs.DieselCapexPerKW,
			PVOMFraction:        m.Costs.PVOMFraction,
			WindOMFraction:      m.Costs.WindOMFraction,
			BatteryOMFraction:   m.Costs.BatteryOMFraction,
			DieselFuelPricePerL: m.Costs.DieselFuelPricePerL,
		},
		Finance: m.Finance.ToModel(),
	}, nil
}

func (f FinanceConfig) ToModel() model.FinanceParams {
	fin := model.FinanceParams{LifetimeYears: f.LifetimeYears}
	if f.DiscountRate != nil {
		fin.DiscountRate = model.Rate(*f.DiscountRate)
	}
	return fin
}

func (l LCOHConfig) ToModel() lcoh.Inputs {
	return lcoh.Inputs{
		ElectrolyzerMW:        l.ElectrolyzerMW,
		LoadingFactor:         l.LoadingFactor,
		GridPricePerMWh:       l.GridPricePerMWh,
		PVCapacityFactor:      l.PVCapacityFactor,
		PVMW:                  l.PVMW,
		WindCapacityFactor:    l.WindCapacityFactor,
		WindMW:                l.WindMW,
		PVCostPerKW:           l.PVCostPerKW,
		WindCostPerKW:         l.WindCostPerKW,
		ElectrolyzerCostPerKW: l.ElectrolyzerCostPerKW,
		ElectrolyzerKWhPerKg:  l.ElectrolyzerKWhPerKg,
		Finance:               l.Finance.ToModel(),
	}
}

func (b BESSConfig) ToModel() bess.Params {
	return bess.Params{
		PowerMW:               b.PowerMW,
		EnergyMWh:             b.EnergyMWh,
		RoundTripEfficiency:   b.RoundTripEfficiency,
		DegradationCostPerMWh: b.DegradationCostPerMWh,
		Services: bess.Services{
			Arbitrage:  b.Services.Arbitrage,
			MFRR:       b.Services.MFRR,
			AFRR:       b.Services.AFRR,
			FCR:        b.Services.FCR,
			Congestion: b.Services.Congestion,
			Capacity:   b.Services.Capacity,
		},
		DayAheadPrice:             b.DayAheadPrice,
		PriceVolatility:           b.PriceVolatility,
		MFRRPricePerMWh:           b.MFRRPricePerMWh,
		AFRRPricePerMWh:           b.AFRRPricePerMWh,
		FCRPricePerMWh:            b.FCRPricePerMWh,
		CapacityPaymentPerMWMonth: b.CapacityPaymentPerMWMonth,
		CapexPerMW:                b.CapexPerMW,
	}
}

type microgridFileWrapper struct {
	Microgrid MicrogridConfig `yaml:"microgrid"`
}

// LoadMicrogridFile reads the microgrid section of a preset file, decoded
// onto the default microgrid.
func LoadMicrogridFile(path string) (MicrogridConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MicrogridConfig{}, err
	}
	w := microgridFileWrapper{Microgrid: Default().Microgrid}
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return MicrogridConfig{}, fmt.Errorf("parse preset %s: %w", filepath.Base(path), err)
	}
	return w.Microgrid, nil
}

// LoadVariantFile reads the microgrid section of a comparison variant as
// written, without defaults, so that MergeMicrogrid only applies the keys it
// sets.
func LoadVariantFile(path string) (MicrogridConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MicrogridConfig{}, err
	}
	var w microgridFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return MicrogridConfig{}, fmt.Errorf("parse variant %s: %w", filepath.Base(path), err)
	}
	return w.Microgrid, nil
}

// MergeMicrogrid overlays non-zero fields from override onto base.
// This is used when applying comparison variants to a base scenario.
func MergeMicrogrid(base, override MicrogridConfig) MicrogridConfig {
	out := base
	overlayStr(&out.Name, override.Name)
	overlayStr(&out.Description, override.Description)
	overlayStr(&out.LoadProfile, override.LoadProfile)
	overlay(&out.PeakLoadKW, override.PeakLoadKW)
	overlay(&out.PVCapacityKW, override.PVCapacityKW)
	overlay(&out.WindCapacityKW, override.WindCapacityKW)
	overlay(&out.WindCapacityFactor, override.WindCapacityFactor)
	overlay(&out.BatteryCapacityKWh, override.BatteryCapacityKWh)
	overlay(&out.BatteryEfficiency, override.BatteryEfficiency)
	overlay(&out.DieselCapacityKW, override.DieselCapacityKW)
	overlay(&out.DieselEfficiencyKWhPerL, override.DieselEfficiencyKWhPerL)

	overlay(&out.Costs.PVCapexPerKW, override.Costs.PVCapexPerKW)
	overlay(&out.Costs.WindCapexPerKW, override.Costs.WindCapexPerKW)
	overlay(&out.Costs.BatteryCapexPerKWh, override.Costs.BatteryCapexPerKWh)
	overlay(&out.Costs.DieselCapexPerKW, override.Costs.DieselCapexPerKW)
	overlay(&out.Costs.PVOMFraction, override.Costs.PVOMFraction)
	overlay(&out.Costs.WindOMFraction, override.Costs.WindOMFraction)
	overlay(&out.Costs.BatteryOMFraction, override.Costs.BatteryOMFraction)
	overlay(&out.Costs.DieselFuelPricePerL, override.Costs.DieselFuelPricePerL)

	if override.Finance.DiscountRate != nil {
		out.Finance.DiscountRate = model.Rate(*override.Finance.DiscountRate)
	}
	if override.Finance.LifetimeYears != 0 {
		out.Finance.LifetimeYears = override.Finance.LifetimeYears
	}
	return out
}

// Note: a zero override cannot switch an asset off.
func overlay(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func overlayStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
