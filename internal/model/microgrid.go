package model

const (
	DefaultDiscountRate  = 0.08
	DefaultLifetimeYears = 25
)

// SystemConfig sizes a microgrid for one dispatch run.
// Units:
// - capacities: kW (battery: kWh)
// - WindCapacityFactor, BatteryEfficiency: 0..1
// - DieselEfficiencyKWhPerL: kWh of electricity per litre of fuel
type SystemConfig struct {
	Archetype LoadArchetype

	PeakLoadKW         float64
	PVCapacityKW       float64
	WindCapacityKW     float64
	WindCapacityFactor float64
	BatteryCapacityKWh float64
	BatteryEfficiency  float64
	DieselCapacityKW   float64

	DieselEfficiencyKWhPerL float64
}

func (c SystemConfig) Validate() error {
	if !c.Archetype.Valid() {
		return invalid("load_profile", "must be one of commercial, industrial, residential")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"peak_load_kw", c.PeakLoadKW},
		{"pv_capacity_kw", c.PVCapacityKW},
		{"wind_capacity_kw", c.WindCapacityKW},
		{"battery_capacity_kwh", c.BatteryCapacityKWh},
		{"diesel_capacity_kw", c.DieselCapacityKW},
	} {
		if err := CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if err := CheckFraction("wind_capacity_factor", c.WindCapacityFactor); err != nil {
		return err
	}
	if err := CheckEfficiency("battery_efficiency", c.BatteryEfficiency); err != nil {
		return err
	}
	return CheckPositive("diesel_efficiency_kwh_per_l", c.DieselEfficiencyKWhPerL)
}

func (c SystemConfig) BatteryParams() BatteryParams {
	return BatteryParams{
		CapacityKWh: c.BatteryCapacityKWh,
		Efficiency:  c.BatteryEfficiency,
	}
}

// CostParams holds unit CAPEX ($/kW, battery $/kWh), yearly O&M as a
// fraction of CAPEX, and the diesel fuel price ($/L).
type CostParams struct {
	PVCapexPerKW        float64
	WindCapexPerKW      float64
	BatteryCapexPerKWh  float64
	DieselCapexPerKW    float64
	PVOMFraction        float64
	WindOMFraction      float64
	BatteryOMFraction   float64
	DieselFuelPricePerL float64
}

func (c CostParams) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pv_capex_per_kw", c.PVCapexPerKW},
		{"wind_capex_per_kw", c.WindCapexPerKW},
		{"battery_capex_per_kwh", c.BatteryCapexPerKWh},
		{"diesel_capex_per_kw", c.DieselCapexPerKW},
		{"diesel_fuel_price_per_l", c.DieselFuelPricePerL},
	} {
		if err := CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pv_om_fraction", c.PVOMFraction},
		{"wind_om_fraction", c.WindOMFraction},
		{"battery_om_fraction", c.BatteryOMFraction},
	} {
		if err := CheckFraction(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// FinanceParams controls discounting. A nil DiscountRate or a zero
// LifetimeYears means "use the default"; an explicit 0 rate is undiscounted.
type FinanceParams struct {
	DiscountRate  *float64
	LifetimeYears int
}

// Rate returns a pointer to r, for setting FinanceParams.DiscountRate.
func Rate(r float64) *float64 { return &r }

// Rate returns the discount rate, falling back to DefaultDiscountRate.
func (f FinanceParams) Rate() float64 {
	if f.DiscountRate == nil {
		return DefaultDiscountRate
	}
	return *f.DiscountRate
}

func (f FinanceParams) WithDefaults() FinanceParams {
	f.DiscountRate = Rate(f.Rate())
	if f.LifetimeYears == 0 {
		f.LifetimeYears = DefaultLifetimeYears
	}
	return f
}

func (f FinanceParams) Validate() error {
	r := f.Rate()
	if err := checkFinite("discount_rate", r); err != nil {
		return err
	}
	if r <= -1 {
		return invalid("discount_rate", "must be > -1")
	}
	if f.LifetimeYears < 1 {
		return invalid("lifetime_years", "must be >= 1")
	}
	return nil
}
