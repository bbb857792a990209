package models

// SimulateResponse represents the response from a microgrid simulation
type SimulateResponse struct {
	ID      string           `json:"id"`
	Status  string           `json:"status"`
	Cached  bool             `json:"cached"`
	Summary MicrogridSummary `json:"summary"`
	Cost    CostBreakdown    `json:"cost"`
	Daily   EnergyTotals     `json:"daily"`
	Annual  EnergyTotals     `json:"annual"`
	Hourly  []HourRow        `json:"hourly,omitempty"`
	Series  *HourlySeries    `json:"series,omitempty"`
}

// MicrogridSummary contains the headline results
type MicrogridSummary struct {
	TotalSystemCost         float64 `json:"total_system_cost"`
	RenewableFractionPct    float64 `json:"renewable_fraction_pct"`
	DieselRuntimeHoursPerYr float64 `json:"diesel_runtime_hours_per_yr"`
	BatteryCyclesPerYr      float64 `json:"battery_cycles_per_yr"`
	UnservedKWhPerYr        float64 `json:"unserved_kwh_per_yr"`
	CurtailedKWhPerYr       float64 `json:"curtailed_kwh_per_yr"`
	FinalSOCKWh             float64 `json:"final_soc_kwh"`
}

// EnergyTotals aggregates a day or a year
type EnergyTotals struct {
	LoadKWh            float64 `json:"load_kwh"`
	RenewableKWh       float64 `json:"renewable_kwh"`
	DieselKWh          float64 `json:"diesel_kwh"`
	UnservedKWh        float64 `json:"unserved_kwh"`
	CurtailedKWh       float64 `json:"curtailed_kwh"`
	DieselRuntimeHours float64 `json:"diesel_runtime_hours"`
	BatteryCycles      float64 `json:"battery_cycles"`
}

// CostBreakdown is the life-cycle cost in $
type CostBreakdown struct {
	PVCapex         float64 `json:"pv_capex"`
	WindCapex       float64 `json:"wind_capex"`
	BatteryCapex    float64 `json:"battery_capex"`
	DieselCapex     float64 `json:"diesel_capex"`
	TotalCapex      float64 `json:"total_capex"`
	PVOM            float64 `json:"pv_om"`
	WindOM          float64 `json:"wind_om"`
	BatteryOM       float64 `json:"battery_om"`
	DieselFuel      float64 `json:"diesel_fuel"`
	AnnualOpex      float64 `json:"annual_opex"`
	AnnualFuelL     float64 `json:"annual_fuel_l"`
	PVFactor        float64 `json:"pv_factor"`
	OpexNPV         float64 `json:"opex_npv"`
	TotalSystemCost float64 `json:"total_system_cost"`
}

// HourRow represents one hour of the dispatch ledger
type HourRow struct {
	Hour               int     `json:"hour"`
	Action             string  `json:"action"` // "CHARGING", "DISCHARGING", "DIESEL", "IDLE"
	LoadKW             float64 `json:"load_kw"`
	PVKW               float64 `json:"pv_kw"`
	WindKW             float64 `json:"wind_kw"`
	DieselKW           float64 `json:"diesel_kw"`
	BatteryChargeKW    float64 `json:"battery_charge_kw"`
	BatteryDischargeKW float64 `json:"battery_discharge_kw"`
	BatteryWithdrawnKW float64 `json:"battery_withdrawn_kw"`
	UnservedKW         float64 `json:"unserved_kw"`
	CurtailedKW        float64 `json:"curtailed_kw"`
	SOCStartKWh        float64 `json:"soc_start_kwh"`
	SOCEndKWh          float64 `json:"soc_end_kwh"`
}

// HourlySeries is the chart view: 24 labels and six aligned series
type HourlySeries struct {
	Labels           []string  `json:"labels"`
	Load             []float64 `json:"load"`
	PV               []float64 `json:"pv"`
	Wind             []float64 `json:"wind"`
	Diesel           []float64 `json:"diesel"`
	BatteryCharge    []float64 `json:"battery_charge"`
	BatteryDischarge []float64 `json:"battery_discharge"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	ID         string             `json:"id"`
	Comparison []ComparisonResult `json:"comparison"`
	Skipped    []SkippedVariation `json:"skipped,omitempty"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank    int              `json:"rank"`
	Name    string           `json:"name"`
	Summary MicrogridSummary `json:"summary"`
	Cost    CostBreakdown    `json:"cost"`
}

// SkippedVariation names a variation that failed validation
type SkippedVariation struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// LCOHResponse represents the levelized cost of hydrogen
type LCOHResponse struct {
	ID                   string  `json:"id"`
	Cached               bool    `json:"cached"`
	LCOHPerKg            float64 `json:"lcoh_per_kg"`
	RenewableFractionPct float64 `json:"renewable_fraction_pct"`
	H2TonnesPerYr        float64 `json:"h2_tonnes_per_yr"`
	RenewableMWhPerYr    float64 `json:"renewable_mwh_per_yr"`
	DemandMWhPerYr       float64 `json:"demand_mwh_per_yr"`
	RenewableUsedMWh     float64 `json:"renewable_used_mwh"`
	GridGWhPerYr         float64 `json:"grid_gwh_per_yr"`
	CRF                  float64 `json:"crf"`
	AnnualizedCapex      float64 `json:"annualized_capex"`
	GridCost             float64 `json:"grid_cost"`
	OMCost               float64 `json:"om_cost"`
	TotalAnnualCost      float64 `json:"total_annual_cost"`
}

// BESSResponse represents the battery revenue stack
type BESSResponse struct {
	ID                string          `json:"id"`
	Cached            bool            `json:"cached"`
	TotalRevenue      float64         `json:"total_revenue"`
	ArbitrageRevenue  float64         `json:"arbitrage_revenue"`
	MFRRRevenue       float64         `json:"mfrr_revenue"`
	AFRRRevenue       float64         `json:"afrr_revenue"`
	FCRRevenue        float64         `json:"fcr_revenue"`
	CongestionRevenue float64         `json:"congestion_revenue"`
	CapacityRevenue   float64         `json:"capacity_revenue"`
	CyclesPerYear     float64         `json:"cycles_per_year"`
	UtilizationPct    float64         `json:"utilization_pct"`
	Capex             float64         `json:"capex"`
	PaybackYears      float64         `json:"payback_years"`
	Streams           []RevenueStream `json:"streams"`
}

// RevenueStream is one slice of the revenue chart
type RevenueStream struct {
	Service string  `json:"service"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// ArchetypeInfo describes a load archetype and the shared generation shapes
type ArchetypeInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Load        []float64 `json:"load"`
}

// PresetInfo represents information about a scenario preset
type PresetInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	File        string      `json:"file"`
	Specs       PresetSpecs `json:"specs"`
}

// PresetSpecs contains the sizing headline of a preset
type PresetSpecs struct {
	LoadProfile        string  `json:"load_profile"`
	PeakLoadKW         float64 `json:"peak_load_kw"`
	PVCapacityKW       float64 `json:"pv_capacity_kw"`
	WindCapacityKW     float64 `json:"wind_capacity_kw"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	DieselCapacityKW   float64 `json:"diesel_capacity_kw"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
