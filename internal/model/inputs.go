package model

// MicrogridInputs represents a canonical "inputs to the system" object:
// everything the dispatch simulator and the cost roll-up consume.
type MicrogridInputs struct {
	System  SystemConfig
	Costs   CostParams
	Finance FinanceParams
}

// Validate checks every section. Finance defaults are applied first so an
// omitted horizon is not reported as invalid.
func (in MicrogridInputs) Validate() error {
	if err := in.System.Validate(); err != nil {
		return err
	}
	if err := in.Costs.Validate(); err != nil {
		return err
	}
	return in.Finance.WithDefaults().Validate()
}
