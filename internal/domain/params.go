package domain

// MaxIterations bounds the iteration count a plan may request, protecting
// the external engine from pathological workloads.
const MaxIterations = 100000

// SimulationParameters are the scalar knobs of a plan. currentAge <
// retirementAge is expected but stored as given; only the iteration count is
// bounded here.
type SimulationParameters struct {
	CurrentAge     int     `json:"currentAge"`
	RetirementAge  int     `json:"retirementAge"`
	InflationRate  float64 `json:"inflationRate"`
	DefaultTaxRate float64 `json:"defaultTaxRate"`
	Iterations     int     `json:"iterationCount"`
}

// DefaultParameters returns the parameters a fresh plan starts with.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		CurrentAge:     30,
		RetirementAge:  65,
		InflationRate:  0.03,
		DefaultTaxRate: 0.25,
		Iterations:     1000,
	}
}

// Apply runs every field command against the parameters. Parameter updates
// are total: they never fail, they clamp where a bound exists.
func (p *SimulationParameters) Apply(fields ...ParamField) {
	for _, f := range fields {
		f.applyParams(p)
	}
}
