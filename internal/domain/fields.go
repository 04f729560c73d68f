package domain

import "github.com/shopspring/decimal"

// HoldingField is one typed field update for an AccountHolding. The set of
// implementations is closed: every legal field/value pairing has exactly one
// command type, so an ill-typed update cannot be expressed.
type HoldingField interface {
	applyHolding(h *AccountHolding) error
}

type HoldingName string

func (v HoldingName) applyHolding(h *AccountHolding) error {
	h.Name = string(v)
	return nil
}

type HoldingBalance decimal.Decimal

func (v HoldingBalance) applyHolding(h *AccountHolding) error {
	h.Balance = decimal.Decimal(v)
	return nil
}

type HoldingExpectedReturn float64

func (v HoldingExpectedReturn) applyHolding(h *AccountHolding) error {
	h.ExpectedReturn = float64(v)
	return nil
}

type HoldingReturnStdDev float64

func (v HoldingReturnStdDev) applyHolding(h *AccountHolding) error {
	h.ReturnStdDev = float64(v)
	return nil
}

type HoldingTaxRate float64

func (v HoldingTaxRate) applyHolding(h *AccountHolding) error {
	h.TaxRate = float64(v)
	return nil
}

// Real-estate-only commands. Applying one to a holding of any other kind is
// rejected with ErrFieldNotApplicable.

type HoldingCostBasis decimal.Decimal

func (v HoldingCostBasis) applyHolding(h *AccountHolding) error {
	if h.RealEstate == nil {
		return ErrFieldNotApplicable
	}
	h.RealEstate.CostBasis = decimal.Decimal(v)
	return nil
}

type HoldingLiability decimal.Decimal

func (v HoldingLiability) applyHolding(h *AccountHolding) error {
	if h.RealEstate == nil {
		return ErrFieldNotApplicable
	}
	h.RealEstate.Liability = decimal.Decimal(v)
	return nil
}

type HoldingWithdrawn bool

func (v HoldingWithdrawn) applyHolding(h *AccountHolding) error {
	if h.RealEstate == nil {
		return ErrFieldNotApplicable
	}
	h.RealEstate.Withdrawn = bool(v)
	return nil
}

// FlowField is one typed field update for a RangeFlow.
type FlowField interface {
	applyFlow(f *RangeFlow) error
}

type FlowName string

func (v FlowName) applyFlow(f *RangeFlow) error {
	f.Name = string(v)
	return nil
}

type FlowStartAge int

func (v FlowStartAge) applyFlow(f *RangeFlow) error {
	f.StartAge = int(v)
	return nil
}

type FlowEndAge int

func (v FlowEndAge) applyFlow(f *RangeFlow) error {
	f.EndAge = int(v)
	return nil
}

type FlowAmount decimal.Decimal

func (v FlowAmount) applyFlow(f *RangeFlow) error {
	f.Amount = decimal.Decimal(v)
	return nil
}

type FlowActive bool

func (v FlowActive) applyFlow(f *RangeFlow) error {
	f.Active = bool(v)
	return nil
}

type FlowLinkedHolding string

func (v FlowLinkedHolding) applyFlow(f *RangeFlow) error {
	f.LinkedHolding = string(v)
	return nil
}

// ParamField is one typed field update for SimulationParameters.
type ParamField interface {
	applyParams(p *SimulationParameters)
}

type ParamCurrentAge int

func (v ParamCurrentAge) applyParams(p *SimulationParameters) {
	p.CurrentAge = int(v)
}

type ParamRetirementAge int

func (v ParamRetirementAge) applyParams(p *SimulationParameters) {
	p.RetirementAge = int(v)
}

type ParamInflationRate float64

func (v ParamInflationRate) applyParams(p *SimulationParameters) {
	p.InflationRate = float64(v)
}

type ParamDefaultTaxRate float64

func (v ParamDefaultTaxRate) applyParams(p *SimulationParameters) {
	p.DefaultTaxRate = float64(v)
}

// ParamIterations clamps to [1, MaxIterations].
type ParamIterations int

func (v ParamIterations) applyParams(p *SimulationParameters) {
	n := int(v)
	if n < 1 {
		n = 1
	}
	if n > MaxIterations {
		n = MaxIterations
	}
	p.Iterations = n
}
