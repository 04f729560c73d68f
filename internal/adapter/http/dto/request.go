package dto

import (
	"github.com/shopspring/decimal"

	"github.com/planfolio/planfolio/internal/domain"
)

// Patch requests use pointer fields so "absent" and "zero" stay distinct: a
// body that omits balance leaves the balance alone, a body with balance 0
// zeroes it. A field that fails to decode is a request error, never a silent
// default.

// UpdateParamsRequest is a partial update of the simulation parameters.
type UpdateParamsRequest struct {
	CurrentAge     *int     `json:"currentAge"`
	RetirementAge  *int     `json:"retirementAge"`
	InflationRate  *float64 `json:"inflationRate"`
	DefaultTaxRate *float64 `json:"defaultTaxRate"`
	Iterations     *int     `json:"iterationCount"`
}

// Fields converts the present fields to domain commands.
func (r *UpdateParamsRequest) Fields() []domain.ParamField {
	var fields []domain.ParamField
	if r.CurrentAge != nil {
		fields = append(fields, domain.ParamCurrentAge(*r.CurrentAge))
	}
	if r.RetirementAge != nil {
		fields = append(fields, domain.ParamRetirementAge(*r.RetirementAge))
	}
	if r.InflationRate != nil {
		fields = append(fields, domain.ParamInflationRate(*r.InflationRate))
	}
	if r.DefaultTaxRate != nil {
		fields = append(fields, domain.ParamDefaultTaxRate(*r.DefaultTaxRate))
	}
	if r.Iterations != nil {
		fields = append(fields, domain.ParamIterations(*r.Iterations))
	}
	return fields
}

// UpdateHoldingRequest is a partial update of one holding.
type UpdateHoldingRequest struct {
	Name           *string          `json:"name"`
	Balance        *decimal.Decimal `json:"balance"`
	ExpectedReturn *float64         `json:"expectedReturn"`
	ReturnStdDev   *float64         `json:"returnStdDev"`
	TaxRate        *float64         `json:"taxRate"`
	CostBasis      *decimal.Decimal `json:"costBasis"`
	Liability      *decimal.Decimal `json:"liability"`
	Withdrawn      *bool            `json:"withdrawn"`
}

// Fields converts the present fields to domain commands.
func (r *UpdateHoldingRequest) Fields() []domain.HoldingField {
	var fields []domain.HoldingField
	if r.Name != nil {
		fields = append(fields, domain.HoldingName(*r.Name))
	}
	if r.Balance != nil {
		fields = append(fields, domain.HoldingBalance(*r.Balance))
	}
	if r.ExpectedReturn != nil {
		fields = append(fields, domain.HoldingExpectedReturn(*r.ExpectedReturn))
	}
	if r.ReturnStdDev != nil {
		fields = append(fields, domain.HoldingReturnStdDev(*r.ReturnStdDev))
	}
	if r.TaxRate != nil {
		fields = append(fields, domain.HoldingTaxRate(*r.TaxRate))
	}
	if r.CostBasis != nil {
		fields = append(fields, domain.HoldingCostBasis(*r.CostBasis))
	}
	if r.Liability != nil {
		fields = append(fields, domain.HoldingLiability(*r.Liability))
	}
	if r.Withdrawn != nil {
		fields = append(fields, domain.HoldingWithdrawn(*r.Withdrawn))
	}
	return fields
}

// UpdateFlowRequest is a partial update of one flow or contribution.
type UpdateFlowRequest struct {
	Name          *string          `json:"name"`
	StartAge      *int             `json:"startAge"`
	EndAge        *int             `json:"endAge"`
	Amount        *decimal.Decimal `json:"amount"`
	Active        *bool            `json:"active"`
	LinkedHolding *string          `json:"linkedHolding"`
}

// Fields converts the present fields to domain commands.
func (r *UpdateFlowRequest) Fields() []domain.FlowField {
	var fields []domain.FlowField
	if r.Name != nil {
		fields = append(fields, domain.FlowName(*r.Name))
	}
	if r.StartAge != nil {
		fields = append(fields, domain.FlowStartAge(*r.StartAge))
	}
	if r.EndAge != nil {
		fields = append(fields, domain.FlowEndAge(*r.EndAge))
	}
	if r.Amount != nil {
		fields = append(fields, domain.FlowAmount(*r.Amount))
	}
	if r.Active != nil {
		fields = append(fields, domain.FlowActive(*r.Active))
	}
	if r.LinkedHolding != nil {
		fields = append(fields, domain.FlowLinkedHolding(*r.LinkedHolding))
	}
	return fields
}
