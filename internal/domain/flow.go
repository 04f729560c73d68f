package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RangeFlow is a cash flow or contribution active over an inclusive age
// interval. Amounts are signed by category convention; startAge <= endAge is
// expected but deliberately not enforced here (the engine owns correctness
// checks on age ranges).
type RangeFlow struct {
	ID       string          `json:"id"`
	Category FlowCategory    `json:"category"`
	Name     string          `json:"name"`
	StartAge int             `json:"startAge"`
	EndAge   int             `json:"endAge"`
	Amount   decimal.Decimal `json:"amount"`
	Active   bool            `json:"active"`

	// LinkedHolding references a real-estate holding by ID when the flow
	// models a property transaction.
	LinkedHolding string `json:"linkedHolding,omitempty"`
}

// NewRangeFlow builds a flow with synthesized defaults. The age interval is
// seeded from the simulation parameters current at creation time.
func NewRangeFlow(id string, category FlowCategory, position int, params SimulationParameters) RangeFlow {
	return RangeFlow{
		ID:       id,
		Category: category,
		Name:     fmt.Sprintf("New %s %d", category, position+1),
		StartAge: params.CurrentAge,
		EndAge:   params.RetirementAge,
		Amount:   decimal.Zero,
		Active:   true,
	}
}

// Apply runs every field command against the flow. All-or-nothing, like
// AccountHolding.Apply.
func (f *RangeFlow) Apply(fields ...FlowField) error {
	next := *f
	for _, fld := range fields {
		if err := fld.applyFlow(&next); err != nil {
			return err
		}
	}
	*f = next
	return nil
}
