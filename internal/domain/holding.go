package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default return profile applied to every freshly created holding.
const (
	DefaultExpectedReturn = 0.05
	DefaultReturnStdDev   = 0.10
)

// AccountHolding is one financial account or property in the plan.
type AccountHolding struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	ExpectedReturn float64         `json:"expectedReturn"`
	ReturnStdDev   float64         `json:"returnStdDev"`
	TaxRate        float64         `json:"taxRate"`

	// RealEstate is populated only for KindRealEstate holdings.
	RealEstate *RealEstateDetails `json:"realEstate,omitempty"`

	// Contributions are scheduled future deposits into this account. They
	// are owned by the holding: removing the holding removes them too.
	Contributions []RangeFlow `json:"contributions"`
}

// RealEstateDetails carries the attributes that exist only for property
// holdings.
type RealEstateDetails struct {
	CostBasis decimal.Decimal `json:"costBasis"`
	Liability decimal.Decimal `json:"liability"`
	Withdrawn bool            `json:"withdrawn"`
}

// NewAccountHolding builds a holding with synthesized defaults. position is
// the zero-based slot the holding will occupy in its collection; it only
// feeds the generated display name.
func NewAccountHolding(id string, kind AccountKind, position int) AccountHolding {
	h := AccountHolding{
		ID:             id,
		Name:           fmt.Sprintf("New %s %d", kind.Label(), position+1),
		Kind:           kind,
		Balance:        decimal.Zero,
		ExpectedReturn: DefaultExpectedReturn,
		ReturnStdDev:   DefaultReturnStdDev,
		TaxRate:        0,
		Contributions:  []RangeFlow{},
	}
	if kind == KindRealEstate {
		h.RealEstate = &RealEstateDetails{
			CostBasis: decimal.Zero,
			Liability: decimal.Zero,
			Withdrawn: false,
		}
	}
	return h
}

// Clone returns a deep copy of the holding.
func (h AccountHolding) Clone() AccountHolding {
	c := h
	if h.RealEstate != nil {
		re := *h.RealEstate
		c.RealEstate = &re
	}
	c.Contributions = make([]RangeFlow, len(h.Contributions))
	copy(c.Contributions, h.Contributions)
	return c
}

// Apply runs every field command against the holding. Either all commands
// apply or none do: the holding is left untouched when any command is
// rejected.
func (h *AccountHolding) Apply(fields ...HoldingField) error {
	next := h.Clone()
	for _, f := range fields {
		if err := f.applyHolding(&next); err != nil {
			return err
		}
	}
	*h = next
	return nil
}
