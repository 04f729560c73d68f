package domain

import "github.com/shopspring/decimal"

func init() {
	// The engine contract speaks bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// SimulationInput is the aggregate root of a plan: six holding collections,
// the top-level cash flows, and the scalar parameters. It is always fully
// populated; empty collections are valid and mean "no holdings of this kind".
//
// All mutation operations are total: an unknown kind or ID yields a sentinel
// error and leaves the aggregate untouched. Entries are addressed by their
// surrogate ID, never by position; collections stay ordered and removal
// compacts them.
type SimulationInput struct {
	SavingsAccounts    []AccountHolding `json:"savingsAccounts"`
	GrowthAccounts     []AccountHolding `json:"growthAccounts"`
	IraTradAccounts    []AccountHolding `json:"iraTradAccounts"`
	IraEspAccounts     []AccountHolding `json:"iraEspAccounts"`
	IraRothAccounts    []AccountHolding `json:"iraRothAccounts"`
	RealEstateHoldings []AccountHolding `json:"realEstateHoldings"`

	Incomes  []RangeFlow `json:"incomes"`
	Expenses []RangeFlow `json:"expenses"`

	Params SimulationParameters `json:"simulationParams"`
}

// NewSimulationInput returns an empty plan with default parameters. All
// collections are non-nil so the aggregate serializes as empty arrays.
func NewSimulationInput() SimulationInput {
	return SimulationInput{
		SavingsAccounts:    []AccountHolding{},
		GrowthAccounts:     []AccountHolding{},
		IraTradAccounts:    []AccountHolding{},
		IraEspAccounts:     []AccountHolding{},
		IraRothAccounts:    []AccountHolding{},
		RealEstateHoldings: []AccountHolding{},
		Incomes:            []RangeFlow{},
		Expenses:           []RangeFlow{},
		Params:             DefaultParameters(),
	}
}

// holdings returns the collection backing the given kind.
func (in *SimulationInput) holdings(kind AccountKind) (*[]AccountHolding, error) {
	switch kind {
	case KindSavings:
		return &in.SavingsAccounts, nil
	case KindGrowth:
		return &in.GrowthAccounts, nil
	case KindIRATraditional:
		return &in.IraTradAccounts, nil
	case KindIRAEmployer:
		return &in.IraEspAccounts, nil
	case KindIRARoth:
		return &in.IraRothAccounts, nil
	case KindRealEstate:
		return &in.RealEstateHoldings, nil
	default:
		return nil, ErrUnknownKind
	}
}

// flows returns the top-level flow collection for the given category.
func (in *SimulationInput) flows(category FlowCategory) (*[]RangeFlow, error) {
	switch category {
	case CategoryIncome:
		return &in.Incomes, nil
	case CategoryExpense:
		return &in.Expenses, nil
	default:
		return nil, ErrUnknownCategory
	}
}

// Holdings returns a copy of the collection for the given kind.
func (in *SimulationInput) Holdings(kind AccountKind) ([]AccountHolding, error) {
	col, err := in.holdings(kind)
	if err != nil {
		return nil, err
	}
	out := make([]AccountHolding, len(*col))
	for i, h := range *col {
		out[i] = h.Clone()
	}
	return out, nil
}

// Flows returns a copy of the flow collection for the given category.
func (in *SimulationInput) Flows(category FlowCategory) ([]RangeFlow, error) {
	col, err := in.flows(category)
	if err != nil {
		return nil, err
	}
	out := make([]RangeFlow, len(*col))
	copy(out, *col)
	return out, nil
}

// AddHolding appends a freshly defaulted holding to the kind's collection and
// returns it.
func (in *SimulationInput) AddHolding(kind AccountKind, id string) (AccountHolding, error) {
	col, err := in.holdings(kind)
	if err != nil {
		return AccountHolding{}, err
	}
	h := NewAccountHolding(id, kind, len(*col))
	*col = append(*col, h)
	return h.Clone(), nil
}

// HoldingByID returns a copy of the identified holding.
func (in *SimulationInput) HoldingByID(kind AccountKind, id string) (AccountHolding, error) {
	h, err := in.findHolding(kind, id)
	if err != nil {
		return AccountHolding{}, err
	}
	return h.Clone(), nil
}

func (in *SimulationInput) findHolding(kind AccountKind, id string) (*AccountHolding, error) {
	col, err := in.holdings(kind)
	if err != nil {
		return nil, err
	}
	for i := range *col {
		if (*col)[i].ID == id {
			return &(*col)[i], nil
		}
	}
	return nil, ErrHoldingNotFound
}

// UpdateHolding applies the field commands to the identified holding.
// Exactly one entry changes; every other entry is left as-is.
func (in *SimulationInput) UpdateHolding(kind AccountKind, id string, fields ...HoldingField) error {
	h, err := in.findHolding(kind, id)
	if err != nil {
		return err
	}
	return h.Apply(fields...)
}

// RemoveHolding deletes the identified holding; later entries shift down one
// position. The holding's contributions go with it.
func (in *SimulationInput) RemoveHolding(kind AccountKind, id string) error {
	col, err := in.holdings(kind)
	if err != nil {
		return err
	}
	for i := range *col {
		if (*col)[i].ID == id {
			*col = append((*col)[:i], (*col)[i+1:]...)
			return nil
		}
	}
	return ErrHoldingNotFound
}

// AddFlow appends a freshly defaulted flow to the incomes or expenses
// collection. The age interval defaults come from the current parameters.
func (in *SimulationInput) AddFlow(category FlowCategory, id string) (RangeFlow, error) {
	col, err := in.flows(category)
	if err != nil {
		return RangeFlow{}, err
	}
	f := NewRangeFlow(id, category, len(*col), in.Params)
	*col = append(*col, f)
	return f, nil
}

// UpdateFlow applies the field commands to the identified flow.
func (in *SimulationInput) UpdateFlow(category FlowCategory, id string, fields ...FlowField) error {
	col, err := in.flows(category)
	if err != nil {
		return err
	}
	for i := range *col {
		if (*col)[i].ID == id {
			return (*col)[i].Apply(fields...)
		}
	}
	return ErrFlowNotFound
}

// RemoveFlow deletes the identified flow; later entries shift down one
// position.
func (in *SimulationInput) RemoveFlow(category FlowCategory, id string) error {
	col, err := in.flows(category)
	if err != nil {
		return err
	}
	for i := range *col {
		if (*col)[i].ID == id {
			*col = append((*col)[:i], (*col)[i+1:]...)
			return nil
		}
	}
	return ErrFlowNotFound
}

// AddContribution appends a defaulted contribution flow to the identified
// holding.
func (in *SimulationInput) AddContribution(kind AccountKind, holdingID, id string) (RangeFlow, error) {
	h, err := in.findHolding(kind, holdingID)
	if err != nil {
		return RangeFlow{}, err
	}
	f := NewRangeFlow(id, CategoryContribution, len(h.Contributions), in.Params)
	h.Contributions = append(h.Contributions, f)
	return f, nil
}

// UpdateContribution applies the field commands to a contribution of the
// identified holding.
func (in *SimulationInput) UpdateContribution(kind AccountKind, holdingID, flowID string, fields ...FlowField) error {
	h, err := in.findHolding(kind, holdingID)
	if err != nil {
		return err
	}
	for i := range h.Contributions {
		if h.Contributions[i].ID == flowID {
			return h.Contributions[i].Apply(fields...)
		}
	}
	return ErrFlowNotFound
}

// RemoveContribution deletes a contribution from the identified holding.
func (in *SimulationInput) RemoveContribution(kind AccountKind, holdingID, flowID string) error {
	h, err := in.findHolding(kind, holdingID)
	if err != nil {
		return err
	}
	for i := range h.Contributions {
		if h.Contributions[i].ID == flowID {
			h.Contributions = append(h.Contributions[:i], h.Contributions[i+1:]...)
			return nil
		}
	}
	return ErrFlowNotFound
}

// SetParameters applies the parameter field commands.
func (in *SimulationInput) SetParameters(fields ...ParamField) {
	in.Params.Apply(fields...)
}

// Clone returns a deep copy of the aggregate. An in-flight submission
// snapshots the plan with Clone so later edits never leak into its payload.
func (in SimulationInput) Clone() SimulationInput {
	c := in
	c.SavingsAccounts = cloneHoldings(in.SavingsAccounts)
	c.GrowthAccounts = cloneHoldings(in.GrowthAccounts)
	c.IraTradAccounts = cloneHoldings(in.IraTradAccounts)
	c.IraEspAccounts = cloneHoldings(in.IraEspAccounts)
	c.IraRothAccounts = cloneHoldings(in.IraRothAccounts)
	c.RealEstateHoldings = cloneHoldings(in.RealEstateHoldings)
	c.Incomes = cloneFlows(in.Incomes)
	c.Expenses = cloneFlows(in.Expenses)
	return c
}

func cloneHoldings(src []AccountHolding) []AccountHolding {
	out := make([]AccountHolding, len(src))
	for i, h := range src {
		out[i] = h.Clone()
	}
	return out
}

func cloneFlows(src []RangeFlow) []RangeFlow {
	out := make([]RangeFlow, len(src))
	copy(out, src)
	return out
}
