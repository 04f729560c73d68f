package domain

import "fmt"

// AccountKind identifies one of the six account categories a plan can hold.
type AccountKind string

const (
	KindSavings        AccountKind = "savings"
	KindGrowth         AccountKind = "growth"
	KindIRATraditional AccountKind = "ira-traditional"
	KindIRAEmployer    AccountKind = "ira-esp"
	KindIRARoth        AccountKind = "ira-roth"
	KindRealEstate     AccountKind = "real-estate"
)

// FlowCategory identifies what a range flow represents.
type FlowCategory string

const (
	CategoryIncome       FlowCategory = "income"
	CategoryExpense      FlowCategory = "expense"
	CategoryContribution FlowCategory = "contribution"
)

// AccountKinds returns all account kinds in their canonical order.
func AccountKinds() []AccountKind {
	return []AccountKind{
		KindSavings,
		KindGrowth,
		KindIRATraditional,
		KindIRAEmployer,
		KindIRARoth,
		KindRealEstate,
	}
}

// Label returns the human-readable name of the kind, used when
// synthesizing default holding names.
func (k AccountKind) Label() string {
	switch k {
	case KindSavings:
		return "savings"
	case KindGrowth:
		return "growth"
	case KindIRATraditional:
		return "traditional IRA"
	case KindIRAEmployer:
		return "employer plan"
	case KindIRARoth:
		return "Roth IRA"
	case KindRealEstate:
		return "real estate"
	default:
		return string(k)
	}
}

// ParseAccountKind parses a kind identifier.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case KindSavings, KindGrowth, KindIRATraditional, KindIRAEmployer, KindIRARoth, KindRealEstate:
		return AccountKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseFlowCategory parses a top-level flow category. Contributions are not
// a top-level collection; they live on the holding they fund.
func ParseFlowCategory(s string) (FlowCategory, error) {
	switch FlowCategory(s) {
	case CategoryIncome, CategoryExpense:
		return FlowCategory(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
