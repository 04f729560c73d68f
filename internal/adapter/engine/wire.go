// Package engine is the HTTP gateway to the external Monte Carlo
// projection engine.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/planfolio/planfolio/internal/domain"
)

// The engine's request shape predates the surrogate-ID model: holdings are
// identified by display name and real-estate attributes are flattened onto
// the holding. The wire types below own that translation so the domain
// aggregate never has to.

type requestEnvelope struct {
	Input wireInput `json:"input"`
}

type wireInput struct {
	SavingsAccounts    []wireHolding `json:"savingsAccounts"`
	GrowthAccounts     []wireHolding `json:"growthAccounts"`
	IraTradAccounts    []wireHolding `json:"iraTradAccounts"`
	IraEspAccounts     []wireHolding `json:"iraEspAccounts"`
	IraRothAccounts    []wireHolding `json:"iraRothAccounts"`
	RealEstateHoldings []wireHolding `json:"realEstateHoldings"`

	Incomes  []wireFlow `json:"incomes"`
	Expenses []wireFlow `json:"expenses"`

	SavingsContributions map[string][]wireFlow `json:"savingsContributions"`
	GrowthContributions  map[string][]wireFlow `json:"growthContributions"`
	IraTradContributions map[string][]wireFlow `json:"iraTradContributions"`
	IraEspContributions  map[string][]wireFlow `json:"iraEspContributions"`
	IraRothContributions map[string][]wireFlow `json:"iraRothContributions"`

	Params wireParams `json:"simulationParams"`
}

type wireHolding struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Balance       decimal.Decimal  `json:"balance"`
	Returns       float64          `json:"returns"`
	StdDev        float64          `json:"stdDev"`
	TaxRate       float64          `json:"taxRate"`
	CostBasis     *decimal.Decimal `json:"costBasis,omitempty"`
	Liability     *decimal.Decimal `json:"liability,omitempty"`
	Withdrawn     *bool            `json:"withdrawn,omitempty"`
	Contributions []wireFlow       `json:"contributions"`
}

type wireFlow struct {
	StartAge         int             `json:"startAge"`
	EndAge           int             `json:"endAge"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	Name             string          `json:"name"`
	Activated        bool            `json:"activated"`
	LinkedRealEstate string          `json:"linkedRealEstate"`
}

type wireParams struct {
	CurrentAge          int     `json:"currentAge"`
	RetirementAge       int     `json:"retirementAge"`
	InflationRate       float64 `json:"inflationRate"`
	TaxRate             float64 `json:"taxRate"`
	NumberOfSimulations int     `json:"numberOfSimulations"`
}

type responseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// wireResult mirrors the engine's summary payload. PercentSuccess is a
// pointer so a missing field is a decode failure rather than a silent zero.
type wireResult struct {
	PercentSuccess      *float64              `json:"percentSuccess"`
	AverageFinalBalance decimal.Decimal       `json:"averageFinalBalance"`
	AverageResults      []decimal.Decimal     `json:"averageResults"`
	Percentile10        []decimal.Decimal     `json:"percentile10"`
	Percentile25        []decimal.Decimal     `json:"percentile25"`
	Percentile50        []decimal.Decimal     `json:"percentile50"`
	Percentile75        []decimal.Decimal     `json:"percentile75"`
	Percentile90        []decimal.Decimal     `json:"percentile90"`
	Results             [][]decimal.Decimal   `json:"results"`
}

// wireType maps an account kind to the engine's type discriminator.
func wireType(kind domain.AccountKind) string {
	switch kind {
	case domain.KindSavings:
		return "savings"
	case domain.KindGrowth:
		return "growth"
	case domain.KindIRATraditional:
		return "iraTrad"
	case domain.KindIRAEmployer:
		return "iraEsp"
	case domain.KindIRARoth:
		return "iraRoth"
	case domain.KindRealEstate:
		return "realEstate"
	default:
		return string(kind)
	}
}

// buildRequest converts the domain aggregate to the engine's request shape.
// Contribution maps are derived here, keyed by each holding's current name,
// so they can never reference a renamed or removed holding.
func buildRequest(input domain.SimulationInput) requestEnvelope {
	return requestEnvelope{Input: wireInput{
		SavingsAccounts:    wireHoldings(input.SavingsAccounts),
		GrowthAccounts:     wireHoldings(input.GrowthAccounts),
		IraTradAccounts:    wireHoldings(input.IraTradAccounts),
		IraEspAccounts:     wireHoldings(input.IraEspAccounts),
		IraRothAccounts:    wireHoldings(input.IraRothAccounts),
		RealEstateHoldings: wireHoldings(input.RealEstateHoldings),

		Incomes:  wireFlows(input.Incomes),
		Expenses: wireFlows(input.Expenses),

		SavingsContributions: contributionMap(input.SavingsAccounts),
		GrowthContributions:  contributionMap(input.GrowthAccounts),
		IraTradContributions: contributionMap(input.IraTradAccounts),
		IraEspContributions:  contributionMap(input.IraEspAccounts),
		IraRothContributions: contributionMap(input.IraRothAccounts),

		Params: wireParams{
			CurrentAge:          input.Params.CurrentAge,
			RetirementAge:       input.Params.RetirementAge,
			InflationRate:       input.Params.InflationRate,
			TaxRate:             input.Params.DefaultTaxRate,
			NumberOfSimulations: input.Params.Iterations,
		},
	}}
}

func wireHoldings(holdings []domain.AccountHolding) []wireHolding {
	out := make([]wireHolding, len(holdings))
	for i, h := range holdings {
		w := wireHolding{
			Name:          h.Name,
			Type:          wireType(h.Kind),
			Balance:       h.Balance,
			Returns:       h.ExpectedReturn,
			StdDev:        h.ReturnStdDev,
			TaxRate:       h.TaxRate,
			Contributions: wireFlows(h.Contributions),
		}
		if h.RealEstate != nil {
			costBasis := h.RealEstate.CostBasis
			liability := h.RealEstate.Liability
			withdrawn := h.RealEstate.Withdrawn
			w.CostBasis = &costBasis
			w.Liability = &liability
			w.Withdrawn = &withdrawn
		}
		out[i] = w
	}
	return out
}

func wireFlows(flows []domain.RangeFlow) []wireFlow {
	out := make([]wireFlow, len(flows))
	for i, f := range flows {
		out[i] = wireFlow{
			StartAge:         f.StartAge,
			EndAge:           f.EndAge,
			Amount:           f.Amount,
			Type:             string(f.Category),
			Name:             f.Name,
			Activated:        f.Active,
			LinkedRealEstate: f.LinkedHolding,
		}
	}
	return out
}

func contributionMap(holdings []domain.AccountHolding) map[string][]wireFlow {
	out := make(map[string][]wireFlow, len(holdings))
	for _, h := range holdings {
		out[h.Name] = wireFlows(h.Contributions)
	}
	return out
}

// decodeResult decodes the engine's data payload, failing loudly on a
// malformed or incomplete body.
func decodeResult(data json.RawMessage) (*domain.SimulationResult, error) {
	if len(data) == 0 {
		return nil, errors.New("engine response has no data")
	}

	var wr wireResult
	if err := json.Unmarshal(data, &wr); err != nil {
		return nil, fmt.Errorf("malformed engine result: %w", err)
	}
	if wr.PercentSuccess == nil {
		return nil, errors.New("engine result missing percentSuccess")
	}

	return &domain.SimulationResult{
		PercentSuccess:      *wr.PercentSuccess,
		AverageFinalBalance: wr.AverageFinalBalance,
		AverageResults:      wr.AverageResults,
		Percentile10:        wr.Percentile10,
		Percentile25:        wr.Percentile25,
		Percentile50:        wr.Percentile50,
		Percentile75:        wr.Percentile75,
		Percentile90:        wr.Percentile90,
		Results:             wr.Results,
	}, nil
}
