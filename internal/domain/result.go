package domain

import "github.com/shopspring/decimal"

// SimulationResult is the engine's projection summary. It is produced
// externally and held read-only for display; the core never derives anything
// from it.
type SimulationResult struct {
	// PercentSuccess is the share of iterations, in [0,100], that did not
	// exhaust wealth before the terminal age.
	PercentSuccess      float64         `json:"percentSuccess"`
	AverageFinalBalance decimal.Decimal `json:"averageFinalBalance"`

	// Per projection year series.
	AverageResults []decimal.Decimal `json:"averageResults,omitempty"`
	Percentile10   []decimal.Decimal `json:"percentile10,omitempty"`
	Percentile25   []decimal.Decimal `json:"percentile25,omitempty"`
	Percentile50   []decimal.Decimal `json:"percentile50,omitempty"`
	Percentile75   []decimal.Decimal `json:"percentile75,omitempty"`
	Percentile90   []decimal.Decimal `json:"percentile90,omitempty"`

	// Results holds the raw per-iteration wealth trajectories, indexed
	// [iteration][year]. The engine may omit them for large runs.
	Results [][]decimal.Decimal `json:"results,omitempty"`
}
