// Package reporting renders the current view model as human-readable
// artifacts: a markdown summary, a CSV backtest export and a one-line
// terminal brief.
package reporting

import (
	"time"

	"goldboard/internal/domain"
)

// Report is the render-ready projection of a view model.
type Report struct {
	GeneratedAt time.Time

	CurrentPrice float64
	DataPoints   int
	Source       domain.SourceName
	Synthetic    bool

	TodayByModel map[string]float64
	Confidence   float64
	Insights     domain.MarketInsights
	Metrics      domain.AggregatedMetrics
	Backtest     domain.BacktestResult
	Evaluation   *domain.Evaluation

	// Accuracies are the published per-model accuracy placeholders.
	Accuracies map[string]float64
}

// FromViewModel projects a view model into a Report.
func FromViewModel(vm domain.ViewModel, accuracies map[string]float64, now time.Time) *Report {
	return &Report{
		GeneratedAt:  now,
		CurrentPrice: vm.Snapshot.CurrentPrice,
		DataPoints:   len(vm.Snapshot.History),
		Source:       vm.Source,
		Synthetic:    vm.Synthetic,
		TodayByModel: vm.Predictions.TodayByModel,
		Confidence:   vm.Predictions.Confidence,
		Insights:     vm.Insights,
		Metrics:      vm.Metrics,
		Backtest:     vm.Backtest,
		Evaluation:   vm.Evaluation,
		Accuracies:   accuracies,
	}
}
