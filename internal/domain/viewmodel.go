package domain

import "time"

// ViewModel is the normalized in-memory state the rendering layer consumes.
// Owned exclusively by the viewmodel store; mutated only by the pipeline and
// the refresh scheduler; discarded when the session ends.
type ViewModel struct {
	Snapshot    MarketSnapshot
	Predictions PredictionSet
	Backtest    BacktestResult
	Metrics     AggregatedMetrics
	Insights    MarketInsights
	Evaluation  *Evaluation // nil when upstream supplied none

	Source      SourceName // provenance of the initial load
	Synthetic   bool       // entire view model generated after total source failure
	LoadedAt    time.Time
	RefreshedAt time.Time
	RefreshTick int // number of simulated refresh ticks applied
}

// Clone returns a deep copy for readers.
func (v *ViewModel) Clone() ViewModel {
	out := *v
	out.Snapshot = v.Snapshot.Clone()
	out.Predictions = v.Predictions.Clone()
	out.Backtest = v.Backtest.Clone()
	if v.Evaluation != nil {
		ev := *v.Evaluation
		out.Evaluation = &ev
	}
	if v.Insights.Risk.Factors != nil {
		out.Insights.Risk.Factors = append([]string(nil), v.Insights.Risk.Factors...)
	}
	return out
}
