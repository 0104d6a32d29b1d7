package domain

// AggregatedMetrics are rolling error statistics over the backtest series.
// Derived state: recomputed on every update, never persisted.
type AggregatedMetrics struct {
	MAE      float64 // mean absolute error over the full current series
	MAPE     float64 // mean absolute percentage error over the full current series
	Accuracy float64 // max(0, 100 - mean errorPercent)

	// Placeholder is true when the backtest series was empty and the values
	// are fixed demo figures rather than computed statistics.
	Placeholder bool
}
