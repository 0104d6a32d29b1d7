// Package metrics computes rolling error statistics over a backtest series.
package metrics

import "goldboard/internal/domain"

// Placeholder figures exposed when the backtest series is empty. They are
// demo values, flagged as such, and never mixed with computed statistics.
const (
	PlaceholderMAE      = 25.5
	PlaceholderMAPE     = 0.75
	PlaceholderAccuracy = 99.25
)

// MAEAt returns the cumulative mean absolute error over records[0:k].
// k must be in [1, len(records)].
func MAEAt(records []domain.BacktestRecord, k int) float64 {
	sum := 0.0
	for _, r := range records[:k] {
		sum += r.Error
	}
	return sum / float64(k)
}

// MAPEAt returns the cumulative mean absolute percentage error over
// records[0:k]. k must be in [1, len(records)].
func MAPEAt(records []domain.BacktestRecord, k int) float64 {
	sum := 0.0
	for _, r := range records[:k] {
		sum += r.ErrorPercent
	}
	return sum / float64(k)
}

// Compute aggregates the series into the metrics exposed to the view: the
// cumulative MAE/MAPE at the latest record (k = series length) and an
// accuracy figure floored at zero. An empty series yields the fixed
// placeholder.
func Compute(records []domain.BacktestRecord) domain.AggregatedMetrics {
	if len(records) == 0 {
		return domain.AggregatedMetrics{
			MAE:         PlaceholderMAE,
			MAPE:        PlaceholderMAPE,
			Accuracy:    PlaceholderAccuracy,
			Placeholder: true,
		}
	}

	k := len(records)
	mape := MAPEAt(records, k)
	accuracy := 100 - mape
	if accuracy < 0 {
		accuracy = 0
	}

	return domain.AggregatedMetrics{
		MAE:      MAEAt(records, k),
		MAPE:     mape,
		Accuracy: accuracy,
	}
}
