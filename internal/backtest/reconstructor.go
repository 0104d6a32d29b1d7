// Package backtest derives a paired (actual, predicted) series, either by
// passing through the upstream prediction_vs_actual pairing or by synthetic
// reconstruction over the recent price history.
package backtest

import (
	"math"
	"math/rand"

	"goldboard/internal/domain"
)

// SyntheticWindowDays bounds the synthetic reconstruction to the most
// recent section of the history.
const SyntheticWindowDays = 30

// syntheticNoise is the half-width of the uniform noise band applied to
// the one-day-lag baseline.
const syntheticNoise = 0.01

// Reconstruct builds the backtest series for a payload. When the payload
// carries an explicit prediction_vs_actual pairing it is mapped directly;
// otherwise the series is reconstructed synthetically from the snapshot
// history using rng. Real pairings always win over synthesis.
func Reconstruct(raw domain.RawPayload, snapshot domain.MarketSnapshot, rng *rand.Rand) domain.BacktestResult {
	if records := passThrough(raw); len(records) > 0 {
		return domain.BacktestResult{Records: records}
	}
	return Synthesize(snapshot.History, rng)
}

// passThrough maps the upstream prediction_vs_actual array to records,
// preserving order. Records missing a date or with a non-finite predicted
// value are dropped.
func passThrough(raw domain.RawPayload) []domain.BacktestRecord {
	entries, _ := raw["prediction_vs_actual"].([]any)
	var records []domain.BacktestRecord
	for _, e := range entries {
		m, _ := e.(map[string]any)
		if m == nil {
			continue
		}
		date, _ := m["date"].(string)
		if date == "" {
			continue
		}
		predicted, ok := number(m["predicted"])
		if !ok {
			continue
		}
		actual, ok := number(m["actual"])
		if !ok || actual == 0 {
			continue
		}
		records = append(records, newRecord(date, actual, predicted))
	}
	return records
}

// Synthesize reconstructs a backtest over the last SyntheticWindowDays of
// history. Each point's prediction is the previous day's price perturbed by
// uniform noise in [-1%, +1%]; the first point in the window has no prior
// baseline and is skipped. The result is always marked synthetic.
func Synthesize(history []domain.PricePoint, rng *rand.Rand) domain.BacktestResult {
	window := history
	if len(window) > SyntheticWindowDays {
		window = window[len(window)-SyntheticWindowDays:]
	}

	result := domain.BacktestResult{Synthetic: true}
	for i := 1; i < len(window); i++ {
		baseline := window[i-1].Price
		eps := (rng.Float64()*2 - 1) * syntheticNoise
		predicted := baseline * (1 + eps)
		result.Records = append(result.Records, newRecord(window[i].Date, window[i].Price, predicted))
	}
	return result
}

// newRecord fills the derived error fields.
func newRecord(date string, actual, predicted float64) domain.BacktestRecord {
	err := math.Abs(actual - predicted)
	return domain.BacktestRecord{
		Date:         date,
		Actual:       actual,
		Predicted:    predicted,
		Error:        err,
		ErrorPercent: err / actual * 100,
	}
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
