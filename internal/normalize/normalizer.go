// Package normalize maps raw upstream payloads to canonical records.
// Normalization is pure and total: malformed entries are dropped and
// counted, never propagated as errors, and identical input always yields
// identical output.
package normalize

import (
	"time"

	"goldboard/internal/domain"
)

// Defaults substituted when the payload omits or mangles a field.
// These are explicit placeholders, not real quotes.
const (
	DefaultCurrentPrice = 2000.0
	DefaultConfidence   = 90.0
)

// Stats counts entries dropped during normalization. Diagnostic only; a
// non-zero count never interrupts the pipeline.
type Stats struct {
	DroppedHistoryPoints  int
	DroppedModels         int
	DroppedForecastPoints int
	DuplicateDates        int
}

// Total returns the overall number of dropped entries.
func (s Stats) Total() int {
	return s.DroppedHistoryPoints + s.DroppedModels + s.DroppedForecastPoints + s.DuplicateDates
}

// Payload normalizes a raw upstream document into canonical records.
func Payload(raw domain.RawPayload) (domain.MarketSnapshot, domain.PredictionSet, Stats) {
	var stats Stats

	snapshot := domain.MarketSnapshot{
		CurrentPrice: currentPrice(raw),
	}
	snapshot.History, stats = historySeries(raw, stats)

	preds := domain.PredictionSet{
		TodayByModel: map[string]float64{},
		Confidence:   confidence(raw),
	}
	preds.TodayByModel, stats = todayByModel(raw, stats)
	preds.WeekSeries, stats = weekSeries(raw, stats)

	return snapshot, preds, stats
}

// currentPrice resolves payload.current_price, defaulting when absent or
// non-finite.
func currentPrice(raw domain.RawPayload) float64 {
	v, ok := toNumber(raw["current_price"])
	if !ok || !isFinite(v) || v <= 0 {
		return DefaultCurrentPrice
	}
	return v
}

// historyEntries locates the historical series: top-level historical_data,
// else gold_price.data.
func historyEntries(raw domain.RawPayload) []any {
	if s := asSlice(raw["historical_data"]); s != nil {
		return s
	}
	if gp := asMap(raw["gold_price"]); gp != nil {
		return asSlice(gp["data"])
	}
	return nil
}

// historySeries builds the canonical history from whichever series the
// payload carries. Price resolution order is fixed: price, close, Close, c.
func historySeries(raw domain.RawPayload, stats Stats) ([]domain.PricePoint, Stats) {
	entries := historyEntries(raw)
	points := make([]domain.PricePoint, 0, len(entries))

	for _, e := range entries {
		m := asMap(e)
		if m == nil {
			stats.DroppedHistoryPoints++
			continue
		}
		date, ok := asString(m["date"])
		if !ok {
			stats.DroppedHistoryPoints++
			continue
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			stats.DroppedHistoryPoints++
			continue
		}
		price, ok := resolvePrice(m)
		if !ok {
			stats.DroppedHistoryPoints++
			continue
		}
		volume, _ := toNumber(m["volume"])
		points = append(points, domain.PricePoint{Date: date, Price: price, Volume: volume})
	}

	cleaned, dups := sortDedupeHistory(points)
	stats.DuplicateDates += dups
	return cleaned, stats
}

// resolvePrice applies the fixed field fallback chain.
func resolvePrice(m map[string]any) (float64, bool) {
	for _, key := range []string{"price", "close", "Close", "c"} {
		v, present := m[key]
		if !present || v == nil {
			// JSON null coalesces to the next candidate field.
			continue
		}
		f, ok := toNumber(v)
		if ok && isFinite(f) && f > 0 {
			return f, true
		}
		// A present non-null field with a bad value drops the entry;
		// the chain does not continue past it.
		return 0, false
	}
	return 0, false
}

// todayByModel extracts the first element of each model's forecast array.
func todayByModel(raw domain.RawPayload, stats Stats) (map[string]float64, Stats) {
	today := map[string]float64{}
	models := predictionModels(raw)
	for name, v := range models {
		arr := asSlice(v)
		if len(arr) == 0 {
			stats.DroppedModels++
			continue
		}
		f, ok := toNumber(arr[0])
		if !ok || !isFinite(f) {
			stats.DroppedModels++
			continue
		}
		today[name] = f
	}
	return today, stats
}

// weekSeries zips predictions.dates with the ensemble model array.
func weekSeries(raw domain.RawPayload, stats Stats) ([]domain.ForecastPoint, Stats) {
	preds := asMap(raw["predictions"])
	if preds == nil {
		return nil, stats
	}
	dates := asSlice(preds["dates"])
	ensemble := asSlice(predictionModels(raw)[domain.ModelEnsemble])

	n := len(dates)
	if len(ensemble) < n {
		n = len(ensemble)
	}

	var series []domain.ForecastPoint
	for i := 0; i < n; i++ {
		date, ok := asString(dates[i])
		if !ok {
			stats.DroppedForecastPoints++
			continue
		}
		price, ok := toNumber(ensemble[i])
		if !ok || !isFinite(price) {
			stats.DroppedForecastPoints++
			continue
		}
		series = append(series, domain.ForecastPoint{Date: date, Price: price})
	}
	return series, stats
}

// predictionModels returns predictions.models, or nil.
func predictionModels(raw domain.RawPayload) map[string]any {
	preds := asMap(raw["predictions"])
	if preds == nil {
		return nil
	}
	return asMap(preds["models"])
}

// confidence resolves confidence.ensemble.avg_confidence, defaulting and
// clamping into [0, 100].
func confidence(raw domain.RawPayload) float64 {
	c := DefaultConfidence
	if conf := asMap(raw["confidence"]); conf != nil {
		if ens := asMap(conf[domain.ModelEnsemble]); ens != nil {
			if v, ok := toNumber(ens["avg_confidence"]); ok && isFinite(v) {
				c = v
			}
		}
	}
	return ClampConfidence(c)
}

// ClampConfidence bounds a confidence value into [0, 100].
func ClampConfidence(c float64) float64 {
	if !isFinite(c) {
		return DefaultConfidence
	}
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Evaluation passes through the upstream daily evaluation block when all of
// its fields are present and numeric. Returns nil otherwise.
func Evaluation(raw domain.RawPayload) *domain.Evaluation {
	m := asMap(raw["evaluation"])
	if m == nil {
		return nil
	}
	date, ok := asString(m["date"])
	if !ok {
		return nil
	}
	pred, okPred := toNumber(m["yesterday_pred"])
	actual, okActual := toNumber(m["today_actual"])
	mae, okMAE := toNumber(m["mae"])
	mape, okMAPE := toNumber(m["mape"])
	if !okPred || !okActual || !okMAE || !okMAPE {
		return nil
	}
	return &domain.Evaluation{
		Date:          date,
		YesterdayPred: pred,
		TodayActual:   actual,
		MAE:           mae,
		MAPE:          mape,
	}
}
