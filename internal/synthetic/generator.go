// Package synthetic generates a complete demo dataset when every upstream
// source fails. Generated figures are placeholders and are always labeled
// as such through the synthetic provenance flag; they must never be
// presented as real quotes or verified model output.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"goldboard/internal/domain"
	"goldboard/internal/normalize"
)

// HistoryDays is how far back the generated history reaches. The series
// always contains HistoryDays+1 points: HistoryDays past days plus today.
const HistoryDays = 90

// basePrice anchors the generated random walk. Same placeholder level the
// normalizer substitutes for a missing current price.
const basePrice = normalize.DefaultCurrentPrice

// baseVolatility is the daily volatility of the generated walk and the
// per-model forecast noise, as a fraction.
const baseVolatility = 0.02

// ModelAccuracies are the published per-model accuracy percentages. They
// are fixed demo constants, not measured figures.
var ModelAccuracies = map[string]float64{
	domain.ModelBiGRU:       87.5,
	domain.ModelTCN:         85.2,
	domain.ModelTransformer: 89.1,
	domain.ModelEnsemble:    91.8,
}

// Snapshot generates a HistoryDays+1 point random-walk history ending at
// now's date. CurrentPrice equals the last generated point.
func Snapshot(rng *rand.Rand, now time.Time) domain.MarketSnapshot {
	history := make([]domain.PricePoint, 0, HistoryDays+1)

	price := basePrice
	for i := HistoryDays; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		price *= 1 + (rng.Float64()*2-1)*baseVolatility/2
		history = append(history, domain.PricePoint{
			Date:   day.Format(domain.DateLayout),
			Price:  round2(price),
			Volume: float64(50000 + rng.Intn(150000)),
		})
	}

	return domain.MarketSnapshot{
		CurrentPrice: history[len(history)-1].Price,
		History:      history,
	}
}

// Predictions generates per-model week forecasts in each model's published
// character and an ensemble-derived canonical prediction set.
func Predictions(rng *rand.Rand, now time.Time, currentPrice float64) domain.PredictionSet {
	byModel := forecastsByModel(rng, currentPrice)

	today := make(map[string]float64, len(byModel))
	for model, series := range byModel {
		today[model] = series[0]
	}

	week := make([]domain.ForecastPoint, domain.ForecastHorizonDays)
	for i := 0; i < domain.ForecastHorizonDays; i++ {
		week[i] = domain.ForecastPoint{
			Date:  now.AddDate(0, 0, i+1).Format(domain.DateLayout),
			Price: byModel[domain.ModelEnsemble][i],
		}
	}

	return domain.PredictionSet{
		TodayByModel: today,
		WeekSeries:   week,
		Confidence:   normalize.ClampConfidence(avgConfidence(domain.ModelEnsemble)),
	}
}

// forecastsByModel simulates each model's week forecast. The shapes follow
// the upstream simulator: bi_gru trends gently, tcn chases momentum,
// transformer follows a longer pattern, ensemble averages with a small
// adjustment.
func forecastsByModel(rng *rand.Rand, currentPrice float64) map[string][]float64 {
	horizon := domain.ForecastHorizonDays

	biGRU := make([]float64, horizon)
	price := currentPrice
	for day := 0; day < horizon; day++ {
		trend := math.Sin(float64(day)*0.1) * 0.005
		price *= 1 + trend + rng.NormFloat64()*baseVolatility*0.8
		biGRU[day] = round2(price)
	}

	tcn := make([]float64, horizon)
	price = currentPrice
	for day := 0; day < horizon; day++ {
		price *= 1 + rng.NormFloat64()*baseVolatility*1.1
		tcn[day] = round2(price)
	}

	transformer := make([]float64, horizon)
	price = currentPrice
	for day := 0; day < horizon; day++ {
		pattern := math.Cos(float64(day)*0.2) * 0.003
		price *= 1 + pattern + rng.NormFloat64()*baseVolatility*0.9
		transformer[day] = round2(price)
	}

	ensemble := make([]float64, horizon)
	for day := 0; day < horizon; day++ {
		avg := (biGRU[day] + tcn[day] + transformer[day]) / 3
		ensemble[day] = round2(avg * (1 + rng.NormFloat64()*baseVolatility*0.5))
	}

	return map[string][]float64{
		domain.ModelBiGRU:       biGRU,
		domain.ModelTCN:         tcn,
		domain.ModelTransformer: transformer,
		domain.ModelEnsemble:    ensemble,
	}
}

// avgConfidence averages the time-decayed confidence of a model over the
// horizon, mirroring how upstream reports avg_confidence.
func avgConfidence(model string) float64 {
	base, ok := ModelAccuracies[model]
	if !ok {
		base = 85.0
	}
	sum := 0.0
	for i := 0; i < domain.ForecastHorizonDays; i++ {
		sum += base * math.Pow(0.95, float64(i))
	}
	return sum / domain.ForecastHorizonDays
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
