// Package insights derives displayable market analysis from the current
// price and the per-model week forecasts: trend, volatility, key levels,
// risk and the week outlook shown in the dashboard header.
package insights

import (
	"math"

	"goldboard/internal/domain"
)

// riskFactors are the fixed contributing factors listed next to the risk
// label. Upstream publishes them as static strings.
var riskFactors = []string{"Market uncertainty", "Economic indicators", "Technical patterns"}

// Compute derives all insights. weekByModel maps model name to its 7-day
// forecast prices; the ensemble series drives trend and volatility, while
// key levels span every model.
func Compute(currentPrice float64, weekByModel map[string][]float64) domain.MarketInsights {
	ensemble := weekByModel[domain.ModelEnsemble]

	trend := computeTrend(currentPrice, ensemble)
	vol := computeVolatility(currentPrice, ensemble)

	out := domain.MarketInsights{
		Trend:      trend,
		Volatility: vol,
		KeyLevels:  computeKeyLevels(currentPrice, weekByModel),
		Risk:       computeRisk(vol),
	}
	out.WeekOutlook = computeWeekOutlook(trend, ensemble)
	return out
}

// computeTrend classifies the week-end change of the ensemble forecast.
func computeTrend(currentPrice float64, ensemble []float64) domain.Trend {
	if len(ensemble) == 0 || currentPrice <= 0 {
		return domain.Trend{Direction: domain.TrendUnknown, Class: "neutral"}
	}

	change := (ensemble[len(ensemble)-1] - currentPrice) / currentPrice * 100

	var direction, class string
	switch {
	case change > 2:
		direction, class = domain.TrendStronglyBullish, "bullish"
	case change > 0.5:
		direction, class = domain.TrendBullish, "bullish"
	case change < -2:
		direction, class = domain.TrendStronglyBearish, "bearish"
	case change < -0.5:
		direction, class = domain.TrendBearish, "bearish"
	default:
		direction, class = domain.TrendNeutral, "neutral"
	}

	return domain.Trend{Direction: direction, Class: class, ChangePercent: change}
}

// computeVolatility averages the absolute day-over-day change of the
// ensemble forecast, anchored at the current price for the first step.
func computeVolatility(currentPrice float64, ensemble []float64) domain.Volatility {
	if len(ensemble) == 0 || currentPrice <= 0 {
		return domain.Volatility{Level: domain.VolatilityUnknown}
	}

	prev := currentPrice
	sum := 0.0
	for _, p := range ensemble {
		sum += math.Abs((p - prev) / prev)
		prev = p
	}
	value := sum / float64(len(ensemble)) * 100

	level := domain.VolatilityLow
	switch {
	case value > 3:
		level = domain.VolatilityHigh
	case value > 1.5:
		level = domain.VolatilityMedium
	}

	return domain.Volatility{Level: level, Value: value}
}

// computeKeyLevels spans resistance/support over every model's forecast,
// falling back to ±2% around the current price when no forecasts exist.
func computeKeyLevels(currentPrice float64, weekByModel map[string][]float64) domain.KeyLevels {
	levels := domain.KeyLevels{}
	first := true
	for _, series := range weekByModel {
		for _, p := range series {
			if first {
				levels.Support, levels.Resistance = p, p
				first = false
				continue
			}
			if p < levels.Support {
				levels.Support = p
			}
			if p > levels.Resistance {
				levels.Resistance = p
			}
		}
	}
	if first {
		levels.Support = currentPrice * 0.98
		levels.Resistance = currentPrice * 1.02
	}
	return levels
}

// computeRisk maps volatility to a coarse risk label.
func computeRisk(vol domain.Volatility) domain.RiskAssessment {
	level := "Low"
	if vol.Value > 1.5 {
		level = "Medium"
	}
	return domain.RiskAssessment{Level: level, Factors: riskFactors}
}

// computeWeekOutlook summarizes the ensemble week series.
func computeWeekOutlook(trend domain.Trend, ensemble []float64) domain.WeekOutlook {
	out := domain.WeekOutlook{Trend: trend.Direction}
	if len(ensemble) == 0 {
		return out
	}
	out.High, out.Low = ensemble[0], ensemble[0]
	for _, p := range ensemble {
		if p > out.High {
			out.High = p
		}
		if p < out.Low {
			out.Low = p
		}
	}
	out.EndPrice = ensemble[len(ensemble)-1]
	return out
}

// WeekSeriesByModel adapts a PredictionSet into the per-model price series
// Compute expects. Only the ensemble week series is carried in canonical
// form; today's per-model values contribute single-point series so key
// levels still span every model.
func WeekSeriesByModel(preds domain.PredictionSet) map[string][]float64 {
	byModel := make(map[string][]float64, len(preds.TodayByModel)+1)
	for model, price := range preds.TodayByModel {
		byModel[model] = []float64{price}
	}
	if len(preds.WeekSeries) > 0 {
		series := make([]float64, len(preds.WeekSeries))
		for i, fp := range preds.WeekSeries {
			series[i] = fp.Price
		}
		byModel[domain.ModelEnsemble] = series
	}
	return byModel
}
