package domain

// Trend direction labels derived from the ensemble week forecast.
const (
	TrendStronglyBullish = "Strongly Bullish"
	TrendBullish         = "Bullish"
	TrendNeutral         = "Neutral"
	TrendBearish         = "Bearish"
	TrendStronglyBearish = "Strongly Bearish"
	TrendUnknown         = "Unknown"
)

// Volatility level labels.
const (
	VolatilityHigh    = "High"
	VolatilityMedium  = "Medium"
	VolatilityLow     = "Low"
	VolatilityUnknown = "Unknown"
)

// Trend describes the expected direction over the forecast horizon.
type Trend struct {
	Direction     string  // one of the Trend* labels
	Class         string  // bullish, bearish, neutral (renderer CSS class)
	ChangePercent float64 // week-end vs current, percent
}

// Volatility describes expected day-to-day movement of the forecast.
type Volatility struct {
	Level string
	Value float64 // mean absolute daily change, percent
}

// KeyLevels are the support/resistance bounds across all model forecasts.
type KeyLevels struct {
	Support    float64
	Resistance float64
}

// RiskAssessment is a coarse risk label with contributing factors.
type RiskAssessment struct {
	Level   string
	Factors []string
}

// WeekOutlook summarizes the ensemble week forecast for the dashboard header.
type WeekOutlook struct {
	High     float64
	Low      float64
	EndPrice float64
	Trend    string
}

// MarketInsights aggregates derived market analysis for the renderer.
type MarketInsights struct {
	Trend       Trend
	Volatility  Volatility
	KeyLevels   KeyLevels
	Risk        RiskAssessment
	WeekOutlook WeekOutlook
}

// Evaluation is the upstream daily check of yesterday's ensemble prediction
// against today's actual. Passed through verbatim, never recomputed here.
type Evaluation struct {
	Date          string
	YesterdayPred float64
	TodayActual   float64
	MAE           float64
	MAPE          float64
}
