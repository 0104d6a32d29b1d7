package domain

// Model identifiers published by the upstream forecast pipeline.
const (
	ModelBiGRU       = "bi_gru"
	ModelTCN         = "tcn"
	ModelTransformer = "transformer"
	ModelEnsemble    = "ensemble"
)

// ForecastHorizonDays is the upstream forecast horizon.
const ForecastHorizonDays = 7

// ForecastPoint is one day of the week-ahead forecast.
type ForecastPoint struct {
	Date  string
	Price float64
}

// PredictionSet holds today's per-model predictions and the week series.
type PredictionSet struct {
	TodayByModel map[string]float64 // model name -> tomorrow's predicted price
	WeekSeries   []ForecastPoint    // ensemble forecast, ForecastHorizonDays long when present
	Confidence   float64            // ensemble average confidence, clamped to [0,100]
}

// Clone returns a deep copy of the prediction set.
func (p *PredictionSet) Clone() PredictionSet {
	out := PredictionSet{Confidence: p.Confidence}
	if p.TodayByModel != nil {
		out.TodayByModel = make(map[string]float64, len(p.TodayByModel))
		for k, v := range p.TodayByModel {
			out.TodayByModel[k] = v
		}
	}
	if len(p.WeekSeries) > 0 {
		out.WeekSeries = make([]ForecastPoint, len(p.WeekSeries))
		copy(out.WeekSeries, p.WeekSeries)
	}
	return out
}
