package server

import (
	"goldboard/internal/domain"
	"goldboard/internal/viewmodel"
)

// Response shapes keyed by the stable identifiers the dashboard expects.

type pricePointDTO struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume,omitempty"`
}

type forecastPointDTO struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type predictionsDTO struct {
	TodayByModel map[string]float64 `json:"today_by_model"`
	WeekSeries   []forecastPointDTO `json:"week_series"`
	Confidence   float64            `json:"confidence"`
}

type backtestRecordDTO struct {
	Date         string  `json:"date"`
	Actual       float64 `json:"actual"`
	Predicted    float64 `json:"predicted"`
	Error        float64 `json:"error"`
	ErrorPercent float64 `json:"error_percent"`
}

type metricsDTO struct {
	MAE         float64 `json:"mae"`
	MAPE        float64 `json:"mape"`
	Accuracy    float64 `json:"accuracy"`
	Placeholder bool    `json:"placeholder"`
}

type weekOutlookDTO struct {
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	EndPrice float64 `json:"end_price"`
	Trend    string  `json:"trend"`
}

type insightsDTO struct {
	TrendDirection string         `json:"trend_direction"`
	TrendClass     string         `json:"trend_class"`
	ChangePercent  float64        `json:"change_percent"`
	Volatility     string         `json:"volatility"`
	Support        float64        `json:"support"`
	Resistance     float64        `json:"resistance"`
	RiskLevel      string         `json:"risk_level"`
	RiskFactors    []string       `json:"risk_factors"`
	WeekOutlook    weekOutlookDTO `json:"week_outlook"`
}

type viewModelDTO struct {
	CurrentPrice float64             `json:"current_price"`
	History      []pricePointDTO     `json:"historical_data"`
	Predictions  predictionsDTO      `json:"predictions"`
	Backtest     []backtestRecordDTO `json:"prediction_vs_actual"`
	Synthetic    bool                `json:"synthetic"`
	Metrics      metricsDTO          `json:"metrics"`
	Insights     insightsDTO         `json:"insights"`
	Source       string              `json:"source"`
	RefreshTick  int                 `json:"refresh_tick"`
	LastUpdated  string              `json:"last_updated"`
}

type provenanceDTO struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Outcome   string `json:"outcome"`
	Detail    string `json:"detail,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type performanceEntryDTO struct {
	Date         string             `json:"date"`
	Timestamp    string             `json:"timestamp"`
	CurrentPrice float64            `json:"current_price"`
	Predictions  map[string]float64 `json:"predictions"`
	Confidence   float64            `json:"confidence"`
}

func toPredictionsDTO(p domain.PredictionSet) predictionsDTO {
	week := make([]forecastPointDTO, len(p.WeekSeries))
	for i, fp := range p.WeekSeries {
		week[i] = forecastPointDTO{Date: fp.Date, Price: fp.Price}
	}
	return predictionsDTO{
		TodayByModel: p.TodayByModel,
		WeekSeries:   week,
		Confidence:   p.Confidence,
	}
}

func toMetricsDTO(m domain.AggregatedMetrics) metricsDTO {
	return metricsDTO{MAE: m.MAE, MAPE: m.MAPE, Accuracy: m.Accuracy, Placeholder: m.Placeholder}
}

func toInsightsDTO(in domain.MarketInsights) insightsDTO {
	return insightsDTO{
		TrendDirection: in.Trend.Direction,
		TrendClass:     in.Trend.Class,
		ChangePercent:  in.Trend.ChangePercent,
		Volatility:     in.Volatility.Level,
		Support:        in.KeyLevels.Support,
		Resistance:     in.KeyLevels.Resistance,
		RiskLevel:      in.Risk.Level,
		RiskFactors:    in.Risk.Factors,
		WeekOutlook: weekOutlookDTO{
			High:     in.WeekOutlook.High,
			Low:      in.WeekOutlook.Low,
			EndPrice: in.WeekOutlook.EndPrice,
			Trend:    in.WeekOutlook.Trend,
		},
	}
}

func toViewModelDTO(vm domain.ViewModel) viewModelDTO {
	history := make([]pricePointDTO, len(vm.Snapshot.History))
	for i, p := range vm.Snapshot.History {
		history[i] = pricePointDTO{Date: p.Date, Price: p.Price, Volume: p.Volume}
	}
	backtest := make([]backtestRecordDTO, len(vm.Backtest.Records))
	for i, r := range vm.Backtest.Records {
		backtest[i] = backtestRecordDTO{
			Date:         r.Date,
			Actual:       r.Actual,
			Predicted:    r.Predicted,
			Error:        r.Error,
			ErrorPercent: r.ErrorPercent,
		}
	}

	updated := vm.RefreshedAt
	if updated.IsZero() {
		updated = vm.LoadedAt
	}

	return viewModelDTO{
		CurrentPrice: vm.Snapshot.CurrentPrice,
		History:      history,
		Predictions:  toPredictionsDTO(vm.Predictions),
		Backtest:     backtest,
		Synthetic:    vm.Synthetic || vm.Backtest.Synthetic,
		Metrics:      toMetricsDTO(vm.Metrics),
		Insights:     toInsightsDTO(vm.Insights),
		Source:       vm.Source.String(),
		RefreshTick:  vm.RefreshTick,
		LastUpdated:  updated.Format("2006-01-02 15:04:05 UTC"),
	}
}

func toPerformanceDTO(entries []viewmodel.PerformanceEntry) []performanceEntryDTO {
	out := make([]performanceEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = performanceEntryDTO{
			Date:         e.Date,
			Timestamp:    e.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
			CurrentPrice: e.CurrentPrice,
			Predictions:  e.Predictions,
			Confidence:   e.Confidence,
		}
	}
	return out
}
