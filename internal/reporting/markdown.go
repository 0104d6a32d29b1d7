package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown summary.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Gold Forecast Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.Synthetic {
		sb.WriteString("**Demo data**: all sources were unavailable; figures below are synthetic placeholders.\n\n")
	}

	sb.WriteString("## Market Data\n\n")
	sb.WriteString(fmt.Sprintf("- **Current Price**: $%.2f\n", r.CurrentPrice))
	sb.WriteString(fmt.Sprintf("- **Data Source**: %s (%d historical points)\n\n", r.Source, r.DataPoints))

	sb.WriteString("## Tomorrow Predictions\n\n")
	if len(r.TodayByModel) > 0 {
		for _, model := range sortedModels(r.TodayByModel) {
			sb.WriteString(fmt.Sprintf("- **%s**: $%.2f\n", strings.ToUpper(model), r.TodayByModel[model]))
		}
	} else {
		sb.WriteString("- No predictions available.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Market Insights\n\n")
	sb.WriteString(fmt.Sprintf("- **Trend**: %s (%.2f%%)\n", r.Insights.Trend.Direction, r.Insights.Trend.ChangePercent))
	sb.WriteString(fmt.Sprintf("- **Volatility**: %s\n", r.Insights.Volatility.Level))
	sb.WriteString(fmt.Sprintf("- **Support**: $%.2f\n", r.Insights.KeyLevels.Support))
	sb.WriteString(fmt.Sprintf("- **Resistance**: $%.2f\n", r.Insights.KeyLevels.Resistance))
	sb.WriteString(fmt.Sprintf("- **Week Outlook**: high $%.2f / low $%.2f, ending $%.2f\n\n",
		r.Insights.WeekOutlook.High, r.Insights.WeekOutlook.Low, r.Insights.WeekOutlook.EndPrice))

	sb.WriteString("## Backtest\n\n")
	label := "computed"
	if r.Metrics.Placeholder {
		label = "placeholder"
	} else if r.Backtest.Synthetic {
		label = "synthetic"
	}
	sb.WriteString(fmt.Sprintf("- **MAE**: %.4f (%s)\n", r.Metrics.MAE, label))
	sb.WriteString(fmt.Sprintf("- **MAPE**: %.4f%%\n", r.Metrics.MAPE))
	sb.WriteString(fmt.Sprintf("- **Accuracy**: %.2f%%\n\n", r.Metrics.Accuracy))

	if r.Evaluation != nil {
		sb.WriteString("## Daily Evaluation\n\n")
		sb.WriteString(fmt.Sprintf("- **%s**: predicted $%.2f, actual $%.2f (MAE %.4f, MAPE %.4f%%)\n\n",
			r.Evaluation.Date, r.Evaluation.YesterdayPred, r.Evaluation.TodayActual,
			r.Evaluation.MAE, r.Evaluation.MAPE))
	}

	sb.WriteString("## Model Performance\n\n")
	if len(r.Accuracies) > 0 {
		for _, model := range sortedModels(r.Accuracies) {
			sb.WriteString(fmt.Sprintf("- **%s**: %.1f%% accuracy (published, not verified)\n",
				strings.ToUpper(model), r.Accuracies[model]))
		}
	} else {
		sb.WriteString("- No performance data available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// sortedModels returns map keys in stable alphabetical order.
func sortedModels(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
