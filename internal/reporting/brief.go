package reporting

import (
	"fmt"
	"strings"

	"goldboard/internal/domain"
)

// RenderBrief renders the compact terminal brief: current price, tomorrow's
// ensemble prediction and the week trend.
func RenderBrief(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Current Price: $%.2f\n", r.CurrentPrice))
	if pred, ok := r.TodayByModel[domain.ModelEnsemble]; ok {
		sb.WriteString(fmt.Sprintf("Tomorrow Prediction: $%.2f\n", pred))
	}
	sb.WriteString(fmt.Sprintf("Trend: %s\n", r.Insights.Trend.Direction))
	if r.Synthetic {
		sb.WriteString("Note: demo data (all sources unavailable)\n")
	}

	return sb.String()
}
