package reporting

import (
	"fmt"
	"strings"

	"goldboard/internal/domain"
)

// RenderCSV renders the backtest series as a CSV string.
func RenderCSV(result domain.BacktestResult) string {
	var sb strings.Builder

	sb.WriteString("date,actual,predicted,error,error_percent,synthetic\n")
	for _, rec := range result.Records {
		sb.WriteString(fmt.Sprintf("%s,%.2f,%.2f,%.4f,%.4f,%t\n",
			rec.Date, rec.Actual, rec.Predicted, rec.Error, rec.ErrorPercent, result.Synthetic))
	}

	return sb.String()
}
