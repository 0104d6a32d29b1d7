package domain

// BacktestRecord is one paired (actual, predicted) observation.
// Created and owned by the backtest package; read-only downstream.
type BacktestRecord struct {
	Date         string
	Actual       float64
	Predicted    float64
	Error        float64 // |actual - predicted|
	ErrorPercent float64 // error / actual * 100
}

// BacktestResult is an ordered backtest series plus its provenance.
// Synthetic marks a noise-reconstructed series; it is never set when the
// upstream payload supplied a real prediction-vs-actual pairing.
type BacktestResult struct {
	Records   []BacktestRecord
	Synthetic bool
}

// Clone returns a deep copy of the result.
func (r *BacktestResult) Clone() BacktestResult {
	out := BacktestResult{Synthetic: r.Synthetic}
	if len(r.Records) > 0 {
		out.Records = make([]BacktestRecord, len(r.Records))
		copy(out.Records, r.Records)
	}
	return out
}
