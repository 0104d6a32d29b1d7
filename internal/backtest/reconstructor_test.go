package backtest

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"goldboard/internal/domain"
)

func makeHistory(n int, start float64) []domain.PricePoint {
	points := make([]domain.PricePoint, n)
	for i := range points {
		points[i] = domain.PricePoint{
			Date:  dateAt(i),
			Price: start + float64(i),
		}
	}
	return points
}

func dateAt(i int) string {
	return "2026-06-" + string(rune('0'+(i/10)%10)) + string(rune('0'+i%10))
}

func TestReconstruct_PassThroughWinsOverSynthesis(t *testing.T) {
	raw := domain.RawPayload{
		"prediction_vs_actual": []any{
			map[string]any{"date": "2026-08-01", "actual": 1950.0, "predicted": 1945.0},
			map[string]any{"date": "2026-08-02", "actual": 1960.0, "predicted": 1965.0},
		},
	}
	snapshot := domain.MarketSnapshot{History: makeHistory(40, 1900)}

	result := Reconstruct(raw, snapshot, rand.New(rand.NewSource(1)))
	if result.Synthetic {
		t.Error("pass-through result must not be marked synthetic")
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	r := result.Records[0]
	if r.Error != 5.0 {
		t.Errorf("expected error 5.0, got %v", r.Error)
	}
	wantPct := 5.0 / 1950.0 * 100
	if math.Abs(r.ErrorPercent-wantPct) > 1e-9 {
		t.Errorf("expected error percent %v, got %v", wantPct, r.ErrorPercent)
	}
}

func TestReconstruct_MalformedPairsDropped(t *testing.T) {
	raw := domain.RawPayload{
		"prediction_vs_actual": []any{
			map[string]any{"date": "2026-08-01", "actual": 1950.0, "predicted": 1945.0},
			map[string]any{"actual": 1960.0, "predicted": 1965.0},
			map[string]any{"date": "2026-08-03", "actual": 0.0, "predicted": 1965.0},
			"not a map",
		},
	}
	result := Reconstruct(raw, domain.MarketSnapshot{}, rand.New(rand.NewSource(1)))
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(result.Records))
	}
}

func TestSynthesize_WindowAndSkipFirst(t *testing.T) {
	history := makeHistory(50, 1900)
	result := Synthesize(history, rand.New(rand.NewSource(7)))

	if !result.Synthetic {
		t.Error("synthesized result must be marked synthetic")
	}
	// 30-day window minus the first point, which has no prior baseline.
	if len(result.Records) != SyntheticWindowDays-1 {
		t.Fatalf("expected %d records, got %d", SyntheticWindowDays-1, len(result.Records))
	}
	if result.Records[0].Date != history[len(history)-SyntheticWindowDays+1].Date {
		t.Errorf("window misaligned, first record date %s", result.Records[0].Date)
	}
}

func TestSynthesize_ShortHistory(t *testing.T) {
	history := makeHistory(3, 1900)
	result := Synthesize(history, rand.New(rand.NewSource(7)))
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records for 3-point history, got %d", len(result.Records))
	}

	empty := Synthesize(nil, rand.New(rand.NewSource(7)))
	if len(empty.Records) != 0 || !empty.Synthetic {
		t.Errorf("empty history should yield empty synthetic result, got %+v", empty)
	}
}

func TestSynthesize_NoiseBoundedByOnePercent(t *testing.T) {
	history := makeHistory(60, 1900)
	result := Synthesize(history, rand.New(rand.NewSource(42)))

	window := history[len(history)-SyntheticWindowDays:]
	for i, r := range result.Records {
		baseline := window[i].Price
		ratio := r.Predicted/baseline - 1
		if math.Abs(ratio) > 0.01 {
			t.Errorf("record %d: predicted %v deviates %v from baseline %v, beyond 1%%",
				i, r.Predicted, ratio, baseline)
		}
		if r.Actual != window[i+1].Price {
			t.Errorf("record %d: actual %v, want %v", i, r.Actual, window[i+1].Price)
		}
	}
}

func TestSynthesize_DeterministicForSeed(t *testing.T) {
	history := makeHistory(45, 2000)
	a := Synthesize(history, rand.New(rand.NewSource(99)))
	b := Synthesize(history, rand.New(rand.NewSource(99)))
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must reproduce the same synthetic backtest")
	}
}
