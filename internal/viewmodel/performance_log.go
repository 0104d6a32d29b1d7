package viewmodel

import "time"

// RetentionDays bounds the in-memory performance log. Entries older than
// this relative to the newest entry are pruned on append.
const RetentionDays = 30

// PerformanceEntry records one pipeline update for later inspection:
// the quote and today's per-model predictions at that moment.
type PerformanceEntry struct {
	Timestamp    time.Time
	Date         string
	CurrentPrice float64
	Predictions  map[string]float64
	Confidence   float64
}

// performanceLog is the session-scoped log behind Store.PerformanceEntries.
// Guarded by the store's lock; never persisted.
type performanceLog struct {
	entries []PerformanceEntry
}

// append adds an entry and drops everything past the retention cutoff.
func (l *performanceLog) append(e PerformanceEntry, now time.Time) {
	l.entries = append(l.entries, e)

	cutoff := now.AddDate(0, 0, -RetentionDays)
	keep := l.entries[:0]
	for _, entry := range l.entries {
		if entry.Timestamp.After(cutoff) {
			keep = append(keep, entry)
		}
	}
	l.entries = keep
}

// entriesCopy returns a defensive copy of the retained entries.
func (l *performanceLog) entriesCopy() []PerformanceEntry {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]PerformanceEntry, len(l.entries))
	copy(out, l.entries)
	for i := range out {
		preds := make(map[string]float64, len(out[i].Predictions))
		for k, v := range out[i].Predictions {
			preds[k] = v
		}
		out[i].Predictions = preds
	}
	return out
}
