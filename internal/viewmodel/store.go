// Package viewmodel owns the current dashboard state. The pipeline and the
// refresh scheduler are the only writers; the rendering layer reads copies
// through accessors and is notified of updates via Subscribe. Nothing here
// is ever persisted.
package viewmodel

import (
	"sync"

	"goldboard/internal/domain"
)

// Store is the single owner of the current view model.
type Store struct {
	mu          sync.RWMutex
	current     domain.ViewModel
	loaded      bool
	provenance  []domain.ProvenanceRecord
	subscribers map[int]chan struct{}
	nextSubID   int
	perf        performanceLog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{subscribers: make(map[int]chan struct{})}
}

// ApplyInitial installs the first loaded view model. The loaded flag is a
// one-shot gate: a late-arriving initial result is discarded, never applied
// retroactively. Reports whether the value was applied.
func (s *Store) ApplyInitial(vm domain.ViewModel, provenance []domain.ProvenanceRecord) bool {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return false
	}
	s.current = vm
	s.provenance = provenance
	s.loaded = true
	s.perf.append(performanceEntryFrom(&vm), vm.LoadedAt)
	s.mu.Unlock()

	s.notify()
	return true
}

// Update applies a mutation under the write lock and notifies subscribers.
// Only the pipeline and the refresh scheduler may call it. Updates before
// the initial load are ignored.
func (s *Store) Update(mutate func(vm *domain.ViewModel)) bool {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false
	}
	mutate(&s.current)
	s.perf.append(performanceEntryFrom(&s.current), s.current.RefreshedAt)
	s.mu.Unlock()

	s.notify()
	return true
}

// Loaded reports whether an initial view model has been installed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ViewModel returns a copy of the current view model.
func (s *Store) ViewModel() (domain.ViewModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone(), s.loaded
}

// Snapshot returns a copy of the current market snapshot.
func (s *Store) Snapshot() domain.MarketSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Snapshot.Clone()
}

// Predictions returns a copy of the current prediction set.
func (s *Store) Predictions() domain.PredictionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Predictions.Clone()
}

// Backtest returns a copy of the current backtest result.
func (s *Store) Backtest() domain.BacktestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Backtest.Clone()
}

// Metrics returns the current aggregated metrics.
func (s *Store) Metrics() domain.AggregatedMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Metrics
}

// Insights returns the current market insights.
func (s *Store) Insights() domain.MarketInsights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current.Insights
	out.Risk.Factors = append([]string(nil), out.Risk.Factors...)
	return out
}

// Provenance returns the fetch attempt records of the initial load.
func (s *Store) Provenance() []domain.ProvenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ProvenanceRecord(nil), s.provenance...)
}

// PerformanceEntries returns the retained per-update performance log.
func (s *Store) PerformanceEntries() []PerformanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perf.entriesCopy()
}

// Subscribe registers an update listener. The returned channel receives a
// signal after every applied update; pending signals coalesce. Call the
// returned cancel function to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

// notify signals all subscribers without blocking on slow receivers.
func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// performanceEntryFrom snapshots the fields the performance log keeps.
func performanceEntryFrom(vm *domain.ViewModel) PerformanceEntry {
	preds := make(map[string]float64, len(vm.Predictions.TodayByModel))
	for k, v := range vm.Predictions.TodayByModel {
		preds[k] = v
	}
	at := vm.RefreshedAt
	if at.IsZero() {
		at = vm.LoadedAt
	}
	return PerformanceEntry{
		Timestamp:    at,
		Date:         at.Format(domain.DateLayout),
		CurrentPrice: vm.Snapshot.CurrentPrice,
		Predictions:  preds,
		Confidence:   vm.Predictions.Confidence,
	}
}
