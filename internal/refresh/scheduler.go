// Package refresh drives the periodic simulated-market update of the view
// model. Each tick nudges the current price and today's predictions by
// small bounded factors, extends the history, and recomputes derived
// state. This is an explicit stand-in for a live feed; no network call
// ever happens on refresh.
package refresh

import (
	"context"
	"log"
	"math/rand"
	"time"

	"goldboard/internal/backtest"
	"goldboard/internal/domain"
	"goldboard/internal/insights"
	"goldboard/internal/metrics"
	"goldboard/internal/viewmodel"
)

// Tick parameters.
const (
	// DefaultPeriod is the refresh interval.
	DefaultPeriod = 5 * time.Minute

	// HistoryCap bounds the historical series; the oldest entry is
	// dropped first (FIFO).
	HistoryCap = 90

	// priceDeltaBound is the half-width of the simulated market move.
	priceDeltaBound = 0.0025

	// modelJitterBound is the half-width of the per-model prediction
	// jitter; deliberately smaller than the market move.
	modelJitterBound = 0.0015
)

// Clock supplies the current time. Inject a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

// realClock is the wall clock.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Scheduler applies refresh ticks to the store on a single recurring
// timer. Tick work runs synchronously on the timer goroutine, so a new
// tick can never fire while the previous one is still executing.
type Scheduler struct {
	store  *viewmodel.Store
	rng    *rand.Rand
	clock  Clock
	period time.Duration
	logger *log.Logger
}

// Options for creating a Scheduler.
type Options struct {
	Store  *viewmodel.Store
	RNG    *rand.Rand // seeded noise source; required for reproducible tests
	Clock  Clock      // defaults to the wall clock
	Period time.Duration
	Logger *log.Logger
}

// New creates a Scheduler.
func New(opts Options) *Scheduler {
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	period := opts.Period
	if period == 0 {
		period = DefaultPeriod
	}
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		store:  opts.Store,
		rng:    rng,
		clock:  clock,
		period: period,
		logger: logger,
	}
}

// Run blocks, ticking every period until the context is cancelled. It is
// the sole driver of pipeline re-entry after the initial load.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Printf("[refresh] scheduler started, period %s", s.period)
	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("[refresh] scheduler stopped")
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick applies one simulated market update. Exported so tests can advance
// virtual time deterministically.
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	applied := s.store.Update(func(vm *domain.ViewModel) {
		// 1. Simulate market movement.
		delta := (s.rng.Float64()*2 - 1) * priceDeltaBound
		vm.Snapshot.CurrentPrice *= 1 + delta
		for model, price := range vm.Predictions.TodayByModel {
			jitter := (s.rng.Float64()*2 - 1) * modelJitterBound
			vm.Predictions.TodayByModel[model] = price * (1 + jitter)
		}

		// 2. Extend the series, FIFO-capped.
		vm.Snapshot.History = append(vm.Snapshot.History, domain.PricePoint{
			Date:  now.Format(domain.DateLayout),
			Price: vm.Snapshot.CurrentPrice,
		})
		if len(vm.Snapshot.History) > HistoryCap {
			vm.Snapshot.History = vm.Snapshot.History[len(vm.Snapshot.History)-HistoryCap:]
		}

		// 3. Recompute derived state. A synthetic backtest tracks the
		// updated series; a real upstream pairing is never overwritten
		// by synthesis.
		if vm.Backtest.Synthetic {
			vm.Backtest = backtest.Synthesize(vm.Snapshot.History, s.rng)
		}
		vm.Metrics = metrics.Compute(vm.Backtest.Records)
		vm.Insights = insights.Compute(vm.Snapshot.CurrentPrice, insights.WeekSeriesByModel(vm.Predictions))

		vm.RefreshedAt = now
		vm.RefreshTick++
	})

	// 4. Store.Update already notified subscribers; nothing to do when
	// the initial load has not happened yet.
	if !applied {
		s.logger.Printf("[refresh] tick skipped: no view model loaded")
	}
}
