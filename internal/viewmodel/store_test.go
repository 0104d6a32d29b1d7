package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goldboard/internal/domain"
)

func testViewModel(price float64) domain.ViewModel {
	return domain.ViewModel{
		Snapshot: domain.MarketSnapshot{
			CurrentPrice: price,
			History: []domain.PricePoint{
				{Date: "2026-08-30", Price: price - 5},
				{Date: "2026-08-31", Price: price},
			},
		},
		Predictions: domain.PredictionSet{
			TodayByModel: map[string]float64{domain.ModelEnsemble: price + 10},
			Confidence:   90,
		},
		Source:   domain.SourceCombined,
		LoadedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestApplyInitial_OneShotGate(t *testing.T) {
	store := NewStore()
	require.False(t, store.Loaded())

	require.True(t, store.ApplyInitial(testViewModel(2000), nil))
	require.True(t, store.Loaded())

	// A late-arriving initial result is discarded.
	require.False(t, store.ApplyInitial(testViewModel(1111), nil))
	vm, ok := store.ViewModel()
	require.True(t, ok)
	require.Equal(t, 2000.0, vm.Snapshot.CurrentPrice)
}

func TestUpdate_IgnoredBeforeInitialLoad(t *testing.T) {
	store := NewStore()
	called := false
	require.False(t, store.Update(func(vm *domain.ViewModel) { called = true }))
	require.False(t, called)
}

func TestUpdate_MutatesUnderLock(t *testing.T) {
	store := NewStore()
	require.True(t, store.ApplyInitial(testViewModel(2000), nil))

	require.True(t, store.Update(func(vm *domain.ViewModel) {
		vm.Snapshot.CurrentPrice = 2020
		vm.RefreshTick++
	}))

	vm, _ := store.ViewModel()
	require.Equal(t, 2020.0, vm.Snapshot.CurrentPrice)
	require.Equal(t, 1, vm.RefreshTick)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	store := NewStore()
	require.True(t, store.ApplyInitial(testViewModel(2000), nil))

	snap := store.Snapshot()
	snap.History[0].Price = -1
	preds := store.Predictions()
	preds.TodayByModel[domain.ModelEnsemble] = -1

	fresh, _ := store.ViewModel()
	require.Equal(t, 1995.0, fresh.Snapshot.History[0].Price,
		"mutating an accessor result must not affect the store")
	require.Equal(t, 2010.0, fresh.Predictions.TodayByModel[domain.ModelEnsemble])
}

func TestProvenance_Copied(t *testing.T) {
	store := NewStore()
	prov := []domain.ProvenanceRecord{{ID: "a", Source: domain.SourceCombined, Outcome: domain.AttemptOK}}
	require.True(t, store.ApplyInitial(testViewModel(2000), prov))

	got := store.Provenance()
	require.Len(t, got, 1)
	got[0].ID = "mutated"
	require.Equal(t, "a", store.Provenance()[0].ID)
}

func TestSubscribe_NotifiedOnUpdates(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe()
	defer cancel()

	require.True(t, store.ApplyInitial(testViewModel(2000), nil))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after initial load")
	}

	require.True(t, store.Update(func(vm *domain.ViewModel) { vm.RefreshTick++ }))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after update")
	}
}

func TestSubscribe_PendingSignalsCoalesce(t *testing.T) {
	store := NewStore()
	require.True(t, store.ApplyInitial(testViewModel(2000), nil))

	ch, cancel := store.Subscribe()
	defer cancel()

	// Multiple updates without a read must not block the writer.
	for i := 0; i < 5; i++ {
		require.True(t, store.Update(func(vm *domain.ViewModel) { vm.RefreshTick++ }))
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("signals did not coalesce")
	default:
	}
}

func TestSubscribe_CancelStopsNotifications(t *testing.T) {
	store := NewStore()
	require.True(t, store.ApplyInitial(testViewModel(2000), nil))

	ch, cancel := store.Subscribe()
	cancel()
	require.True(t, store.Update(func(vm *domain.ViewModel) { vm.RefreshTick++ }))
	select {
	case <-ch:
		t.Fatal("notified after unsubscribe")
	default:
	}
}

func TestPerformanceEntries_RecordedPerUpdate(t *testing.T) {
	store := NewStore()
	require.True(t, store.ApplyInitial(testViewModel(2000), nil))

	require.True(t, store.Update(func(vm *domain.ViewModel) {
		vm.Snapshot.CurrentPrice = 2005
		vm.RefreshedAt = vm.LoadedAt.Add(5 * time.Minute)
	}))

	entries := store.PerformanceEntries()
	require.Len(t, entries, 2)
	require.Equal(t, 2000.0, entries[0].CurrentPrice)
	require.Equal(t, 2005.0, entries[1].CurrentPrice)
	require.Equal(t, "2026-08-31", entries[1].Date)
}

func TestPerformanceLog_PrunesByRetention(t *testing.T) {
	var l performanceLog
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	l.append(PerformanceEntry{Timestamp: base.AddDate(0, 0, -40)}, base.AddDate(0, 0, -40))
	l.append(PerformanceEntry{Timestamp: base.AddDate(0, 0, -10)}, base.AddDate(0, 0, -10))
	l.append(PerformanceEntry{Timestamp: base}, base)

	entries := l.entriesCopy()
	require.Len(t, entries, 2, "entry older than %d days must be pruned", RetentionDays)
	require.Equal(t, base.AddDate(0, 0, -10), entries[0].Timestamp)
}
