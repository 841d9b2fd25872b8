package forecast

import (
	"math"
	"sync"
	"testing"

	"forecast-aggregation/internal/geo"
)

func TestCacheLookupSameDayOnly(t *testing.T) {
	cache := NewCache()
	pos := geo.NewPosition(52.52437, 13.41053)
	f := Forecast{1, 2, 3, 4, 5}

	if _, ok := cache.Lookup(pos, "2026-08-23"); ok {
		t.Fatal("empty cache must miss")
	}

	cache.Store(pos, "2026-08-23", f)

	got, ok := cache.Lookup(pos, "2026-08-23")
	if !ok {
		t.Fatal("expected hit for the computed day")
	}
	if got != f {
		t.Errorf("got %v, want %v", got, f)
	}

	// Any other day is a miss, earlier or later.
	if _, ok := cache.Lookup(pos, "2026-08-22"); ok {
		t.Error("entry from another day must be a miss")
	}
	if _, ok := cache.Lookup(pos, "2026-08-24"); ok {
		t.Error("entry from another day must be a miss")
	}

	// The stale entry is overwritten by the next store, not deleted before.
	cache.Store(pos, "2026-08-24", Forecast{9, 9, 9, 9, 9})
	got, ok = cache.Lookup(pos, "2026-08-24")
	if !ok || got[0] != 9 {
		t.Errorf("expected overwritten entry, got %v (hit=%v)", got, ok)
	}
}

func TestCacheEpsilonKeyIdentity(t *testing.T) {
	cache := NewCache()
	f := Forecast{1, 2, 3, 4, 5}

	cache.Store(geo.NewPosition(1, 1), "2026-08-23", f)

	// One ULP away is within tolerance and must resolve to the same key.
	near := geo.NewPosition(math.Nextafter32(1, 2), 1)
	if _, ok := cache.Lookup(near, "2026-08-23"); !ok {
		t.Error("epsilon-close position must hit the same entry")
	}

	cache.Store(near, "2026-08-23", Forecast{7, 7, 7, 7, 7})
	got, ok := cache.Lookup(geo.NewPosition(1, 1), "2026-08-23")
	if !ok || got[0] != 7 {
		t.Errorf("store through an epsilon-close position must replace the entry, got %v (hit=%v)", got, ok)
	}

	// Beyond tolerance is a distinct key.
	if _, ok := cache.Lookup(geo.NewPosition(1.001, 1), "2026-08-23"); ok {
		t.Error("position beyond epsilon must be a distinct key")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache()
	day := "2026-08-23"

	positions := make([]geo.Position, 8)
	for i := range positions {
		positions[i] = geo.NewPosition(float32(i), float32(-i))
	}

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				pos := positions[(w+i)%len(positions)]
				f := Forecast{1, 2, 3, 4, 5}
				cache.Store(pos, day, f)
				if got, ok := cache.Lookup(pos, day); ok && got != f {
					t.Errorf("torn read: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
