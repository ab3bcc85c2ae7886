package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testRoom struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	want := []testRoom{{ID: 1, Name: "101", Price: 100}, {ID: 2, Name: "201", Price: 180}}
	c.Set(ctx, "all_rooms", want, 0)

	var got []testRoom
	if !c.Get(ctx, "all_rooms", &got) {
		t.Fatal("expected cache hit right after Set")
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetAbsentKey(t *testing.T) {
	c := New(NewMemoryStore())
	var out testRoom
	if c.Get(context.Background(), "missing", &out) {
		t.Error("expected miss for absent key")
	}
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)

	c.Set(ctx, "short", testRoom{ID: 1}, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	var out testRoom
	if c.Get(ctx, "short", &out) {
		t.Fatal("expected expired entry to miss")
	}
	// Lazy expiration also deletes the entry from the store.
	if _, found, _ := store.Get(ctx, Prefix+"short"); found {
		t.Error("expired entry should have been evicted on read")
	}
}

func TestDefaultTTLApplies(t *testing.T) {
	ctx := context.Background()
	c := NewWithTTL(NewMemoryStore(), time.Hour)

	c.Set(ctx, "k", testRoom{ID: 7}, 0)
	var out testRoom
	if !c.Get(ctx, "k", &out) || out.ID != 7 {
		t.Errorf("entry stored with default TTL should still be fresh, got %+v", out)
	}
}

func TestFetchCallsFnOnceCold(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return testRoom{ID: 3, Name: "301"}, nil
	}

	var got testRoom
	if err := c.Fetch(ctx, "room_3", 0, &got, fetch); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("got %+v", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("cold fetch should call fn once, got %d", n)
	}

	// Warm key: fn must not run again.
	var again testRoom
	if err := c.Fetch(ctx, "room_3", 0, &again, fetch); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("warm fetch should not call fn, got %d calls", n)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	wantErr := errors.New("backend down")
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, wantErr
	}

	var out testRoom
	if err := c.Fetch(ctx, "k", 0, &out, fetch); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
	// No negative caching: the next Fetch tries again.
	if err := c.Fetch(ctx, "k", 0, &out, fetch); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error again, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("failed fetches must not be cached, got %d calls", n)
	}
}

func TestFetchCollapsesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return testRoom{ID: 9}, nil
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var out testRoom
			if err := c.Fetch(ctx, "hot", 0, &out, fetch); err != nil {
				t.Errorf("Fetch: %v", err)
				return
			}
			if out.ID != 9 {
				t.Errorf("got %+v", out)
			}
		}()
	}
	close(start)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("concurrent misses should share one fetch, got %d", n)
	}
}

func TestClearKey(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	c.Set(ctx, "user_bookings_1", []testRoom{{ID: 1}}, time.Hour)
	c.ClearKey(ctx, "user_bookings_1")

	var out []testRoom
	if c.Get(ctx, "user_bookings_1", &out) {
		t.Error("cleared key should miss even before its TTL")
	}
}

func TestClearAllOnlyTouchesNamespace(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)

	c.Set(ctx, "a", testRoom{ID: 1}, 0)
	c.Set(ctx, "b", testRoom{ID: 2}, 0)
	// A foreign key sharing the store but outside the namespace.
	if err := store.Set(ctx, "unrelated", "keep me"); err != nil {
		t.Fatal(err)
	}

	c.ClearAll(ctx)

	var out testRoom
	if c.Get(ctx, "a", &out) || c.Get(ctx, "b", &out) {
		t.Error("ClearAll should remove every namespaced entry")
	}
	if _, found, _ := store.Get(ctx, "unrelated"); !found {
		t.Error("ClearAll must not touch keys outside the namespace")
	}
}

func TestMalformedEntryIsMissAndEvicted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)

	if err := store.Set(ctx, Prefix+"bad", "{not valid json"); err != nil {
		t.Fatal(err)
	}

	var out testRoom
	if c.Get(ctx, "bad", &out) {
		t.Fatal("malformed entry should be a miss")
	}
	if _, found, _ := store.Get(ctx, Prefix+"bad"); found {
		t.Error("malformed entry should have been dropped")
	}
}

func TestGetWrongShapeIsMiss(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	c.Set(ctx, "k", "just a string", 0)

	var out testRoom
	if c.Get(ctx, "k", &out) {
		t.Error("entry that can't decode into the target should be a miss")
	}
}
