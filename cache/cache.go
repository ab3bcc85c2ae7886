// Package cache is a TTL layer over a pluggable key-value store, used to
// memoize backend reads (room lists, bookings, users) and invalidate them
// after mutations.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// Prefix namespaces every key so ClearAll can't touch foreign data
// sharing the same store.
const Prefix = "app_cache_"

// DefaultTTL applies when a caller passes ttl == 0.
const DefaultTTL = 5 * time.Minute

// Entry is the persisted shape. Timestamp and TTL are in milliseconds so
// entries written by older deployments stay readable.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl,omitempty"`
}

// Cache wraps a Store with expiration and single-flight fetching. All
// storage failures degrade to cache-miss behavior; they are logged, never
// returned to callers.
type Cache struct {
	store      Store
	defaultTTL time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	wg   sync.WaitGroup
	data json.RawMessage
	err  error
}

func New(store Store) *Cache {
	return NewWithTTL(store, DefaultTTL)
}

func NewWithTTL(store Store, defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		store:      store,
		defaultTTL: defaultTTL,
		inflight:   make(map[string]*inflightCall),
	}
}

// Get decodes the entry for key into out. Returns false on absence,
// expiry (the entry is deleted on read) or any storage/decoding problem.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	raw, ok := c.getRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[Cache] error decoding key %q: %v", key, err)
		c.ClearKey(ctx, key)
		return false
	}
	return true
}

func (c *Cache) getRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	value, found, err := c.store.Get(ctx, Prefix+key)
	if err != nil {
		log.Printf("[Cache] error retrieving key %q: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		// Corrupted entry: drop it and treat as a miss.
		log.Printf("[Cache] malformed entry for key %q: %v", key, err)
		c.ClearKey(ctx, key)
		return nil, false
	}

	ttl := time.Duration(entry.TTL) * time.Millisecond
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	age := time.Since(time.UnixMilli(entry.Timestamp))
	if age > ttl {
		c.ClearKey(ctx, key)
		return nil, false
	}
	return entry.Data, true
}

// Set stores data under key, stamped now. ttl == 0 means DefaultTTL.
// Write failures are logged and swallowed; caching is best-effort.
func (c *Cache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Cache] error encoding key %q: %v", key, err)
		return
	}
	c.setRaw(ctx, key, raw, ttl)
}

func (c *Cache) setRaw(ctx context.Context, key string, raw json.RawMessage, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	entry := Entry{
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
		TTL:       ttl.Milliseconds(),
	}
	value, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[Cache] error encoding entry for key %q: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, Prefix+key, string(value)); err != nil {
		log.Printf("[Cache] error setting key %q: %v", key, err)
	}
}

// Fetch returns the cached value for key when fresh, otherwise runs
// fetchFn, caches its result and decodes it into out. Concurrent misses
// for the same key share one fetchFn call. A fetchFn error is returned
// to every waiter and nothing is cached.
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, out interface{}, fetchFn func(ctx context.Context) (interface{}, error)) error {
	if c.Get(ctx, key, out) {
		return nil
	}

	c.mu.Lock()
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		call.wg.Wait()
		if call.err != nil {
			return call.err
		}
		return json.Unmarshal(call.data, out)
	}
	call := &inflightCall{}
	call.wg.Add(1)
	c.inflight[key] = call
	c.mu.Unlock()

	call.data, call.err = c.runFetch(ctx, key, fetchFn)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	call.wg.Done()

	if call.err != nil {
		return call.err
	}
	c.setRaw(ctx, key, call.data, ttl)
	return json.Unmarshal(call.data, out)
}

func (c *Cache) runFetch(ctx context.Context, key string, fetchFn func(ctx context.Context) (interface{}, error)) (json.RawMessage, error) {
	data, err := fetchFn(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding fetched data for key %q: %w", key, err)
	}
	return raw, nil
}

// ClearKey removes one entry unconditionally. Call it after a mutation of
// the resource the key represents.
func (c *Cache) ClearKey(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, Prefix+key); err != nil {
		log.Printf("[Cache] error clearing key %q: %v", key, err)
	}
}

// ClearAll removes every entry in this cache's namespace.
func (c *Cache) ClearAll(ctx context.Context) {
	keys, err := c.store.Keys(ctx, Prefix)
	if err != nil {
		log.Printf("[Cache] error listing keys: %v", err)
		return
	}
	for _, k := range keys {
		if err := c.store.Delete(ctx, k); err != nil {
			log.Printf("[Cache] error clearing key %q: %v", k, err)
		}
	}
}
