package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL     = 300 * time.Second
	DefaultMaxSize = 1000
)

// entry stores a cached value together with when it was written and for how long it lives.
type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// isExpired reports whether e is stale at now. An entry is stale once strictly
// more than its ttl has elapsed since it was stored.
func isExpired[V any](e entry[V], now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Options controls construction of a TTLCache.
type Options struct {
	// Name identifies the instance in logs and stats.
	Name string

	// DefaultTTL applies when a caller passes ttl <= 0. Defaults to 300s.
	DefaultTTL time.Duration

	// MaxSize bounds the number of resident entries. Defaults to 1000.
	MaxSize int

	// CleanupInterval enables a background sweep of expired entries.
	// Zero or negative disables it.
	CleanupInterval time.Duration

	// SingleFlight coalesces concurrent GetOrSet misses on the same key
	// into one factory call. A caller whose ctx ends stops waiting with
	// ctx.Err(); the load itself carries on for the others.
	SingleFlight bool

	// ReportEvery makes the monitor log its stats every N lookups. Zero disables it.
	ReportEvery int

	Monitor *Monitor
	Clock   clock.Clock
	Logger  *zap.Logger
}

// TTLCache is a map-backed cache with per-entry TTL, a size bound with
// oldest-first eviction, lazy expiry on read and an optional periodic sweep.
type TTLCache[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]

	name        string
	defaultTTL  time.Duration
	maxSize     int
	reportEvery int

	singleFlight bool
	group        singleflight.Group

	monitor *Monitor
	clock   clock.Clock
	logger  *zap.Logger

	done    chan struct{}
	once    sync.Once
	sweeper sync.WaitGroup
}

// New constructs a TTLCache. Every call returns an independent instance.
func New[V any](opts Options) *TTLCache[V] {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Monitor == nil {
		opts.Monitor = NewMonitor(opts.Logger)
	}

	c := &TTLCache[V]{
		items:        make(map[string]entry[V]),
		name:         opts.Name,
		defaultTTL:   opts.DefaultTTL,
		maxSize:      opts.MaxSize,
		reportEvery:  opts.ReportEvery,
		singleFlight: opts.SingleFlight,
		monitor:      opts.Monitor,
		clock:        opts.Clock,
		logger:       opts.Logger.With(zap.String("cache", opts.Name)),
		done:         make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		ticker := c.clock.Ticker(opts.CleanupInterval)
		c.sweeper.Add(1)
		go c.sweep(ticker)
	}
	return c
}

// Get implements Store.Get. Expired entries are removed on the way out.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok && isExpired(e, c.clock.Now()) {
		delete(c.items, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		c.monitor.RecordMiss(c.reportEvery)
		var zero V
		return zero, false
	}
	c.monitor.RecordHit(c.reportEvery)
	return e.value, true
}

// Set implements Store.Set.
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.items[key] = entry[V]{
		value:    value,
		storedAt: c.clock.Now(),
		ttl:      ttl,
	}
}

// evictOldestLocked drops the entry with the smallest storedAt. When several
// share it, the first one the map iteration yields goes.
func (c *TTLCache[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.items {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(c.items, oldestKey)
		c.logger.Debug("evicted oldest entry", zap.String("key", oldestKey))
	}
}

// Has implements Store.Has. It goes through Get, so it counts as a lookup.
func (c *TTLCache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// GetOrSet implements Store.GetOrSet.
func (c *TTLCache[V]) GetOrSet(ctx context.Context, key string, factory func(ctx context.Context) (V, error), ttl time.Duration) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	if !c.singleFlight {
		return c.load(ctx, key, factory, ttl)
	}

	// The shared load outlives any one caller: it keeps ctx values but not
	// its cancellation. Each caller stops waiting when its own ctx is done.
	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key, factory, ttl)
	})
	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

func (c *TTLCache[V]) load(ctx context.Context, key string, factory func(ctx context.Context) (V, error), ttl time.Duration) (V, error) {
	v, err := factory(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Delete implements Store.Delete.
func (c *TTLCache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	delete(c.items, key)
	return ok
}

// DeleteMatching implements Store.DeleteMatching.
func (c *TTLCache[V]) DeleteMatching(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k := range c.items {
		if strings.Contains(k, substr) {
			delete(c.items, k)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("invalidated entries", zap.String("match", substr), zap.Int("removed", removed))
	}
	return removed
}

// Clear implements Store.Clear. Monitor counters are left alone.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry[V])
}

// Cleanup implements Store.Cleanup.
func (c *TTLCache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0
	}
	now := c.clock.Now()
	removed := 0
	for k, e := range c.items {
		if isExpired(e, now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Stats implements Store.Stats.
func (c *TTLCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return Stats{
		Name:    c.name,
		Size:    len(c.items),
		MaxSize: c.maxSize,
		Keys:    keys,
	}
}

// Destroy stops the background sweep, if any, and clears the store.
// Calling it more than once is safe.
func (c *TTLCache[V]) Destroy() {
	c.once.Do(func() {
		close(c.done)
	})
	c.sweeper.Wait()
	c.Clear()
}

func (c *TTLCache[V]) sweep(ticker *clock.Ticker) {
	defer c.sweeper.Done()
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if n := c.Cleanup(); n > 0 {
				c.logger.Debug("swept expired entries", zap.Int("removed", n))
			}
		}
	}
}

// Ensure TTLCache implements Store at compile time.
var _ Store[any] = (*TTLCache[any])(nil)
