package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Default TTLs for the named instances, by how often the data behind them changes.
const (
	PageTTL   = 300 * time.Second
	APITTL    = 180 * time.Second
	StaticTTL = 3600 * time.Second
	UserTTL   = 900 * time.Second
)

// RegistryOptions tunes the named instances. Zero values fall back to the
// package defaults.
type RegistryOptions struct {
	PageTTL         time.Duration
	APITTL          time.Duration
	StaticTTL       time.Duration
	UserTTL         time.Duration
	MaxSize         int
	CleanupInterval time.Duration
	SingleFlight    bool
	ReportEvery     int
	Clock           clock.Clock
}

// Registry holds the process-wide named instances. It is built once at
// startup and handed to whatever needs it.
type Registry struct {
	Page   *TTLCache[any]
	API    *TTLCache[any]
	Static *TTLCache[any]
	User   *TTLCache[any]

	monitor *Monitor
}

// NewRegistry builds the page, api, static and user instances, all reporting
// to the same monitor.
func NewRegistry(opts RegistryOptions, monitor *Monitor, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if monitor == nil {
		monitor = NewMonitor(logger)
	}

	build := func(name string, ttl, fallback time.Duration) *TTLCache[any] {
		if ttl <= 0 {
			ttl = fallback
		}
		return New[any](Options{
			Name:            name,
			DefaultTTL:      ttl,
			MaxSize:         opts.MaxSize,
			CleanupInterval: opts.CleanupInterval,
			SingleFlight:    opts.SingleFlight,
			ReportEvery:     opts.ReportEvery,
			Monitor:         monitor,
			Clock:           opts.Clock,
			Logger:          logger,
		})
	}

	return &Registry{
		Page:    build("page", opts.PageTTL, PageTTL),
		API:     build("api", opts.APITTL, APITTL),
		Static:  build("static", opts.StaticTTL, StaticTTL),
		User:    build("user", opts.UserTTL, UserTTL),
		monitor: monitor,
	}
}

// Monitor returns the shared hit/miss monitor.
func (r *Registry) Monitor() *Monitor {
	return r.monitor
}

func (r *Registry) all() []*TTLCache[any] {
	return []*TTLCache[any]{r.Page, r.API, r.Static, r.User}
}

// Stats reports every instance.
func (r *Registry) Stats() []Stats {
	all := r.all()
	out := make([]Stats, 0, len(all))
	for _, c := range all {
		out = append(out, c.Stats())
	}
	return out
}

// InvalidateMatching drops keys containing substr from every instance.
func (r *Registry) InvalidateMatching(substr string) int {
	removed := 0
	for _, c := range r.all() {
		removed += c.DeleteMatching(substr)
	}
	return removed
}

// Clear empties every instance.
func (r *Registry) Clear() {
	for _, c := range r.all() {
		c.Clear()
	}
}

// Destroy stops every sweeper and clears every instance.
func (r *Registry) Destroy() {
	for _, c := range r.all() {
		c.Destroy()
	}
}

// GetAs reads key from an untyped store and asserts it to T. A value of
// another type is reported as a miss.
func GetAs[T any](s Store[any], key string) (T, bool) {
	v, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// GetOrSetAs is GetOrSet over an untyped store with a typed factory.
func GetOrSetAs[T any](ctx context.Context, s Store[any], key string, factory func(ctx context.Context) (T, error), ttl time.Duration) (T, error) {
	v, err := s.GetOrSet(ctx, key, func(ctx context.Context) (any, error) {
		return factory(ctx)
	}, ttl)
	if err != nil {
		var zero T
		return zero, err
	}
	if v == nil {
		var zero T
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: key %q holds %T, not %T", key, v, zero)
	}
	return t, nil
}
