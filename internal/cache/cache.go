// Package cache provides the in-process TTL cache that sits in front of the
// database read path, plus the hit/miss monitor and the named instances the
// services share.
package cache

import (
	"context"
	"time"
)

// UseDefaultTTL makes Set and GetOrSet fall back to the instance default.
const UseDefaultTTL time.Duration = 0

// Store defines the key-value API the services depend on.
// Implementations must be safe for concurrent use.
type Store[V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (V, bool)

	// Set stores the value. If ttl <= 0 the instance default TTL applies.
	Set(key string, value V, ttl time.Duration)

	// GetOrSet returns the cached value or computes, stores and returns it.
	// A factory error is returned as-is and nothing is stored.
	GetOrSet(ctx context.Context, key string, factory func(ctx context.Context) (V, error), ttl time.Duration) (V, error)

	// Has reports whether a key is present and not expired.
	Has(key string) bool

	// Delete removes a key and reports whether it was present.
	Delete(key string) bool

	// DeleteMatching removes every key containing substr.
	DeleteMatching(substr string) int

	// Clear removes all entries.
	Clear()

	// Cleanup removes expired entries and returns how many were removed.
	Cleanup() int

	// Stats reports raw map membership, including expired entries not yet purged.
	Stats() Stats
}

// Stats is a snapshot of a single instance.
type Stats struct {
	Name    string   `json:"name,omitempty"`
	Size    int      `json:"size"`
	MaxSize int      `json:"maxSize"`
	Keys    []string `json:"keys"`
}
