package services

import (
	"portfolio-api/internal/cache"
)

// invalidate drops every cached key in the given namespaces.
func invalidate(caches *cache.Registry, prefixes ...string) int {
	removed := 0
	for _, p := range prefixes {
		removed += caches.InvalidateMatching(p + ":")
	}
	return removed
}
