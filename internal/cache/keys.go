package cache

import (
	"sort"
	"strings"
)

const keySep = ":"

// Key joins parts into a cache key, e.g. Key("project", "slug", s) gives
// "project:slug:<s>".
func Key(parts ...string) string {
	return strings.Join(parts, keySep)
}

// QueryKey builds a key from a prefix and query parameters. Parameters are
// sorted by name and empty values are dropped, so the same logical query
// always yields the same key.
func QueryKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		names = append(names, k)
	}
	if len(names) == 0 {
		return Key(prefix, "all")
	}
	sort.Strings(names)

	var b strings.Builder
	for i, k := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return Key(prefix, b.String())
}
