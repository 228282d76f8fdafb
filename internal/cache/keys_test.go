package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "project:slug:hello-world", Key("project", "slug", "hello-world"))
	require.Equal(t, "homepage", Key("homepage"))
}

func TestQueryKey_Deterministic(t *testing.T) {
	a := QueryKey("project:filter", map[string]string{"featured": "true", "tech": "go"})
	b := QueryKey("project:filter", map[string]string{"tech": "go", "featured": "true"})
	require.Equal(t, a, b)
	require.Equal(t, "project:filter:featured=true&tech=go", a)
}

func TestQueryKey_DropsEmptyParams(t *testing.T) {
	require.Equal(t, "project:filter:all", QueryKey("project:filter", map[string]string{"featured": "", "tech": ""}))
	require.Equal(t, "project:filter:all", QueryKey("project:filter", nil))
	require.Equal(t, "post:list:page=2", QueryKey("post:list", map[string]string{"page": "2", "limit": ""}))
}
