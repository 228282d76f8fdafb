package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMonitor_EmptyHitRate(t *testing.T) {
	m := NewMonitor(nil)
	require.Equal(t, MonitorStats{}, m.Stats())
}

func TestMonitor_HitRate(t *testing.T) {
	m := NewMonitor(nil)
	for i := 0; i < 3; i++ {
		m.RecordMiss(0)
	}
	m.RecordHit(0)

	s := m.Stats()
	require.Equal(t, int64(1), s.Hits)
	require.Equal(t, int64(3), s.Misses)
	require.Equal(t, int64(4), s.Total)
	require.InDelta(t, 25.0, s.HitRate, 1e-9)

	m.Reset()
	require.Equal(t, MonitorStats{}, m.Stats())
}

func TestMonitor_CountsThroughCache(t *testing.T) {
	m := NewMonitor(nil)
	c, _ := newTestCache[int](t, Options{Monitor: m})

	c.Set("a", 1, UseDefaultTTL)
	c.Get("a")
	c.Has("a")
	c.Get("b")

	s := m.Stats()
	require.Equal(t, int64(2), s.Hits)
	require.Equal(t, int64(1), s.Misses)
	require.InDelta(t, 2.0/3.0*100, s.HitRate, 1e-9)
}

func TestMonitor_SharedAcrossInstances(t *testing.T) {
	m := NewMonitor(nil)
	a, _ := newTestCache[int](t, Options{Monitor: m})
	b, _ := newTestCache[string](t, Options{Monitor: m})

	a.Get("x")
	b.Get("y")
	require.Equal(t, int64(2), m.Stats().Misses)
}

func TestMonitor_ReportsEveryN(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewMonitor(zap.New(core))

	for i := 0; i < 5; i++ {
		m.RecordHit(2)
	}
	require.Equal(t, 2, logs.FilterMessage("cache stats").Len())
}
