package cache

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// MonitorStats is a point-in-time view of the hit/miss counters.
type MonitorStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Total   int64   `json:"total"`
	HitRate float64 `json:"hitRate"` // percentage, 0 when Total is 0
}

// Monitor counts lookups across every instance it is shared with.
type Monitor struct {
	hits   atomic.Int64
	misses atomic.Int64
	logger *zap.Logger
}

// NewMonitor returns a Monitor with zeroed counters.
func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{logger: logger}
}

// RecordHit counts a hit. With reportEvery > 0, the stats are logged every
// time the running total reaches a multiple of it.
func (m *Monitor) RecordHit(reportEvery int) {
	m.hits.Inc()
	m.maybeReport(reportEvery)
}

// RecordMiss counts a miss. See RecordHit for reportEvery.
func (m *Monitor) RecordMiss(reportEvery int) {
	m.misses.Inc()
	m.maybeReport(reportEvery)
}

func (m *Monitor) maybeReport(every int) {
	if every <= 0 {
		return
	}
	s := m.Stats()
	if s.Total%int64(every) != 0 {
		return
	}
	m.logger.Debug("cache stats",
		zap.Int64("hits", s.Hits),
		zap.Int64("misses", s.Misses),
		zap.Float64("hit_rate", s.HitRate),
	)
}

// Stats reads the counters.
func (m *Monitor) Stats() MonitorStats {
	hits := m.hits.Load()
	misses := m.misses.Load()
	total := hits + misses
	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return MonitorStats{
		Hits:    hits,
		Misses:  misses,
		Total:   total,
		HitRate: rate,
	}
}

// Reset zeroes both counters.
func (m *Monitor) Reset() {
	m.hits.Store(0)
	m.misses.Store(0)
}
