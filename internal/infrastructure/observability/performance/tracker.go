package performance

import (
	"sync"
	"time"
)

// Tracker collects performance markers and aggregates recent metrics
type Tracker struct {
	markers []*Marker
	mu      sync.RWMutex
	started time.Time
	max     int
}

// DefaultMaxMarkers bounds marker retention; old markers are dropped FIFO.
const DefaultMaxMarkers = 5000

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers: make([]*Marker, 0),
		started: time.Now(),
		max:     DefaultMaxMarkers,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.markers = append(t.markers, marker)
	if len(t.markers) > t.max {
		t.markers = t.markers[len(t.markers)-t.max:]
	}

	return marker
}

// GetRecentMetrics returns completed markers started within the given window
func (t *Tracker) GetRecentMetrics(within time.Duration) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := time.Now().Add(-within)
	var recent []Marker
	for _, m := range t.markers {
		if m.Completed && m.StartTime.After(cutoff) {
			recent = append(recent, *m)
		}
	}
	return recent
}

// GetOverallStats returns summary counters for the process lifetime
func (t *Tracker) GetOverallStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	completed := 0
	failed := 0
	var totalDuration time.Duration
	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		completed++
		totalDuration += m.Duration
		if !m.Success {
			failed++
		}
	}

	stats := map[string]any{
		"uptime":              time.Since(t.started).String(),
		"trackedMarkers":      len(t.markers),
		"completedOperations": completed,
		"failedOperations":    failed,
	}
	if completed > 0 {
		stats["avgDuration"] = (totalDuration / time.Duration(completed)).String()
	}
	return stats
}
