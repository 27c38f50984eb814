package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
)

// statsWindow bounds the per-operation breakdown to recent traffic
const statsWindow = 15 * time.Minute

// StatsHandlers exposes the performance tracker to the admin panel
type StatsHandlers struct {
	perfTracker *performance.Tracker
	logger      *logging.ChanneledLogger
}

// NewStatsHandlers creates stats handlers with injected dependencies
func NewStatsHandlers(perfTracker *performance.Tracker, logger *logging.ChanneledLogger) *StatsHandlers {
	return &StatsHandlers{
		perfTracker: perfTracker,
		logger:      logger,
	}
}

type operationSummary struct {
	count    int
	failed   int
	duration time.Duration
	cache    performance.Marker
}

// GetStats handles GET /api/admin/stats. It reports process-lifetime
// counters plus a per-operation breakdown of the recent window, including
// the cache hit ratio of the feed endpoints.
func (h *StatsHandlers) GetStats(c *gin.Context) {
	recent := h.perfTracker.GetRecentMetrics(statsWindow)

	summaries := map[string]*operationSummary{}
	for _, m := range recent {
		s := summaries[m.Operation]
		if s == nil {
			s = &operationSummary{}
			summaries[m.Operation] = s
		}
		s.count++
		if !m.Success {
			s.failed++
		}
		s.duration += m.Duration
		s.cache.CacheHits += m.CacheHits
		s.cache.CacheMisses += m.CacheMisses
	}

	operations := map[string]gin.H{}
	for op, s := range summaries {
		operations[op] = gin.H{
			"count":         s.count,
			"failed":        s.failed,
			"avgDuration":   (s.duration / time.Duration(s.count)).String(),
			"cacheHits":     s.cache.CacheHits,
			"cacheMisses":   s.cache.CacheMisses,
			"cacheHitRatio": s.cache.GetCacheHitRatio(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"overall":    h.perfTracker.GetOverallStats(),
		"operations": operations,
		"window":     statsWindow.String(),
	})
}
