package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsRouter(e *testEnv) *gin.Engine {
	h := NewStatsHandlers(e.tracker, e.logger)
	r := gin.New()
	r.GET("/api/admin/stats", h.GetStats)
	return r
}

func TestGetStats_AggregatesRecentOperations(t *testing.T) {
	env := newTestEnv(t)

	m := env.tracker.StartOperation("get_weekly_verse")
	m.AddCacheMiss()
	m.SetSuccess(true)
	m.Complete()

	m = env.tracker.StartOperation("get_weekly_verse")
	m.AddCacheHit()
	m.SetSuccess(true)
	m.Complete()

	m = env.tracker.StartOperation("admin_login")
	m.SetSuccess(false)
	m.Complete()

	router := newStatsRouter(env)
	w := doJSON(t, router, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	overall, ok := body["overall"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), overall["completedOperations"])
	assert.Equal(t, float64(1), overall["failedOperations"])

	ops, ok := body["operations"].(map[string]any)
	require.True(t, ok)

	verse, ok := ops["get_weekly_verse"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), verse["count"])
	assert.Equal(t, float64(0), verse["failed"])
	assert.Equal(t, float64(1), verse["cacheHits"])
	assert.Equal(t, float64(1), verse["cacheMisses"])
	assert.Equal(t, 0.5, verse["cacheHitRatio"])

	login, ok := ops["admin_login"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), login["failed"])
}

func TestGetStats_EmptyTracker(t *testing.T) {
	env := newTestEnv(t)
	router := newStatsRouter(env)

	w := doJSON(t, router, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	ops, ok := body["operations"].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, ops)
}
