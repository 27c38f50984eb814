// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
)

// FeedHandlers serves the aggregated external feeds. Every endpoint
// returns 200 with an envelope; upstream failures surface as empty or
// last-known data, never as HTTP errors.
type FeedHandlers struct {
	verseService    *services.VerseService
	facebookService *services.FacebookService
	youtubeService  *services.YouTubeService
	calendarService *services.CalendarService
	settings        *settings.Repository
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewFeedHandlers creates feed handlers with injected dependencies
func NewFeedHandlers(
	verseService *services.VerseService,
	facebookService *services.FacebookService,
	youtubeService *services.YouTubeService,
	calendarService *services.CalendarService,
	settingsRepo *settings.Repository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *FeedHandlers {
	return &FeedHandlers{
		verseService:    verseService,
		facebookService: facebookService,
		youtubeService:  youtubeService,
		calendarService: calendarService,
		settings:        settingsRepo,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// recordCacheState counts the request as a cache hit or miss on its marker,
// feeding the aggregated ratios served by the admin stats endpoint
func recordCacheState(marker *performance.Marker, fresh bool) {
	if fresh {
		marker.AddCacheHit()
	} else {
		marker.AddCacheMiss()
	}
}

// GetWeeklyVerse handles GET /api/weekly-verse. A manual override entered
// by an admin short-circuits the provider entirely.
func (h *FeedHandlers) GetWeeklyVerse(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_weekly_verse")
	defer marker.Complete()

	manualText, ok, err := h.settings.Get("manual_verse_text")
	if err != nil {
		h.logger.Feeds().Error("Manual verse lookup failed", "error", err)
	}
	if err == nil && ok && manualText != "" {
		manualSource, _, _ := h.settings.Get("manual_verse_source")
		marker.SetSuccess(true)
		c.JSON(http.StatusOK, gin.H{"verse": services.ManualVerse(manualText, manualSource)})
		return
	}

	recordCacheState(marker, h.verseService.CacheFresh())
	verse := h.verseService.GetVerse(c.Request.Context())
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Weekly verse request served", "duration", time.Since(start), "manual", false)
	c.JSON(http.StatusOK, gin.H{"verse": verse})
}

// GetFacebookPosts handles GET /api/facebook-posts
func (h *FeedHandlers) GetFacebookPosts(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_facebook_posts")
	defer marker.Complete()

	if !h.facebookService.HasToken() {
		marker.SetSuccess(true)
		c.JSON(http.StatusOK, gin.H{
			"error":    "no_token",
			"posts":    []any{},
			"pageSlug": h.facebookService.PageSlug(),
		})
		return
	}

	recordCacheState(marker, h.facebookService.CacheFresh())
	posts := h.facebookService.GetPosts(c.Request.Context())
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Facebook posts request served", "duration", time.Since(start), "count", len(posts))
	c.JSON(http.StatusOK, gin.H{
		"error":    nil,
		"posts":    posts,
		"pageSlug": h.facebookService.PageSlug(),
	})
}

// GetYouTubeVideos handles GET /api/youtube-videos
func (h *FeedHandlers) GetYouTubeVideos(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_youtube_videos")
	defer marker.Complete()

	recordCacheState(marker, h.youtubeService.CacheFresh())
	videos := h.youtubeService.GetVideos(c.Request.Context())
	marker.SetSuccess(true)
	h.logger.Perf().Debug("YouTube videos request served", "duration", time.Since(start), "count", len(videos))
	c.JSON(http.StatusOK, gin.H{"error": nil, "videos": videos})
}

// GetCalendarEvents handles GET /api/calendar-events
func (h *FeedHandlers) GetCalendarEvents(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_calendar_events")
	defer marker.Complete()

	recordCacheState(marker, h.calendarService.CacheFresh())
	events := h.calendarService.GetEvents(c.Request.Context())
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Calendar events request served", "duration", time.Since(start), "count", len(events))
	c.JSON(http.StatusOK, gin.H{"error": nil, "events": events})
}
