package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
)

func newFeedRouter(e *testEnv, upstreamURL, fbToken string) *gin.Engine {
	verse := services.NewVerseService("key", upstreamURL, time.Second, time.Minute, e.logger)
	facebook := services.NewFacebookService(fbToken, "wislajawornik", upstreamURL, time.Second, time.Minute, e.logger)
	youtube := services.NewYouTubeService(upstreamURL+"/feed", "Parafia", time.Second, time.Minute, e.logger)
	calendar := services.NewCalendarService(upstreamURL+"/basic.ics", time.Second, time.Minute, services.DefaultEventClassifier(), e.logger)

	h := NewFeedHandlers(verse, facebook, youtube, calendar, e.settings, e.logger, e.tracker)
	r := gin.New()
	r.GET("/api/weekly-verse", h.GetWeeklyVerse)
	r.GET("/api/facebook-posts", h.GetFacebookPosts)
	r.GET("/api/youtube-videos", h.GetYouTubeVideos)
	r.GET("/api/calendar-events", h.GetCalendarEvents)
	return r
}

func TestGetWeeklyVerse_ManualOverrideWins(t *testing.T) {
	env := newTestEnv(t)

	var upstreamCalls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		w.Write([]byte(`{"status": "ok", "week": "z api", "week_s": "x", "is_week": true}`))
	}))
	defer upstream.Close()

	require.NoError(t, env.settings.Set("manual_verse_text", "Wpisany ręcznie"))
	require.NoError(t, env.settings.Set("manual_verse_source", "J 3,16"))

	router := newFeedRouter(env, upstream.URL, "")
	w := doJSON(t, router, http.MethodGet, "/api/weekly-verse", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Verse struct {
			WeekText   *string `json:"week_text"`
			WeekSource *string `json:"week_source"`
			MonthText  *string `json:"month_text"`
			Name       string  `json:"name"`
			Manual     bool    `json:"manual"`
		} `json:"verse"`
	}
	decodeBody(t, w, &body)

	require.NotNil(t, body.Verse.WeekText)
	assert.Equal(t, "Wpisany ręcznie", *body.Verse.WeekText)
	assert.Equal(t, "J 3,16", *body.Verse.WeekSource)
	assert.Nil(t, body.Verse.MonthText)
	assert.Equal(t, "Ręczny wpis", body.Verse.Name)
	assert.True(t, body.Verse.Manual)
	assert.Zero(t, upstreamCalls.Load(), "manual override must not hit the provider")
}

func TestGetWeeklyVerse_EmptyOverrideFallsThrough(t *testing.T) {
	env := newTestEnv(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "week": "z api", "week_s": "Ps 1,1", "is_week": true, "name": "Tydzień"}`))
	}))
	defer upstream.Close()

	// A cleared override stores empty strings; the provider must take over
	require.NoError(t, env.settings.Set("manual_verse_text", ""))

	router := newFeedRouter(env, upstream.URL, "")
	w := doJSON(t, router, http.MethodGet, "/api/weekly-verse", nil)

	body := decodeMap(t, w)
	verse, ok := body["verse"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "z api", verse["week_text"])
	assert.Equal(t, false, verse["manual"])
}

func TestGetWeeklyVerse_MarkersCountCacheHits(t *testing.T) {
	env := newTestEnv(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "week": "z api", "week_s": "Ps 1,1", "is_week": true}`))
	}))
	defer upstream.Close()

	router := newFeedRouter(env, upstream.URL, "")
	doJSON(t, router, http.MethodGet, "/api/weekly-verse", nil)
	doJSON(t, router, http.MethodGet, "/api/weekly-verse", nil)

	var hits, misses int
	for _, m := range env.tracker.GetRecentMetrics(time.Minute) {
		if m.Operation == "get_weekly_verse" {
			hits += m.CacheHits
			misses += m.CacheMisses
		}
	}
	assert.Equal(t, 1, misses, "first request fetches from the provider")
	assert.Equal(t, 1, hits, "second request is served from cache")
}

func TestGetFacebookPosts_NoTokenEnvelope(t *testing.T) {
	env := newTestEnv(t)
	router := newFeedRouter(env, "http://127.0.0.1:0", "")

	w := doJSON(t, router, http.MethodGet, "/api/facebook-posts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "no_token", body["error"])
	assert.Equal(t, []any{}, body["posts"])
	assert.Equal(t, "wislajawornik", body["pageSlug"])
}

func TestGetFacebookPosts_SuccessEnvelope(t *testing.T) {
	env := newTestEnv(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/accounts":
			w.Write([]byte(`{"data": [{"id": "1", "name": "Parafia", "access_token": "t", "link": "https://facebook.com/wislajawornik"}]}`))
		case "/1/posts":
			w.Write([]byte(`{"data": [{"id": "1_1", "message": "Witamy"}]}`))
		}
	}))
	defer upstream.Close()

	router := newFeedRouter(env, upstream.URL, "user-token")
	w := doJSON(t, router, http.MethodGet, "/api/facebook-posts", nil)

	body := decodeMap(t, w)
	assert.Nil(t, body["error"])
	assert.Equal(t, "wislajawornik", body["pageSlug"])
	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	require.Len(t, posts, 1)
}

func TestGetYouTubeVideos_EnvelopeOnFailure(t *testing.T) {
	env := newTestEnv(t)
	router := newFeedRouter(env, "http://127.0.0.1:0", "")

	w := doJSON(t, router, http.MethodGet, "/api/youtube-videos", nil)
	require.Equal(t, http.StatusOK, w.Code, "feed failures must not surface as HTTP errors")

	body := decodeMap(t, w)
	assert.Nil(t, body["error"])
	assert.Equal(t, []any{}, body["videos"])
}

func TestGetCalendarEvents_EnvelopeOnFailure(t *testing.T) {
	env := newTestEnv(t)
	router := newFeedRouter(env, "http://127.0.0.1:0", "")

	w := doJSON(t, router, http.MethodGet, "/api/calendar-events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Nil(t, body["error"])
	assert.Equal(t, []any{}, body["events"])
}
