package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
)

const ytFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:yt="http://www.youtube.com/xml/schemas/2015">
  <title>Parafia EA Wisła Jawornik</title>
  <entry>
    <id>yt:video:abc123</id>
    <title>Kazanie niedzielne</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <published>2026-02-22T10:00:00+00:00</published>
  </entry>
  <entry>
    <id>urn:entry:2</id>
    <title>Rozważanie</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def456&amp;feature=share"/>
    <published>2026-02-15T10:00:00+00:00</published>
  </entry>
</feed>`

func TestYouTubeService_FetchesAndNormalizes(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, ytFeed)
	}))
	defer server.Close()

	svc := NewYouTubeService(server.URL, "Fallback Title", time.Second, time.Minute, logging.NewSilentLogger())

	videos := svc.GetVideos(context.Background())
	require.Len(t, videos, 2)

	assert.Equal(t, "abc123", videos[0].ID, "id should come from the yt:video GUID")
	assert.Equal(t, "Kazanie niedzielne", videos[0].Title)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", videos[0].Thumbnail)
	assert.Equal(t, "Parafia EA Wisła Jawornik", videos[0].ChannelTitle)
	assert.NotEmpty(t, videos[0].Date)

	assert.Equal(t, "def456", videos[1].ID, "id should fall back to the v= query parameter")

	svc.GetVideos(context.Background())
	assert.Equal(t, int32(1), calls.Load(), "second call within TTL should hit the cache")
}

func TestYouTubeService_DegradesToLastKnown(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, ytFeed)
	}))
	defer server.Close()

	svc := NewYouTubeService(server.URL, "Fallback", time.Second, 0, logging.NewSilentLogger())

	require.Len(t, svc.GetVideos(context.Background()), 2)

	fail.Store(true)
	degraded := svc.GetVideos(context.Background())
	assert.Len(t, degraded, 2, "feed failure should serve the last known list")
}

func TestYouTubeService_EmptyOnColdFailure(t *testing.T) {
	svc := NewYouTubeService("http://127.0.0.1:0/feed", "Fallback", time.Second, time.Minute, logging.NewSilentLogger())
	assert.Empty(t, svc.GetVideos(context.Background()))
}

func TestExtractVideoID(t *testing.T) {
	assert.Equal(t, "v1", extractVideoID(&gofeed.Item{GUID: "yt:video:v1"}))
	assert.Equal(t, "v2", extractVideoID(&gofeed.Item{Link: "https://www.youtube.com/watch?v=v2"}))
	assert.Equal(t, "v3", extractVideoID(&gofeed.Item{Link: "https://www.youtube.com/watch?v=v3&t=10"}))
	assert.Equal(t, "", extractVideoID(&gofeed.Item{Link: "https://www.youtube.com/channel/x"}))
}
