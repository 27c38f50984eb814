package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/feeds"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/caching"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// YouTubeService fetches the channel's public RSS feed. No API key is
// involved; the feed is capped at the newest entries YouTube publishes.
type YouTubeService struct {
	feedURL      string
	channelTitle string
	parser       *gofeed.Parser
	fetchTimeout time.Duration
	cache        *caching.Cell[[]feeds.Video]
	logger       *logging.ChanneledLogger
}

// NewYouTubeService creates a YouTube service
func NewYouTubeService(feedURL, channelTitle string, timeout, cacheTTL time.Duration, logger *logging.ChanneledLogger) *YouTubeService {
	return &YouTubeService{
		feedURL:      feedURL,
		channelTitle: channelTitle,
		parser:       gofeed.NewParser(),
		fetchTimeout: timeout,
		cache:        caching.NewCell[[]feeds.Video](cacheTTL),
		logger:       logger,
	}
}

// GetVideos returns the cached videos when fresh, otherwise fetches the
// RSS feed. Upstream failures degrade to the last known list, then to an
// empty slice.
func (s *YouTubeService) GetVideos(ctx context.Context) []feeds.Video {
	start := time.Now()
	if videos, ok := s.cache.Get(); ok {
		s.logger.LogCacheOperation("serve", "youtube_videos", true, time.Since(start))
		return videos
	}

	videos, err := s.fetch(ctx)
	if err != nil {
		s.logger.Feeds().Error("YouTube RSS fetch failed", "error", err)
		if last, ok := s.cache.Last(); ok {
			return last
		}
		return []feeds.Video{}
	}

	s.cache.Set(videos)
	s.logger.LogCacheOperation("refresh", "youtube_videos", false, time.Since(start))
	return videos
}

// CacheFresh reports whether the next GetVideos will be served from cache
func (s *YouTubeService) CacheFresh() bool {
	_, ok := s.cache.Get()
	return ok
}

func (s *YouTubeService) fetch(ctx context.Context) ([]feeds.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channelTitle := feed.Title
	if channelTitle == "" {
		channelTitle = s.channelTitle
	}

	items := feed.Items
	if len(items) > config.YouTubeVideoLimit {
		items = items[:config.YouTubeVideoLimit]
	}

	videos := make([]feeds.Video, 0, len(items))
	for _, item := range items {
		videoID := extractVideoID(item)
		videos = append(videos, feeds.Video{
			ID:           videoID,
			Title:        item.Title,
			Date:         videoDate(item),
			Thumbnail:    fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID),
			ChannelTitle: channelTitle,
		})
	}

	s.logger.Feeds().Info("Fetched YouTube videos", "count", len(videos))
	return videos, nil
}

// extractVideoID reads the video id from the feed entry's yt:video GUID,
// falling back to the v= query parameter of the watch link
func extractVideoID(item *gofeed.Item) string {
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimPrefix(item.GUID, "yt:video:")
	}
	if _, after, found := strings.Cut(item.Link, "v="); found {
		if amp := strings.Index(after, "&"); amp >= 0 {
			return after[:amp]
		}
		return after
	}
	return ""
}

func videoDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(time.RFC3339)
	}
	return item.Published
}
