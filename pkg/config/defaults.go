// Package config provides centralized default values for the parish backend
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvSecret(key string) string {
	// Like getEnvString but never logs the value.
	return os.Getenv(key)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database
	DBPath         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Uploads
	UploadsDir          string
	MaxUploadBytes      int64
	MaxVideoUploadBytes int64

	// Auth
	JWTSecret     string
	AdminTokenTTL time.Duration

	// Facebook Graph API
	FacebookPageToken    string
	FacebookPageSlug     string
	FacebookGraphBaseURL string
	FacebookFetchTimeout time.Duration
	FacebookCacheTTL     time.Duration

	// YouTube (public RSS, no API key)
	YouTubeChannelID    string
	YouTubeFeedURL      string
	YouTubeChannelTitle string
	YouTubeFetchTimeout time.Duration
	YouTubeCacheTTL     time.Duration

	// Google Calendar (public iCal)
	CalendarICalURL      string
	CalendarFetchTimeout time.Duration
	CalendarCacheTTL     time.Duration

	// Verse of the week provider
	VerseAPIKey       string
	VerseAPIURL       string
	VerseFetchTimeout time.Duration
	VerseCacheTTL     time.Duration
)

// Feed shaping limits. These mirror the upstream behavior the site was built
// around and have no configuration surface on purpose.
const (
	FacebookPostLimit   = 50
	YouTubeVideoLimit   = 40
	CalendarHorizonDays = 90
	CalendarEventLimit  = 6
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database
	DBPath = getEnvString("DB_PATH", "parafia.db")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)

	// Uploads
	UploadsDir = getEnvString("UPLOADS_DIR", "uploads")
	MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024
	MaxVideoUploadBytes = int64(getEnvInt("MAX_VIDEO_UPLOAD_MB", 200)) * 1024 * 1024

	// Auth
	JWTSecret = getEnvSecret("JWT_SECRET")
	AdminTokenTTL = getEnvDuration("ADMIN_TOKEN_TTL", 7*24*time.Hour)

	// Facebook
	FacebookPageToken = getEnvSecret("FACEBOOK_PAGE_TOKEN")
	FacebookPageSlug = getEnvString("FB_PAGE_SLUG", "wislajawornik")
	FacebookGraphBaseURL = getEnvString("FB_GRAPH_BASE_URL", "https://graph.facebook.com/v21.0")
	FacebookFetchTimeout = getEnvDuration("FB_FETCH_TIMEOUT", 10*time.Second)
	FacebookCacheTTL = time.Duration(getEnvInt("FB_CACHE_TTL_MINUTES", 5)) * time.Minute

	// YouTube
	YouTubeChannelID = getEnvString("YT_CHANNEL_ID", "UCYwTmxRhm2hZDWkeEZngc4g")
	YouTubeFeedURL = getEnvString("YT_FEED_URL", "https://www.youtube.com/feeds/videos.xml?channel_id="+YouTubeChannelID)
	YouTubeChannelTitle = getEnvString("YT_CHANNEL_TITLE", "Parafia EA Wisła Jawornik")
	YouTubeFetchTimeout = getEnvDuration("YT_FETCH_TIMEOUT", 10*time.Second)
	YouTubeCacheTTL = time.Duration(getEnvInt("YT_CACHE_TTL_MINUTES", 30)) * time.Minute

	// Google Calendar
	CalendarICalURL = getEnvString("GCAL_ICAL_URL", "https://calendar.google.com/calendar/ical/peajawornik%40gmail.com/public/basic.ics")
	CalendarFetchTimeout = getEnvDuration("GCAL_FETCH_TIMEOUT", 15*time.Second)
	CalendarCacheTTL = time.Duration(getEnvInt("GCAL_CACHE_TTL_MINUTES", 30)) * time.Minute

	// Verse of the week
	VerseAPIKey = getEnvSecret("BNCD_API_KEY")
	VerseAPIURL = getEnvString("BNCD_API_URL", "https://biblianacodzien.pl/bncd/api/open-node/")
	VerseFetchTimeout = getEnvDuration("BNCD_FETCH_TIMEOUT", 8*time.Second)
	VerseCacheTTL = time.Duration(getEnvInt("VERSE_CACHE_TTL_MINUTES", 60)) * time.Minute
}
