// Package container provides dependency injection for the parish backend.
package container

import (
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// Container holds every shared dependency: the database, repositories,
// services, the logger and the performance tracker.
type Container struct {
	DB          *database.DB
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker

	SettingsRepo  *settings.Repository
	NewsRepo      *content.NewsRepository
	EventRepo     *content.EventRepository
	GroupRepo     *content.GroupRepository
	RecordingRepo *content.RecordingRepository
	FAQRepo       *content.FAQRepository
	ContactRepo   *content.ContactRepository
	GalleryRepo   *content.GalleryRepository

	AuthService     *services.AuthService
	VerseService    *services.VerseService
	FacebookService *services.FacebookService
	YouTubeService  *services.YouTubeService
	CalendarService *services.CalendarService
}

// New creates a fully wired dependency container
func New(db *database.DB, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) (*Container, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	settingsRepo := settings.NewRepository(db)

	c := &Container{
		DB:          db,
		Logger:      logger,
		PerfTracker: perfTracker,

		SettingsRepo:  settingsRepo,
		NewsRepo:      content.NewNewsRepository(db),
		EventRepo:     content.NewEventRepository(db),
		GroupRepo:     content.NewGroupRepository(db),
		RecordingRepo: content.NewRecordingRepository(db),
		FAQRepo:       content.NewFAQRepository(db),
		ContactRepo:   content.NewContactRepository(db),
		GalleryRepo:   content.NewGalleryRepository(db),

		AuthService: services.NewAuthService(settingsRepo, config.JWTSecret, config.AdminTokenTTL, logger),
		VerseService: services.NewVerseService(
			config.VerseAPIKey, config.VerseAPIURL,
			config.VerseFetchTimeout, config.VerseCacheTTL, logger),
		FacebookService: services.NewFacebookService(
			config.FacebookPageToken, config.FacebookPageSlug, config.FacebookGraphBaseURL,
			config.FacebookFetchTimeout, config.FacebookCacheTTL, logger),
		YouTubeService: services.NewYouTubeService(
			config.YouTubeFeedURL, config.YouTubeChannelTitle,
			config.YouTubeFetchTimeout, config.YouTubeCacheTTL, logger),
		CalendarService: services.NewCalendarService(
			config.CalendarICalURL, config.CalendarFetchTimeout, config.CalendarCacheTTL,
			services.DefaultEventClassifier(), logger),
	}

	logger.Startup().Info("Dependency container initialized")
	return c, nil
}

// Close releases the container's resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
