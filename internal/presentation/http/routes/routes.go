// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/application/container"
	"github.com/parafia-jawornik/parafia-go/internal/presentation/http/handlers"
	"github.com/parafia-jawornik/parafia-go/internal/presentation/http/middleware"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) (*gin.Engine, error) {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded files are served straight from disk
	r.Static("/uploads", config.UploadsDir)

	feedHandlers := handlers.NewFeedHandlers(
		c.VerseService, c.FacebookService, c.YouTubeService, c.CalendarService,
		c.SettingsRepo, c.Logger, c.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(c.AuthService, config.AdminTokenTTL, c.Logger, c.PerfTracker)
	contentHandlers := handlers.NewContentHandlers(
		c.NewsRepo, c.EventRepo, c.GroupRepo, c.RecordingRepo,
		c.FAQRepo, c.ContactRepo, c.GalleryRepo, c.Logger, c.PerfTracker)
	settingsHandlers := handlers.NewSettingsHandlers(c.SettingsRepo, c.Logger)
	statsHandlers := handlers.NewStatsHandlers(c.PerfTracker, c.Logger)
	uploadHandlers, err := handlers.NewUploadHandlers(
		config.UploadsDir, config.MaxUploadBytes, config.MaxVideoUploadBytes,
		c.SettingsRepo, c.Logger)
	if err != nil {
		return nil, err
	}

	requireAdmin := middleware.AdminAuth(c.AuthService)

	api := r.Group("/api")
	{
		// Aggregated external feeds
		api.GET("/weekly-verse", feedHandlers.GetWeeklyVerse)
		api.GET("/facebook-posts", feedHandlers.GetFacebookPosts)
		api.GET("/youtube-videos", feedHandlers.GetYouTubeVideos)
		api.GET("/calendar-events", feedHandlers.GetCalendarEvents)

		// Admin session
		api.POST("/admin/login", authHandlers.PostLogin)
		api.GET("/admin/session", authHandlers.GetSession)
		api.POST("/admin/logout", authHandlers.PostLogout)
		api.PUT("/admin/password", requireAdmin, authHandlers.PutPassword)
		api.GET("/admin/stats", requireAdmin, statsHandlers.GetStats)

		// Manual verse override
		api.GET("/admin/manual-verse", settingsHandlers.GetManualVerse)
		api.PUT("/admin/manual-verse", requireAdmin, settingsHandlers.PutManualVerse)
		api.DELETE("/admin/manual-verse", requireAdmin, settingsHandlers.DeleteManualVerse)

		// Editable site texts and settings
		api.GET("/site-texts", settingsHandlers.GetSiteTexts)
		api.PUT("/site-texts/:key", requireAdmin, settingsHandlers.PutSiteText)
		api.GET("/admin/settings/:key", settingsHandlers.GetSetting)
		api.PUT("/admin/settings/:key", requireAdmin, settingsHandlers.PutSetting)

		// Uploads
		api.POST("/upload", requireAdmin, uploadHandlers.PostUpload)
		api.POST("/upload-video", requireAdmin, uploadHandlers.PostUploadVideo)

		// News
		api.GET("/news", contentHandlers.GetNews)
		api.POST("/news", requireAdmin, contentHandlers.CreateNews)
		api.PUT("/news/:id", requireAdmin, contentHandlers.UpdateNews)
		api.DELETE("/news/:id", requireAdmin, contentHandlers.DeleteNews)

		// Events
		api.GET("/events", contentHandlers.GetEvents)
		api.POST("/events", requireAdmin, contentHandlers.CreateEvent)
		api.PUT("/events/:id", requireAdmin, contentHandlers.UpdateEvent)
		api.DELETE("/events/:id", requireAdmin, contentHandlers.DeleteEvent)

		// Groups
		api.GET("/groups", contentHandlers.GetGroups)
		api.POST("/groups", requireAdmin, contentHandlers.CreateGroup)
		api.PUT("/groups/:id", requireAdmin, contentHandlers.UpdateGroup)
		api.DELETE("/groups/:id", requireAdmin, contentHandlers.DeleteGroup)

		// Recordings
		api.GET("/recordings", contentHandlers.GetRecordings)
		api.POST("/recordings", requireAdmin, contentHandlers.CreateRecording)
		api.PUT("/recordings/:id", requireAdmin, contentHandlers.UpdateRecording)
		api.DELETE("/recordings/:id", requireAdmin, contentHandlers.DeleteRecording)

		// FAQ
		api.GET("/faq", contentHandlers.GetFAQ)
		api.POST("/faq", requireAdmin, contentHandlers.CreateFAQ)
		api.PUT("/faq/:id", requireAdmin, contentHandlers.UpdateFAQ)
		api.DELETE("/faq/:id", requireAdmin, contentHandlers.DeleteFAQ)

		// Contact
		api.GET("/contact", contentHandlers.GetContact)
		api.POST("/contact", requireAdmin, contentHandlers.UpsertContact)
		api.PUT("/contact/:key", requireAdmin, contentHandlers.UpsertContactByKey)
		api.DELETE("/contact/:id", requireAdmin, contentHandlers.DeleteContact)

		// Galleries
		api.GET("/galleries", contentHandlers.GetGalleries)
		api.POST("/galleries", requireAdmin, contentHandlers.CreateGallery)
		api.PUT("/galleries/:id", requireAdmin, contentHandlers.UpdateGallery)
		api.DELETE("/galleries/:id", requireAdmin, contentHandlers.DeleteGallery)
	}

	return r, nil
}
