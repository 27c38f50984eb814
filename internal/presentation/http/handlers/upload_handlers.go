package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/security"
)

// UploadHandlers stores admin file uploads on disk under generated names.
// Uploaded files are served back under /uploads.
type UploadHandlers struct {
	uploadsDir    string
	maxBytes      int64
	maxVideoBytes int64
	settings      *settings.Repository
	logger        *logging.ChanneledLogger
}

// NewUploadHandlers creates upload handlers and ensures the uploads
// directory exists
func NewUploadHandlers(uploadsDir string, maxBytes, maxVideoBytes int64, settingsRepo *settings.Repository, logger *logging.ChanneledLogger) (*UploadHandlers, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &UploadHandlers{
		uploadsDir:    uploadsDir,
		maxBytes:      maxBytes,
		maxVideoBytes: maxVideoBytes,
		settings:      settingsRepo,
		logger:        logger,
	}, nil
}

// PostUpload handles POST /api/upload
func (h *UploadHandlers) PostUpload(c *gin.Context) {
	url, ok := h.saveUpload(c, h.maxBytes)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PostUploadVideo handles POST /api/upload-video. The stored URL becomes
// the hero video shown on the home page.
func (h *UploadHandlers) PostUploadVideo(c *gin.Context) {
	url, ok := h.saveUpload(c, h.maxVideoBytes)
	if !ok {
		return
	}
	if err := h.settings.Set("hero_video_url", url); err != nil {
		h.logger.Content().Error("Failed to store hero video URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// saveUpload writes the request's file field to the uploads directory
// under a ULID name so files sort by creation time
func (h *UploadHandlers) saveUpload(c *gin.Context, maxBytes int64) (string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return "", false
	}
	if file.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File too large"})
		return "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := security.GenerateULID() + ext
	dest := filepath.Join(h.uploadsDir, name)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		h.logger.Content().Error("Failed to store upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return "", false
	}

	h.logger.Content().Info("Stored upload", "name", name, "size", file.Size)
	return "/uploads/" + name, true
}
