package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
)

const siteTextPrefix = "site_text_"

// SettingsHandlers serves the manual verse override, the editable site
// texts and the generic admin settings store.
type SettingsHandlers struct {
	settings *settings.Repository
	logger   *logging.ChanneledLogger
}

// NewSettingsHandlers creates settings handlers with injected dependencies
func NewSettingsHandlers(settingsRepo *settings.Repository, logger *logging.ChanneledLogger) *SettingsHandlers {
	return &SettingsHandlers{settings: settingsRepo, logger: logger}
}

// GetManualVerse handles GET /api/admin/manual-verse
func (h *SettingsHandlers) GetManualVerse(c *gin.Context) {
	text, _, err := h.settings.Get("manual_verse_text")
	if err != nil {
		h.serverError(c, "get_manual_verse", err)
		return
	}
	source, _, err := h.settings.Get("manual_verse_source")
	if err != nil {
		h.serverError(c, "get_manual_verse", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": orNil(text), "source": orNil(source)})
}

// PutManualVerse handles PUT /api/admin/manual-verse
func (h *SettingsHandlers) PutManualVerse(c *gin.Context) {
	var req struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text required"})
		return
	}
	if err := h.settings.Set("manual_verse_text", req.Text); err != nil {
		h.serverError(c, "put_manual_verse", err)
		return
	}
	if err := h.settings.Set("manual_verse_source", req.Source); err != nil {
		h.serverError(c, "put_manual_verse", err)
		return
	}
	h.logger.Content().Info("Manual verse set")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteManualVerse handles DELETE /api/admin/manual-verse. Clearing the
// text re-enables the provider feed.
func (h *SettingsHandlers) DeleteManualVerse(c *gin.Context) {
	if err := h.settings.Set("manual_verse_text", ""); err != nil {
		h.serverError(c, "delete_manual_verse", err)
		return
	}
	if err := h.settings.Set("manual_verse_source", ""); err != nil {
		h.serverError(c, "delete_manual_verse", err)
		return
	}
	h.logger.Content().Info("Manual verse cleared")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSiteTexts handles GET /api/site-texts, returning the editable labels
// as a map keyed without the storage prefix
func (h *SettingsHandlers) GetSiteTexts(c *gin.Context) {
	rows, err := h.settings.GetAllByPrefix(siteTextPrefix)
	if err != nil {
		h.serverError(c, "get_site_texts", err)
		return
	}
	result := map[string]string{}
	for _, row := range rows {
		result[strings.TrimPrefix(row.Key, siteTextPrefix)] = row.Value
	}
	c.JSON(http.StatusOK, result)
}

// PutSiteText handles PUT /api/site-texts/:key
func (h *SettingsHandlers) PutSiteText(c *gin.Context) {
	var req struct {
		Value *string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "value required"})
		return
	}
	if err := h.settings.Set(siteTextPrefix+c.Param("key"), *req.Value); err != nil {
		h.serverError(c, "put_site_text", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSetting handles GET /api/admin/settings/:key
func (h *SettingsHandlers) GetSetting(c *gin.Context) {
	value, _, err := h.settings.Get(c.Param("key"))
	if err != nil {
		h.serverError(c, "get_setting", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": orNil(value)})
}

// PutSetting handles PUT /api/admin/settings/:key
func (h *SettingsHandlers) PutSetting(c *gin.Context) {
	var req struct {
		Value *string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "value required"})
		return
	}
	if err := h.settings.Set(c.Param("key"), *req.Value); err != nil {
		h.serverError(c, "put_setting", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *SettingsHandlers) serverError(c *gin.Context, operation string, err error) {
	h.logger.Content().Error("Settings operation failed", "operation", operation, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
}

// orNil maps empty strings to JSON null, matching the frontend contract
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
