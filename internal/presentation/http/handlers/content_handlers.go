package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	entities "github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/content"
)

// ContentHandlers serves the admin-editable content store: news, events,
// groups, recordings, FAQ, contact info and galleries.
type ContentHandlers struct {
	news       *content.NewsRepository
	events     *content.EventRepository
	groups     *content.GroupRepository
	recordings *content.RecordingRepository
	faq        *content.FAQRepository
	contact    *content.ContactRepository
	galleries  *content.GalleryRepository

	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewContentHandlers creates content handlers with injected dependencies
func NewContentHandlers(
	news *content.NewsRepository,
	events *content.EventRepository,
	groups *content.GroupRepository,
	recordings *content.RecordingRepository,
	faq *content.FAQRepository,
	contact *content.ContactRepository,
	galleries *content.GalleryRepository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *ContentHandlers {
	return &ContentHandlers{
		news:        news,
		events:      events,
		groups:      groups,
		recordings:  recordings,
		faq:         faq,
		contact:     contact,
		galleries:   galleries,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

func (h *ContentHandlers) serverError(c *gin.Context, operation string, err error) {
	h.logger.WithOperation(logging.ChannelContent, operation).Error("Content operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
}

// ── News ──

func (h *ContentHandlers) GetNews(c *gin.Context) {
	items, err := h.news.List()
	if err != nil {
		h.serverError(c, "list_news", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateNews(c *gin.Context) {
	var item entities.News
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.news.Create(item)
	if err != nil {
		h.serverError(c, "create_news", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.news.Get(id)
	if err != nil {
		h.serverError(c, "update_news", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	// Binding over the stored row keeps fields the request omitted
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.news.Update(id, item)
	if err != nil {
		h.serverError(c, "update_news", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.news.Delete(id)
	if err != nil {
		h.serverError(c, "delete_news", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Events ──

func (h *ContentHandlers) GetEvents(c *gin.Context) {
	items, err := h.events.List()
	if err != nil {
		h.serverError(c, "list_events", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateEvent(c *gin.Context) {
	var item entities.Event
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.events.Create(item)
	if err != nil {
		h.serverError(c, "create_event", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.events.Get(id)
	if err != nil {
		h.serverError(c, "update_event", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.events.Update(id, item)
	if err != nil {
		h.serverError(c, "update_event", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.events.Delete(id)
	if err != nil {
		h.serverError(c, "delete_event", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Groups ──

func (h *ContentHandlers) GetGroups(c *gin.Context) {
	items, err := h.groups.List()
	if err != nil {
		h.serverError(c, "list_groups", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateGroup(c *gin.Context) {
	var item entities.Group
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.groups.Create(item)
	if err != nil {
		h.serverError(c, "create_group", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.groups.Get(id)
	if err != nil {
		h.serverError(c, "update_group", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.groups.Update(id, item)
	if err != nil {
		h.serverError(c, "update_group", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.groups.Delete(id)
	if err != nil {
		h.serverError(c, "delete_group", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Recordings ──

func (h *ContentHandlers) GetRecordings(c *gin.Context) {
	items, err := h.recordings.List()
	if err != nil {
		h.serverError(c, "list_recordings", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateRecording(c *gin.Context) {
	var item entities.Recording
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.recordings.Create(item)
	if err != nil {
		h.serverError(c, "create_recording", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateRecording(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.recordings.Get(id)
	if err != nil {
		h.serverError(c, "update_recording", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.recordings.Update(id, item)
	if err != nil {
		h.serverError(c, "update_recording", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteRecording(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.recordings.Delete(id)
	if err != nil {
		h.serverError(c, "delete_recording", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── FAQ ──

func (h *ContentHandlers) GetFAQ(c *gin.Context) {
	items, err := h.faq.List()
	if err != nil {
		h.serverError(c, "list_faq", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateFAQ(c *gin.Context) {
	var item entities.FAQ
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.faq.Create(item)
	if err != nil {
		h.serverError(c, "create_faq", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.faq.Get(id)
	if err != nil {
		h.serverError(c, "update_faq", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.faq.Update(id, item)
	if err != nil {
		h.serverError(c, "update_faq", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteFAQ(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.faq.Delete(id)
	if err != nil {
		h.serverError(c, "delete_faq", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Contact ──

// GetContact returns the contact fields as a key/value map
func (h *ContentHandlers) GetContact(c *gin.Context) {
	items, err := h.contact.List()
	if err != nil {
		h.serverError(c, "list_contact", err)
		return
	}
	result := map[string]string{}
	for _, item := range items {
		result[item.Key] = item.Value
	}
	c.JSON(http.StatusOK, result)
}

func (h *ContentHandlers) UpsertContact(c *gin.Context) {
	var item entities.ContactInfo
	if err := c.ShouldBindJSON(&item); err != nil || item.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "key and value required"})
		return
	}
	stored, err := h.contact.Upsert(item)
	if err != nil {
		h.serverError(c, "upsert_contact", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// UpsertContactByKey handles PUT /api/contact/:key
func (h *ContentHandlers) UpsertContactByKey(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "value required"})
		return
	}
	stored, err := h.contact.Upsert(entities.ContactInfo{Key: c.Param("key"), Value: req.Value})
	if err != nil {
		h.serverError(c, "upsert_contact", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *ContentHandlers) DeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.contact.Delete(id)
	if err != nil {
		h.serverError(c, "delete_contact", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ── Galleries ──

func (h *ContentHandlers) GetGalleries(c *gin.Context) {
	items, err := h.galleries.List()
	if err != nil {
		h.serverError(c, "list_galleries", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandlers) CreateGallery(c *gin.Context) {
	var item entities.GalleryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	created, err := h.galleries.Create(item)
	if err != nil {
		h.serverError(c, "create_gallery", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ContentHandlers) UpdateGallery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, found, err := h.galleries.Get(id)
	if err != nil {
		h.serverError(c, "update_gallery", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, _, err := h.galleries.Update(id, item)
	if err != nil {
		h.serverError(c, "update_gallery", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandlers) DeleteGallery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.galleries.Delete(id)
	if err != nil {
		h.serverError(c, "delete_gallery", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
