package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/performance"
	"github.com/parafia-jawornik/parafia-go/internal/presentation/http/middleware"
)

// AuthHandlers contains the admin authentication HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	tokenTTL    time.Duration
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, tokenTTL time.Duration, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		tokenTTL:    tokenTTL,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/admin/login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_login")
	defer marker.Complete()

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password required"})
		return
	}

	token, err := h.authService.Login(req.Password)
	if errors.Is(err, services.ErrInvalidPassword) {
		marker.SetSuccess(false)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		return
	}
	if err != nil {
		h.logger.Auth().Error("Login failed", "error", err)
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.SetCookie(
		middleware.AdminAuthCookie,
		token,
		int(h.tokenTTL.Seconds()),
		"/",
		"",
		false,
		true,
	)

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

// GetSession handles GET /api/admin/session
func (h *AuthHandlers) GetSession(c *gin.Context) {
	token := middleware.CurrentToken(c)
	c.JSON(http.StatusOK, gin.H{"authenticated": token != "" && h.authService.ValidateToken(token)})
}

// PutPassword handles PUT /api/admin/password
func (h *AuthHandlers) PutPassword(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_change_password")
	defer marker.Complete()

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password required"})
		return
	}

	if err := h.authService.ChangePassword(req.Password); err != nil {
		h.logger.Auth().Error("Password change failed", "error", err)
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Password change failed"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PostLogout handles POST /api/admin/logout
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	c.SetCookie(middleware.AdminAuthCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
