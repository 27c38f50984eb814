package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/application/services"
	"github.com/parafia-jawornik/parafia-go/internal/presentation/http/middleware"
)

func newAuthRouter(e *testEnv) (*gin.Engine, *services.AuthService) {
	authService := services.NewAuthService(e.settings, "test-secret", time.Hour, e.logger)
	h := NewAuthHandlers(authService, time.Hour, e.logger, e.tracker)

	r := gin.New()
	r.POST("/api/admin/login", h.PostLogin)
	r.GET("/api/admin/session", h.GetSession)
	r.POST("/api/admin/logout", h.PostLogout)
	r.PUT("/api/admin/password", middleware.AdminAuth(authService), h.PutPassword)
	r.PUT("/api/protected", middleware.AdminAuth(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, authService
}

func TestPostLogin_RequiresPassword(t *testing.T) {
	router, _ := newAuthRouter(newTestEnv(t))

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, _ := newAuthRouter(env)

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLogin_SetsCookieAndToken(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, authService := newAuthRouter(env)

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, true, body["ok"])
	token, ok := body["token"].(string)
	require.True(t, ok)
	assert.True(t, authService.ValidateToken(token))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.AdminAuthCookie, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminAuth_Middleware(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, _ := newAuthRouter(env)

	w := doJSON(t, router, http.MethodPut, "/api/protected", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "no token means no access")

	login := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	token := decodeMap(t, login)["token"].(string)

	req := httptest.NewRequest(http.MethodPut, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "bearer token grants access")

	req = httptest.NewRequest(http.MethodPut, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminAuthCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "cookie grants access")

	req = httptest.NewRequest(http.MethodPut, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPutPassword_ChangesAdminPassword(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, _ := newAuthRouter(env)

	w := doJSON(t, router, http.MethodPut, "/api/admin/password", map[string]string{"password": "nowe-haslo"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "password change requires an admin token")

	login := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	token := decodeMap(t, login)["token"].(string)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/password", strings.NewReader(`{"password":"nowe-haslo"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	w = doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "old password must stop working")

	w = doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "nowe-haslo"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPutPassword_RequiresPassword(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, _ := newAuthRouter(env)

	login := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	token := decodeMap(t, login)["token"].(string)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/password", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionAndLogout(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.SeedIfEmpty("admin123"))
	router, _ := newAuthRouter(env)

	w := doJSON(t, router, http.MethodGet, "/api/admin/session", nil)
	assert.Equal(t, false, decodeMap(t, w)["authenticated"])

	login := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{"password": "admin123"})
	token := decodeMap(t, login)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminAuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, true, decodeMap(t, rec)["authenticated"])

	w = doJSON(t, router, http.MethodPost, "/api/admin/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.AdminAuthCookie, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0, "logout must expire the cookie")
}
