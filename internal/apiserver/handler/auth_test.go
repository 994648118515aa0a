package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/apiserver/middleware"
	"github.com/arachchispices/spicestore/internal/apiserver/session"
	"github.com/arachchispices/spicestore/internal/common/config"
)

type testEnv struct {
	router   *gin.Engine
	store    database.Store
	sessions session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemory()
	sessions := session.NewMemoryStore()
	t.Cleanup(sessions.Close)

	sessionCfg := &config.SessionConfig{
		Type:       "memory",
		TTL:        config.Duration(time.Hour),
		CookieName: "spice_session",
	}
	lg := zap.NewNop()

	uploads, err := NewUploads(&config.UploadConfig{Dir: t.TempDir(), MaxSize: 5 << 20})
	require.NoError(t, err)

	authHandler := NewAuth(store, sessions, sessionCfg, lg)
	supplierHandler := NewSupplier(store, lg)
	orderHandler := NewOrder(store, uploads, lg)
	deliveryHandler := NewDelivery(store, lg)

	router := gin.New()
	router.Use(middleware.Sessions(sessions, sessionCfg.CookieName))

	auth := router.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/session", middleware.RequireSession(), authHandler.Session)

	suppliers := router.Group("/api/suppliers", middleware.RequireSession())
	suppliers.GET("", supplierHandler.List)
	suppliers.POST("", supplierHandler.Create)
	suppliers.PUT("/:id", supplierHandler.Update)
	suppliers.DELETE("/:id", supplierHandler.Delete)

	orders := router.Group("/api/orders", middleware.RequireSession())
	orders.POST("", orderHandler.Create)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Delete)

	deliveries := router.Group("/api/deliveries", middleware.RequireSession())
	deliveries.GET("/:id", deliveryHandler.Get)
	deliveries.POST("", deliveryHandler.Create)
	deliveries.PUT("/:id", deliveryHandler.Update)
	deliveries.PUT("/:id/status", middleware.RequireAdmin(), deliveryHandler.UpdateStatus)

	return &testEnv{router: router, store: store, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "spice_session", Value: cookie})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username, email, password, role string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "spice_session" {
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestRegisterValidationOrder(t *testing.T) {
	env := newTestEnv(t)

	// username violation wins even when the email is also bad
	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "a!",
		"email":    "not-an-email",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1002", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "not-an-email",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1003", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1004", errorCode(t, w))
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "different@example.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "E4091", errorCode(t, w))
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Result().Cookies())

	// password hash never leaks
	assert.NotContains(t, w.Body.String(), "secret1")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginDistinctErrors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E2001", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E2002", errorCode(t, w))
}

func TestLoginAndSession(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	cookie := env.login(t, "alice@example.com", "secret1")

	w := env.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		User database.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.User.Username)
	assert.Equal(t, database.RoleUser, body.User.Role)

	// no cookie, no session
	w = env.do(t, http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "E2003", errorCode(t, w))
}

func TestLogoutIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	cookie := env.login(t, "alice@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// the session is gone server-side even if the client kept the cookie
	w = env.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out again, or with no cookie at all, still succeeds
	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutViaGet(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1", "")
	cookie := env.login(t, "alice@example.com", "secret1")

	w := env.do(t, http.MethodGet, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/auth/session", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
