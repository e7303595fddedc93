package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/container"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		AppName:             "blog-test",
		StoreDriver:         "memory",
		UploadsDir:          t.TempDir(),
		UploadMaxBytes:      1 << 20,
		DefaultProfileImage: "default.jpg",
		JWTSecret:           "secret",
		TokenTTL:            time.Hour,
		DebugMetricsEnabled: debug,
	}
	app, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	InitModules(reg, app)
	reg.RegisterAll()
	return r
}

func call(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRequireToken(t *testing.T) {
	r := newEngine(t, false)
	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPost, "/api/blogs"},
		{http.MethodGet, "/api/blogs"},
		{http.MethodGet, "/api/blogs/some-id"},
		{http.MethodPut, "/api/blogs/some-id"},
		{http.MethodDelete, "/api/blogs/some-id"},
		{http.MethodPost, "/api/comments"},
		{http.MethodPost, "/api/comments/some-id/addcomments"},
		{http.MethodPost, "/api/comments/some-id/replies"},
		{http.MethodPut, "/api/comments/some-id"},
		{http.MethodDelete, "/api/comments/some-id"},
		{http.MethodPut, "/api/comments/some-id/replies/r1"},
		{http.MethodDelete, "/api/comments/some-id/replies/r1"},
	}
	for _, p := range protected {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := call(r, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			rec = call(r, p.method, p.path, "not-a-jwt", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	r := newEngine(t, false)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/blogs/public", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/api/blogs/search", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/api/comments/blog/nope", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/uploads/nope.png", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/api/debug/vars", "", nil).Code)
}

func TestSignupThenProfile(t *testing.T) {
	r := newEngine(t, false)

	rec := call(r, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		RequestID string `json:"request_id"`
		Data      struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.RequestID)

	rec = call(r, http.MethodGet, "/api/users/me", body.Data.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDebugVarsWhenEnabled(t *testing.T) {
	r := newEngine(t, true)
	rec := call(r, http.MethodGet, "/api/debug/vars", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memstats")
}
