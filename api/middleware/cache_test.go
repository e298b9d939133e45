package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/internal/services/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedRouter(t *testing.T, enabled bool) (*gin.Engine, *cache.MemoryCache, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewMemoryCache(10)
	t.Cleanup(store.Stop)

	hits := 0
	router := gin.New()
	router.Use(ResponseCache(CacheConfig{Cache: store, DefaultTTL: time.Minute, Enabled: enabled}))
	router.GET("/api/projects/1/labels", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	router.GET("/missing", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusNotFound, gin.H{"message": "nope"})
	})
	router.POST("/api/projects/1/labels", func(c *gin.Context) {
		hits++
		c.Status(http.StatusCreated)
	})
	return router, store, &hits
}

func get(router *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	router.ServeHTTP(w, req)
	return w
}

func TestResponseCache(t *testing.T) {
	router, store, hits := setupCachedRouter(t, true)

	first := get(router, "/api/projects/1/labels", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get(router, "/api/projects/1/labels", nil)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, 1, *hits)

	etag := second.Header().Get("ETag")
	require.NotEmpty(t, etag)
	notModified := get(router, "/api/projects/1/labels", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, notModified.Code)

	bypass := get(router, "/api/projects/1/labels", http.Header{"Cache-Control": {"no-cache"}})
	assert.Equal(t, "BYPASS", bypass.Header().Get("X-Cache"))
	assert.Equal(t, 2, *hits)

	Invalidate(context.Background(), store, "/api/projects/1/labels")
	third := get(router, "/api/projects/1/labels", nil)
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"hits":3}`, third.Body.String())
}

func TestResponseCacheSkips(t *testing.T) {
	router, _, hits := setupCachedRouter(t, true)

	get(router, "/missing", nil)
	get(router, "/missing", nil)
	assert.Equal(t, 2, *hits, "error responses are not cached")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects/1/labels", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))

	disabled, _, disabledHits := setupCachedRouter(t, false)
	get(disabled, "/api/projects/1/labels", nil)
	get(disabled, "/api/projects/1/labels", nil)
	assert.Equal(t, 2, *disabledHits)
}

func TestGenerateCacheKey(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/data?page=2&active=all", nil)
	b := httptest.NewRequest(http.MethodGet, "/data?active=all&page=2", nil)
	assert.Equal(t, generateCacheKey(a), generateCacheKey(b))
	assert.Equal(t, "http:/data:active=all:page=2", generateCacheKey(a))
	assert.Equal(t, KeyForPath("/data"), generateCacheKey(httptest.NewRequest(http.MethodGet, "/data", nil)))
}
