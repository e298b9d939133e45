package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/internal/services/cache"
)

// CacheConfig holds configuration for cache middleware
type CacheConfig struct {
	Cache      cache.Cache
	DefaultTTL time.Duration
	Enabled    bool
}

// responseWriter captures response for caching
type responseWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// CachedResponse represents a cached HTTP response
type CachedResponse struct {
	Status      int       `json:"status"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type"`
	CachedAt    time.Time `json:"cached_at"`
	ETag        string    `json:"etag"`
}

// ResponseCache serves repeated GET requests from the cache until the entry
// expires or is invalidated with Invalidate
func ResponseCache(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.Enabled || config.Cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		if shouldBypassCache(c.Request) {
			c.Header("X-Cache", "BYPASS")
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := generateCacheKey(c.Request)

		var cached CachedResponse
		if cache.GetJSON(ctx, config.Cache, key, &cached) {
			if match := c.GetHeader("If-None-Match"); match != "" && match == cached.ETag {
				c.Header("ETag", cached.ETag)
				c.AbortWithStatus(http.StatusNotModified)
				return
			}
			c.Header("X-Cache", "HIT")
			c.Header("ETag", cached.ETag)
			c.Header("Age", fmt.Sprintf("%d", int(time.Since(cached.CachedAt).Seconds())))
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
			status:         http.StatusOK,
		}
		c.Writer = w

		c.Next()

		if w.status != http.StatusOK || w.body.Len() == 0 {
			return
		}
		entry := CachedResponse{
			Status:      w.status,
			Body:        w.body.Bytes(),
			ContentType: w.Header().Get("Content-Type"),
			CachedAt:    time.Now(),
			ETag:        generateETag(w.body.Bytes()),
		}
		_ = cache.SetJSON(ctx, config.Cache, key, entry, config.DefaultTTL)
	}
}

// Invalidate drops the cached GET response of path
func Invalidate(ctx context.Context, c cache.Cache, path string) {
	if c == nil {
		return
	}
	_ = c.Delete(ctx, KeyForPath(path))
}

// KeyForPath returns the cache key of a GET on path without a query string
func KeyForPath(path string) string {
	return "http:" + path
}

// shouldBypassCache checks if cache should be bypassed based on request headers
func shouldBypassCache(req *http.Request) bool {
	if req.Header.Get("Pragma") == "no-cache" {
		return true
	}
	cacheControl := req.Header.Get("Cache-Control")
	if cacheControl == "" {
		return false
	}

	for _, directive := range strings.Split(strings.ToLower(cacheControl), ",") {
		directive = strings.TrimSpace(directive)
		if directive == "no-cache" || directive == "no-store" || directive == "max-age=0" {
			return true
		}
	}
	return false
}

// generateCacheKey creates a unique key for the request
func generateCacheKey(req *http.Request) string {
	parts := []string{req.URL.Path}

	if req.URL.RawQuery != "" {
		params := req.URL.Query()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			for _, v := range params[k] {
				parts = append(parts, fmt.Sprintf("%s=%s", k, v))
			}
		}
	}

	return "http:" + strings.Join(parts, ":")
}

// generateETag creates an ETag for the response body
func generateETag(body []byte) string {
	hash := sha256.Sum256(body)
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(hash[:]))
}
