package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		origins        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "preflight request",
			method:         http.MethodOptions,
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "wildcard origin",
			origins:        []string{"*"},
			method:         http.MethodGet,
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "listed origin",
			origins:        []string{"https://annotate.example.com"},
			method:         http.MethodGet,
			origin:         "https://annotate.example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://annotate.example.com",
		},
		{
			name:           "unlisted origin",
			origins:        []string{"https://annotate.example.com"},
			method:         http.MethodGet,
			origin:         "https://evil.example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins...))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
			if tt.method == http.MethodOptions {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		method         string
		bodySize       int
		expectedStatus int
	}{
		{"small POST", http.MethodPost, 10, http.StatusOK},
		{"oversized POST", http.MethodPost, 100, http.StatusRequestEntityTooLarge},
		{"oversized PATCH", http.MethodPatch, 100, http.StatusRequestEntityTooLarge},
		{"GET is not limited", http.MethodGet, 100, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestSizeLimit(50))
			router.Handle(tt.method, "/test", func(c *gin.Context) {
				if _, err := io.ReadAll(c.Request.Body); err != nil {
					c.AbortWithStatus(http.StatusRequestEntityTooLarge)
					return
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiters := &sync.Map{}
	stop := make(chan struct{})
	defer close(stop)
	var once sync.Once

	router := gin.New()
	router.Use(PerClientRateLimit(limiters, stop, &once, 1, 2))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "limits are per client")

	_, ok := limiters.Load("10.0.0.1")
	assert.True(t, ok)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/bad"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
	}
}
