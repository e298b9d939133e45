// Package dataset is the HTTP client for the dataset and segmentation APIs of
// one project.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/killallgit/annotator/internal/services/cache"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited indicates the API answered 429
	ErrRateLimited = errors.New("dataset api rate limit exceeded")

	// ErrInvalidResponse indicates a body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from dataset api")
)

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// Config holds configuration for the client
type Config struct {
	BaseURL   string
	ProjectID int64
	Token     string

	Timeout           time.Duration // Default: 15s
	RequestsPerMinute int           // Default: 600
	BurstSize         int           // Default: 10
	LabelCacheTTL     time.Duration // Default: 10m
	UserAgent         string
}

// Client talks to one project of the annotation backend
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
	logger     *zap.Logger
	config     Config

	metrics clientMetrics
}

type clientMetrics struct {
	requests      atomic.Int64
	errors        atomic.Int64
	rateLimitHits atomic.Int64
}

// Metrics is a snapshot of client usage
type Metrics struct {
	Requests      int64
	Errors        int64
	RateLimitHits int64
}

// Option configures a Client
type Option func(*Client)

// WithCache caches the label schema in c
func WithCache(c cache.Cache) Option {
	return func(cl *Client) {
		cl.cache = c
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		if hc != nil {
			cl.httpClient = hc
		}
	}
}

// NewClient creates a client for cfg.ProjectID
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 600
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 10
	}
	if cfg.LabelCacheTTL == 0 {
		cfg.LabelCacheTTL = 10 * time.Minute
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "annotator/1.0"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.BurstSize,
		),
		logger: zap.NewNop(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectID returns the project this client is scoped to
func (c *Client) ProjectID() int64 {
	return c.config.ProjectID
}

// Metrics returns usage counters
func (c *Client) Metrics() Metrics {
	return Metrics{
		Requests:      c.metrics.requests.Load(),
		Errors:        c.metrics.errors.Load(),
		RateLimitHits: c.metrics.rateLimitHits.Load(),
	}
}

func (c *Client) projectPath(format string, args ...any) string {
	return fmt.Sprintf("/api/projects/%d", c.config.ProjectID) + fmt.Sprintf(format, args...)
}

// do sends one request and decodes a JSON answer into out. Requests are
// never retried; the caller decides whether to re-issue.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	c.metrics.requests.Add(1)

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		c.logger.Warn("dataset api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperrors.ExternalServiceError("dataset-api", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("dataset api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.errors.Add(1)
		return c.statusError(resp, method+" "+path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.errors.Add(1)
		return apperrors.ExternalServiceError("dataset-api", fmt.Errorf("%w: %v", ErrInvalidResponse, err))
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, endpoint string) error {
	var payload struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &payload) != nil || payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: payload.Message, Endpoint: endpoint}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.Wrap(apiErr, apperrors.ErrCodeNotFound, payload.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrap(apiErr, apperrors.ErrCodeUnauthorized, payload.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Wrap(apiErr, apperrors.ErrCodeValidation, payload.Message)
	case http.StatusTooManyRequests:
		c.metrics.rateLimitHits.Add(1)
		return apperrors.Wrap(fmt.Errorf("%w: %w", ErrRateLimited, apiErr), apperrors.ErrCodeAPIRateLimit, payload.Message)
	default:
		return apperrors.ExternalServiceError("dataset-api", apiErr)
	}
}
