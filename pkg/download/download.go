package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotAudio is returned when the server answers with a non-audio body
	ErrNotAudio = errors.New("response is not audio")
	// ErrTooLarge is returned when a clip exceeds MaxSize
	ErrTooLarge = errors.New("clip exceeds size limit")
)

// Options configures the download behavior
type Options struct {
	MaxSize       int64         // Maximum file size in bytes (0 = no limit)
	Timeout       time.Duration // Download timeout
	ProgressFunc  ProgressFunc  // Optional progress callback
	UserAgent     string
	ValidateAudio bool // Reject bodies whose Content-Type is not audio
	Overwrite     bool // Replace an existing file instead of failing
}

// ProgressFunc is called during download to report progress
type ProgressFunc func(downloaded, total int64)

// DefaultOptions returns default download options
func DefaultOptions() Options {
	return Options{
		MaxSize:       200 * 1024 * 1024,
		Timeout:       2 * time.Minute,
		UserAgent:     "annotator/1.0",
		ValidateAudio: true,
	}
}

// Result describes a stored clip
type Result struct {
	FilePath      string
	ContentType   string
	ContentLength int64
	ETag          string
	LastModified  time.Time
}

// Downloader copies clips served by the dataset API to local files
type Downloader struct {
	client  *http.Client
	options Options
	logger  *zap.Logger
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options Options, logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
		logger:  logger,
	}
}

// Fetch downloads url into dir under name. The file is written to a
// temporary name first and renamed once complete.
func (d *Downloader) Fetch(ctx context.Context, url, dir, name string) (*Result, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	dest := filepath.Join(dir, name)
	if !d.options.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return nil, fmt.Errorf("%s already exists", dest)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "audio/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if d.options.ValidateAudio && !isAudioContentType(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrNotAudio, contentType)
	}
	if d.options.MaxSize > 0 && resp.ContentLength > d.options.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, resp.ContentLength, d.options.MaxSize)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	written, err := d.copy(resp.Body, tmp, resp.ContentLength)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to store clip: %w", err)
	}

	d.logger.Debug("clip downloaded",
		zap.String("url", url),
		zap.String("path", dest),
		zap.Int64("bytes", written))

	result := &Result{
		FilePath:      dest,
		ContentType:   contentType,
		ContentLength: written,
		ETag:          resp.Header.Get("ETag"),
	}
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		if t, err := http.ParseTime(lastMod); err == nil {
			result.LastModified = t
		}
	}
	return result, nil
}

// copy streams src into dst, failing once MaxSize is exceeded
func (d *Downloader) copy(src io.Reader, dst io.Writer, totalSize int64) (int64, error) {
	reader := src
	if d.options.ProgressFunc != nil {
		reader = &progressReader{reader: src, total: totalSize, callback: d.options.ProgressFunc}
	}
	if d.options.MaxSize <= 0 {
		return io.Copy(dst, reader)
	}

	n, err := io.Copy(dst, io.LimitReader(reader, d.options.MaxSize+1))
	if err != nil {
		return n, err
	}
	if n > d.options.MaxSize {
		return n, ErrTooLarge
	}
	return n, nil
}

func isAudioContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "application/octet-stream")
}

// progressReader wraps a reader to report progress
type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	callback   ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.downloaded += int64(n)
		pr.callback(pr.downloaded, pr.total)
	}
	return n, err
}
