// Package session composes the cursor, segment store, label binding and
// command dispatcher into one annotation session per open data item.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/commands"
	"github.com/killallgit/annotator/internal/services/cursor"
	"github.com/killallgit/annotator/internal/services/labels"
	"github.com/killallgit/annotator/internal/services/segments"
	"github.com/killallgit/annotator/internal/waveform"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Settings tune session behavior
type Settings struct {
	AudioPathPrefix string
	DefaultZoom     int
	SmallStep       float64
	LargeStep       float64
}

// DefaultSettings mirror the original workstation
func DefaultSettings() Settings {
	return Settings{
		AudioPathPrefix: "/audios/",
		DefaultZoom:     waveform.DefaultZoom,
		SmallStep:       commands.DefaultSmallStep,
		LargeStep:       commands.DefaultLargeStep,
	}
}

// Controller opens sessions
type Controller struct {
	deps     Dependencies
	settings Settings
	resolver *cursor.Resolver
	logger   *zap.Logger
}

// ControllerOption is a functional option for configuring the controller
type ControllerOption func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSettings overrides the default settings
func WithSettings(s Settings) ControllerOption {
	return func(c *Controller) {
		c.settings = s
	}
}

// NewController creates a controller over deps
func NewController(deps Dependencies, opts ...ControllerOption) *Controller {
	c := &Controller{
		deps:     deps,
		settings: DefaultSettings(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = cursor.NewResolver(deps.Data, c.logger)
	return c
}

// Open starts a session on target. The label schema and item detail are
// required; a missing page window only costs the neighbor links.
func (c *Controller) Open(ctx context.Context, target models.Target) (*Session, error) {
	if target.Page < 1 {
		target.Page = 1
	}
	if target.Active == "" {
		target.Active = models.StatusPending
	}

	logger := c.logger.With(
		zap.String("session_id", uuid.NewString()),
		zap.Int64("data_id", target.DataID),
	)

	var (
		schema    *labels.Schema
		detail    *models.DataDetail
		cur       models.Cursor
		cursorErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := c.deps.Data.GetLabels(gctx)
		if err != nil {
			return apperrors.SchemaLoadError("labels", err)
		}
		schema = labels.NewSchema(raw)
		return nil
	})
	g.Go(func() error {
		d, err := c.deps.Data.GetData(gctx, target.DataID)
		if err != nil {
			return apperrors.SchemaLoadError("data item", err).WithDetail("data_id", target.DataID)
		}
		detail = d
		return nil
	})
	g.Go(func() error {
		cur, cursorErr = c.resolveCursor(gctx, target)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("session open failed", zap.Error(err))
		return nil, err
	}

	s := &Session{
		ctx:      context.WithoutCancel(ctx),
		ctrl:     c,
		target:   target,
		detail:   detail,
		schema:   schema,
		cursor:   cur,
		engine:   c.deps.NewEngine(),
		marked:   detail.IsMarkedForReview,
		logger:   logger,
		segments: segments.NewStore(c.deps.Segments, target.DataID, segments.WithLogger(logger)),
	}
	s.dispatcher = commands.NewDispatcher(s,
		commands.WithSteps(c.settings.SmallStep, c.settings.LargeStep),
		commands.WithLogger(logger))

	if cursorErr != nil {
		msg := "Could not load neighboring items"
		if errors.Is(cursorErr, cursor.ErrNotFound) {
			msg = "Cannot locate item in this view"
		}
		s.alert = &Alert{Kind: AlertError, Message: msg}
	}

	s.engine.Subscribe(s.handleEvent)

	for _, seg := range detail.Segmentations {
		region := s.engine.AddRegion(seg.StartTime, seg.EndTime)
		s.segments.Hydrate(region.ID, seg)
	}
	if regions := s.engine.Regions(); len(regions) > 0 {
		s.selected = regions[0].ID
	}

	s.zoom = s.engine.Zoom(c.settings.DefaultZoom)
	if err := s.engine.Load(ctx, c.audioURL(detail.Filename)); err != nil {
		logger.Error("audio load failed", zap.Error(err))
		return nil, apperrors.ExternalServiceError("waveform", err).WithDetail("filename", detail.Filename)
	}

	logger.Info("session opened",
		zap.String("filename", detail.Filename),
		zap.Int("segmentations", len(detail.Segmentations)),
		zap.Bool("has_previous", cur.Previous != nil),
		zap.Bool("has_next", cur.Next != nil))
	return s, nil
}

func (c *Controller) resolveCursor(ctx context.Context, target models.Target) (models.Cursor, error) {
	window, err := c.deps.Data.FetchPage(ctx, target.Page, target.Active)
	if err != nil {
		c.logger.Warn("page window unavailable",
			zap.Int("page", target.Page),
			zap.String("active", string(target.Active)),
			zap.Error(err))
		return models.Cursor{}, err
	}
	if c.deps.Pages != nil {
		c.deps.Pages.RememberPage(ctx, target.Active, target.Page)
	}

	cur, err := c.resolver.Resolve(ctx, window, target.DataID)
	if err != nil {
		c.logger.Warn("item not in its page window",
			zap.Int64("data_id", target.DataID),
			zap.Int("page", target.Page),
			zap.Error(err))
		return models.Cursor{}, err
	}
	return cur, nil
}

func (c *Controller) audioURL(filename string) string {
	prefix := c.settings.AudioPathPrefix
	if prefix == "" {
		return filename
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + filename
}
