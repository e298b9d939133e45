// Package console hosts annotation sessions in a line-oriented terminal. It
// reads hotkey names and commands, feeds them to the open session and opens a
// fresh session whenever the session asks to navigate.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/session"
	"go.uber.org/zap"
)

const prompt = "> "

// ErrNothingToAnnotate is returned when no item matches the start filter
var ErrNothingToAnnotate = errors.New("no data items to annotate")

// Opener opens sessions; *session.Controller implements it
type Opener interface {
	Open(ctx context.Context, target models.Target) (*session.Session, error)
}

// PageReader reads the remembered page of a status filter
type PageReader interface {
	LastPage(ctx context.Context, active models.Status) int
}

// Host drives one session at a time and implements session.Router
type Host struct {
	opener Opener
	data   session.DataAPI
	pages  PageReader
	in     io.Reader
	out    io.Writer
	logger *zap.Logger

	mu      sync.Mutex
	pending *models.Target
	current *session.Session
}

// Option configures a Host
type Option func(*Host)

// WithLogger sets the host logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithPages lets Run resume on the last visited page
func WithPages(p PageReader) Option {
	return func(h *Host) {
		h.pages = p
	}
}

// New creates a host reading commands from in and writing to out
func New(data session.DataAPI, in io.Reader, out io.Writer, opts ...Option) *Host {
	h := &Host{
		data:   data,
		in:     in,
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind sets the opener. The controller needs the host as its router, so the
// two are wired in two steps.
func (h *Host) Bind(o Opener) {
	h.opener = o
}

// Navigate queues target; the loop switches sessions once the current
// command has settled
func (h *Host) Navigate(ctx context.Context, target models.Target) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = &target
	return nil
}

// Current returns the open session, or nil
func (h *Host) Current() *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Run opens start and processes input until EOF or quit. A start target
// without a data id opens the first item of the remembered page.
func (h *Host) Run(ctx context.Context, start models.Target) error {
	if h.opener == nil {
		return errors.New("console: no session opener bound")
	}
	if start.DataID == 0 {
		first, err := h.firstItem(ctx, start.Active)
		if err != nil {
			return err
		}
		start = first
	}
	if err := h.open(ctx, start); err != nil {
		return err
	}
	defer h.closeCurrent()

	h.render()
	scanner := bufio.NewScanner(h.in)
	fmt.Fprint(h.out, prompt)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(h.out, prompt)
			continue
		}

		quit, err := h.execute(ctx, line)
		if err != nil {
			fmt.Fprintf(h.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}

		h.Current().Wait()
		h.showAlert()
		if err := h.follow(ctx); err != nil {
			fmt.Fprintf(h.out, "error: %v\n", err)
		}
		fmt.Fprint(h.out, prompt)
	}
	return scanner.Err()
}

func (h *Host) firstItem(ctx context.Context, active models.Status) (models.Target, error) {
	if active == "" {
		active = models.StatusPending
	}
	page := 1
	if h.pages != nil {
		page = h.pages.LastPage(ctx, active)
	}

	window, err := h.data.FetchPage(ctx, page, active)
	if (err != nil || len(window.Items) == 0) && page > 1 {
		h.logger.Debug("remembered page empty, starting over", zap.Int("page", page))
		page = 1
		window, err = h.data.FetchPage(ctx, page, active)
	}
	if err != nil {
		return models.Target{}, fmt.Errorf("list %s items: %w", active, err)
	}
	if len(window.Items) == 0 {
		return models.Target{}, ErrNothingToAnnotate
	}
	return models.NeighborOf(window.Items[0], page, active).Target(), nil
}

func (h *Host) open(ctx context.Context, target models.Target) error {
	s, err := h.opener.Open(ctx, target)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
	h.logger.Info("session opened", zap.String("target", target.String()))
	return nil
}

func (h *Host) closeCurrent() {
	h.mu.Lock()
	s := h.current
	h.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

// follow switches to the queued target, if any. The current session stays
// open when the new one fails to load.
func (h *Host) follow(ctx context.Context) error {
	h.mu.Lock()
	next := h.pending
	h.pending = nil
	prev := h.current
	h.mu.Unlock()
	if next == nil {
		return nil
	}

	fmt.Fprintf(h.out, "opening %s\n", next.Filename)
	s, err := h.opener.Open(ctx, *next)
	if err != nil {
		return err
	}
	prev.Close()

	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
	h.logger.Info("session opened", zap.String("target", next.String()))
	h.render()
	return nil
}

func (h *Host) showAlert() {
	s := h.Current()
	if a := s.Alert(); a != nil {
		fmt.Fprintf(h.out, "[%s] %s\n", a.Kind, a.Message)
		s.DismissAlert()
	}
}
