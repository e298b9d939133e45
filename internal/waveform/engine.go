// Package waveform is a headless playback engine: it tracks regions, the
// playhead, play state and zoom, and emits region events as the playhead
// crosses region bounds. Nothing is rendered.
package waveform

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventType names an engine event
type EventType string

const (
	EventReady         EventType = "ready"
	EventRegionEnter   EventType = "region-enter"
	EventRegionLeave   EventType = "region-leave"
	EventRegionClicked EventType = "region-clicked"
	EventRegionCreated EventType = "region-created"
	EventRegionUpdated EventType = "region-updated"
)

const (
	MinZoom     = 1
	MaxZoom     = 200
	DefaultZoom = 100
)

// Region is a time interval drawn on the clip
type Region struct {
	ID    string
	Start float64
	End   float64
}

func (r Region) contains(t float64) bool {
	return t >= r.Start && t < r.End
}

// Event is delivered to subscribers after the engine state has changed
type Event struct {
	Type   EventType
	Region Region
}

// Handler receives engine events
type Handler func(Event)

// DurationProber reports the length of an audio source in seconds
type DurationProber interface {
	Duration(ctx context.Context, source string) (float64, error)
}

// Engine is safe for concurrent use. Handlers run on the calling goroutine
// after the engine lock is released, so they may call back into the engine.
type Engine struct {
	mu       sync.Mutex
	prober   DurationProber
	logger   *zap.Logger
	source   string
	duration float64
	position float64
	playing  bool
	zoom     int
	regions  map[string]*Region
	order    []string
	inside   map[string]bool
	nextID   int
	handlers []Handler
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine that measures sources with prober
func New(prober DurationProber, opts ...Option) *Engine {
	e := &Engine{
		prober:  prober,
		logger:  zap.NewNop(),
		zoom:    DefaultZoom,
		regions: make(map[string]*Region),
		inside:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers h for every subsequent event
func (e *Engine) Subscribe(h Handler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()
}

func (e *Engine) emit(events ...Event) {
	e.mu.Lock()
	handlers := append([]Handler{}, e.handlers...)
	e.mu.Unlock()

	for _, ev := range events {
		for _, h := range handlers {
			h(ev)
		}
	}
}

// Load measures source and emits ready. Regions added before Load are kept.
func (e *Engine) Load(ctx context.Context, source string) error {
	duration, err := e.prober.Duration(ctx, source)
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}

	e.mu.Lock()
	e.source = source
	e.duration = duration
	e.position = 0
	e.playing = false
	e.mu.Unlock()

	e.logger.Debug("audio loaded", zap.String("source", source), zap.Float64("duration", duration))
	e.emit(Event{Type: EventReady})
	return nil
}

// Source returns the loaded audio source
func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Duration returns the clip length, 0 before Load
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// AddRegion creates a region programmatically. No event is emitted.
func (e *Engine) AddRegion(start, end float64) Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addLocked(start, end)
}

func (e *Engine) addLocked(start, end float64) Region {
	e.nextID++
	r := &Region{ID: fmt.Sprintf("region-%d", e.nextID), Start: start, End: end}
	e.regions[r.ID] = r
	e.order = append(e.order, r.ID)
	return *r
}

// DrawRegion creates a region the way a reviewer dragging on the waveform
// does, emitting region-created
func (e *Engine) DrawRegion(start, end float64) Region {
	e.mu.Lock()
	r := e.addLocked(start, end)
	e.mu.Unlock()

	e.emit(Event{Type: EventRegionCreated, Region: r})
	return r
}

// UpdateRegion moves a region programmatically. No event is emitted.
func (e *Engine) UpdateRegion(id string, start, end float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.regions[id]
	if !ok {
		return fmt.Errorf("unknown region %q", id)
	}
	r.Start, r.End = start, end
	return nil
}

// DragRegion moves a region as a reviewer would, emitting region-updated
func (e *Engine) DragRegion(id string, start, end float64) error {
	if err := e.UpdateRegion(id, start, end); err != nil {
		return err
	}
	e.mu.Lock()
	r := *e.regions[id]
	e.mu.Unlock()

	e.emit(Event{Type: EventRegionUpdated, Region: r})
	return nil
}

// Click emits region-clicked for id
func (e *Engine) Click(id string) error {
	e.mu.Lock()
	r, ok := e.regions[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("unknown region %q", id)
	}
	region := *r
	e.mu.Unlock()

	e.emit(Event{Type: EventRegionClicked, Region: region})
	return nil
}

// RemoveRegion deletes a region; unknown ids are ignored
func (e *Engine) RemoveRegion(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.regions, id)
	delete(e.inside, id)
	for i, rid := range e.order {
		if rid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Regions returns the regions in creation order
func (e *Engine) Regions() []Region {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Region, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.regions[id])
	}
	return out
}

// Play starts playback
func (e *Engine) Play() {
	e.mu.Lock()
	e.playing = true
	e.mu.Unlock()
}

// Pause stops playback
func (e *Engine) Pause() {
	e.mu.Lock()
	e.playing = false
	e.mu.Unlock()
}

// Playing reports whether playback is running
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Position returns the playhead in seconds
func (e *Engine) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// Skip moves the playhead by delta seconds, clamped to the clip
func (e *Engine) Skip(delta float64) {
	e.mu.Lock()
	events := e.seekLocked(e.position + delta)
	e.mu.Unlock()
	e.emit(events...)
}

// SeekTo moves the playhead to an absolute position
func (e *Engine) SeekTo(seconds float64) {
	e.mu.Lock()
	events := e.seekLocked(seconds)
	e.mu.Unlock()
	e.emit(events...)
}

// Advance moves the playhead forward by elapsed seconds when playing.
// Playback stops at the end of the clip.
func (e *Engine) Advance(elapsed float64) {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	events := e.seekLocked(e.position + elapsed)
	if e.position >= e.duration {
		e.playing = false
	}
	e.mu.Unlock()
	e.emit(events...)
}

// seekLocked moves the playhead and returns leave events before enter events
func (e *Engine) seekLocked(to float64) []Event {
	if to < 0 {
		to = 0
	}
	if to > e.duration {
		to = e.duration
	}
	e.position = to

	var leave, enter []Event
	for _, id := range e.order {
		r := e.regions[id]
		now := r.contains(to)
		switch {
		case now && !e.inside[id]:
			e.inside[id] = true
			enter = append(enter, Event{Type: EventRegionEnter, Region: *r})
		case !now && e.inside[id]:
			delete(e.inside, id)
			leave = append(leave, Event{Type: EventRegionLeave, Region: *r})
		}
	}
	return append(leave, enter...)
}

// Zoom sets pixels per second, clamped to [MinZoom, MaxZoom]
func (e *Engine) Zoom(level int) int {
	if level < MinZoom {
		level = MinZoom
	}
	if level > MaxZoom {
		level = MaxZoom
	}
	e.mu.Lock()
	e.zoom = level
	e.mu.Unlock()
	return level
}

// ZoomLevel returns the current zoom
func (e *Engine) ZoomLevel() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}
