// Package commands maps keyboard intents to session actions.
package commands

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Intent is a named user command independent of the key that produced it
type Intent string

const (
	TogglePlay       Intent = "toggle-play"
	SeekBack         Intent = "seek-back"
	SeekForward      Intent = "seek-forward"
	SeekBackLarge    Intent = "seek-back-large"
	SeekForwardLarge Intent = "seek-forward-large"
	NextItem         Intent = "go-to-next-item"
	PreviousItem     Intent = "go-to-previous-item"
	SaveSegment      Intent = "save-segment"
	SkipFile         Intent = "skip-file"
)

const (
	DefaultSmallStep = 1.0
	DefaultLargeStep = 5.0
)

// ErrBlocked is returned when an intent's guard refuses it
var ErrBlocked = errors.New("command blocked")

// Actions is the session surface the dispatcher drives
type Actions interface {
	TogglePlay()
	Seek(deltaSeconds float64)
	HasNext() bool
	HasPrevious() bool
	Pending() bool
	Next() error
	Previous() error
	Save() error
	Skip() error
}

type entry struct {
	guard func(Actions) bool
	run   func(Actions) error
}

// Dispatcher is a fixed lookup table from intent to guarded action
type Dispatcher struct {
	actions Actions
	table   map[Intent]entry
	logger  *zap.Logger
}

// Option configures a Dispatcher
type Option func(*options)

type options struct {
	small, large float64
	logger       *zap.Logger
}

// WithSteps overrides the seek steps in seconds
func WithSteps(small, large float64) Option {
	return func(o *options) {
		if small > 0 {
			o.small = small
		}
		if large > 0 {
			o.large = large
		}
	}
}

// WithLogger sets the dispatcher logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDispatcher builds the intent table for actions
func NewDispatcher(actions Actions, opts ...Option) *Dispatcher {
	o := options{small: DefaultSmallStep, large: DefaultLargeStep, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	idle := func(a Actions) bool { return !a.Pending() }
	seek := func(delta float64) func(Actions) error {
		return func(a Actions) error {
			a.Seek(delta)
			return nil
		}
	}

	return &Dispatcher{
		actions: actions,
		logger:  o.logger,
		table: map[Intent]entry{
			TogglePlay: {run: func(a Actions) error {
				a.TogglePlay()
				return nil
			}},
			SeekBack:         {run: seek(-o.small)},
			SeekForward:      {run: seek(o.small)},
			SeekBackLarge:    {run: seek(-o.large)},
			SeekForwardLarge: {run: seek(o.large)},
			NextItem: {
				guard: func(a Actions) bool { return a.HasNext() && !a.Pending() },
				run:   Actions.Next,
			},
			PreviousItem: {
				guard: func(a Actions) bool { return a.HasPrevious() && !a.Pending() },
				run:   Actions.Previous,
			},
			SaveSegment: {guard: idle, run: Actions.Save},
			SkipFile:    {guard: idle, run: Actions.Skip},
		},
	}
}

// Dispatch runs the action for intent. Unknown intents are ignored and
// return nil; a refused guard returns ErrBlocked.
func (d *Dispatcher) Dispatch(intent Intent) error {
	e, ok := d.table[intent]
	if !ok {
		d.logger.Debug("ignoring unknown intent", zap.String("intent", string(intent)))
		return nil
	}
	if e.guard != nil && !e.guard(d.actions) {
		d.logger.Debug("intent blocked", zap.String("intent", string(intent)))
		return ErrBlocked
	}
	return e.run(d.actions)
}

// Known reports whether intent has an action
func (d *Dispatcher) Known(intent Intent) bool {
	_, ok := d.table[intent]
	return ok
}

// Bindings maps hotkey names to intents. command+ is the macOS spelling of
// ctrl+.
var Bindings = map[string]Intent{
	"space":               TogglePlay,
	"ctrl+left":           SeekBackLarge,
	"command+left":        SeekBackLarge,
	"ctrl+right":          SeekForwardLarge,
	"command+right":       SeekForwardLarge,
	"ctrl+shift+left":     SeekBack,
	"command+shift+left":  SeekBack,
	"ctrl+shift+right":    SeekForward,
	"command+shift+right": SeekForward,
	"ctrl+up":             NextItem,
	"command+up":          NextItem,
	"ctrl+down":           PreviousItem,
	"command+down":        PreviousItem,
	"ctrl+s":              SaveSegment,
	"command+s":           SaveSegment,
	"ctrl+shift+s":        SkipFile,
	"command+shift+s":     SkipFile,
}

// IntentForKey resolves a hotkey name. Key names are matched case
// insensitively with surrounding space trimmed.
func IntentForKey(key string) (Intent, bool) {
	intent, ok := Bindings[strings.ToLower(strings.TrimSpace(key))]
	return intent, ok
}
