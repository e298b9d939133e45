package session

import (
	"context"
	"errors"
	"sync"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/commands"
	"github.com/killallgit/annotator/internal/services/labels"
	"github.com/killallgit/annotator/internal/services/segments"
	"github.com/killallgit/annotator/internal/waveform"
	"go.uber.org/zap"
)

// NoTranscription is shown when the playhead is outside every region
const NoTranscription = "–"

// AlertKind distinguishes success from error messages
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a dismissible message for the reviewer
type Alert struct {
	Kind    AlertKind
	Message string
}

// Session is one open data item. Mutations take the busy flag synchronously
// and finish in the background; Wait or Close blocks until they settle.
type Session struct {
	ctx        context.Context
	ctrl       *Controller
	engine     Engine
	segments   *segments.Store
	dispatcher *commands.Dispatcher
	logger     *zap.Logger

	wg sync.WaitGroup
	// follow counts follow-up navigations; Close does not wait for them
	follow sync.WaitGroup

	mu       sync.Mutex
	target   models.Target
	detail   *models.DataDetail
	schema   *labels.Schema
	cursor   models.Cursor
	selected string
	current  string
	busy     bool
	closed   bool
	marked   bool
	zoom     int
	alert    *Alert
}

// Target returns the item this session was opened on
func (s *Session) Target() models.Target {
	return s.target
}

// Detail returns the item record as loaded
func (s *Session) Detail() models.DataDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.detail
}

// Schema returns the project label schema
func (s *Session) Schema() *labels.Schema {
	return s.schema
}

// Cursor returns the resolved neighbors
func (s *Session) Cursor() models.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Segments returns the current segments in drawing order
func (s *Session) Segments() []models.Segment {
	return s.segments.List()
}

// Selected returns the selected segment, if any
func (s *Session) Selected() (models.Segment, bool) {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()
	if id == "" {
		return models.Segment{}, false
	}
	return s.segments.Get(id)
}

// Engine exposes the waveform engine driving this session
func (s *Session) Engine() Engine {
	return s.engine
}

// Dispatch routes a keyboard intent through the command table
func (s *Session) Dispatch(intent commands.Intent) error {
	return s.dispatcher.Dispatch(intent)
}

// Handles reports whether intent names a session command
func (s *Session) Handles(intent commands.Intent) bool {
	return s.dispatcher.Known(intent)
}

// HasNext reports whether a next item was resolved
func (s *Session) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Next != nil
}

// HasPrevious reports whether a previous item was resolved
func (s *Session) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Previous != nil
}

// Pending reports whether a mutation is in flight
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// MarkedForReview reports the item's review flag
func (s *Session) MarkedForReview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

// Alert returns the current message, nil when none
func (s *Session) Alert() *Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alert == nil {
		return nil
	}
	a := *s.alert
	return &a
}

// DismissAlert clears the current message
func (s *Session) DismissAlert() {
	s.mu.Lock()
	s.alert = nil
	s.mu.Unlock()
}

// ReferenceVideoURL is the embedded source video for the open item
func (s *Session) ReferenceVideoURL() string {
	return s.target.ReferenceVideoURL()
}

// CurrentTranscription is the transcription of the region under the playhead
func (s *Session) CurrentTranscription() string {
	s.mu.Lock()
	id := s.current
	s.mu.Unlock()

	if id != "" {
		if seg, ok := s.segments.Get(id); ok && seg.Transcription != "" {
			return seg.Transcription
		}
	}
	return NoTranscription
}

// TogglePlay starts or pauses playback
func (s *Session) TogglePlay() {
	if s.engine.Playing() {
		s.engine.Pause()
		return
	}
	s.engine.Play()
}

// Seek moves the playhead by delta seconds and leaves playback paused
func (s *Session) Seek(delta float64) {
	s.engine.Skip(delta)
	s.engine.Pause()
}

// Zoom sets the waveform zoom and returns the applied level
func (s *Session) Zoom(level int) int {
	applied := s.engine.Zoom(level)
	s.mu.Lock()
	s.zoom = applied
	s.mu.Unlock()
	return applied
}

// ZoomLevel returns the applied zoom
func (s *Session) ZoomLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// Select makes regionID the target of edits, saves and deletes
func (s *Session) Select(regionID string) error {
	if _, ok := s.segments.Get(regionID); !ok {
		return segments.ErrUnknownSegment
	}
	s.mu.Lock()
	s.selected = regionID
	s.mu.Unlock()
	return nil
}

func (s *Session) selectedID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return "", ErrNoSelection
	}
	return s.selected, nil
}

// SetTranscription edits the selected segment locally
func (s *Session) SetTranscription(text string) error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	return s.segments.SetTranscription(id, text)
}

// SetLabel binds raw to the label named key on the selected segment
func (s *Session) SetLabel(key string, raw any) error {
	id, err := s.selectedID()
	if err != nil {
		return err
	}
	label, ok := s.schema.Lookup(key)
	if !ok {
		return labels.ErrUnknownLabel
	}
	value, err := labels.Bind(label, raw)
	if err != nil {
		return err
	}
	return s.segments.SetAnnotation(id, key, value)
}

// Label reads the selected segment's value for key, or its empty default
func (s *Session) Label(key string) (models.LabelValues, error) {
	label, ok := s.schema.Lookup(key)
	if !ok {
		return models.LabelValues{}, labels.ErrUnknownLabel
	}
	id, err := s.selectedID()
	if err != nil {
		return labels.Read(nil, label), nil
	}
	seg, _ := s.segments.Get(id)
	return labels.Read(&seg, label), nil
}

// acquire takes the busy flag; callers hold s.mu
func (s *Session) acquire() error {
	if s.closed {
		return ErrClosed
	}
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.wg.Add(1)
	return nil
}

// release undoes acquire when the mutation never started
func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	s.wg.Done()
}

// background runs op off the caller's goroutine, then releases the busy flag
// and records an alert. then, if set, runs after release on success.
func (s *Session) background(name, success string, op func(ctx context.Context) error, then func()) {
	go func() {
		err := op(s.ctx)

		s.mu.Lock()
		s.busy = false
		if err != nil {
			s.alert = &Alert{Kind: AlertError, Message: err.Error()}
			s.logger.Error(name+" failed", zap.Error(err))
		} else {
			s.alert = &Alert{Kind: AlertSuccess, Message: success}
		}
		runThen := err == nil && then != nil && !s.closed
		if runThen {
			s.follow.Add(1)
		}
		s.mu.Unlock()
		s.wg.Done()

		if runThen {
			defer s.follow.Done()
			then()
		}
	}()
}

// Save persists the selected segment
func (s *Session) Save() error {
	s.mu.Lock()
	id := s.selected
	if id == "" {
		s.mu.Unlock()
		return ErrNoSelection
	}
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.background("save", "Segment saved", func(ctx context.Context) error {
		_, err := s.segments.Save(ctx, id)
		return err
	}, nil)
	return nil
}

// Delete removes the selected segment; unsaved segments never reach the API
func (s *Session) Delete() error {
	s.mu.Lock()
	id := s.selected
	if id == "" {
		s.mu.Unlock()
		return ErrNoSelection
	}
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.background("delete", "Segment deleted", func(ctx context.Context) error {
		if err := s.segments.Delete(ctx, id); err != nil {
			return err
		}
		s.engine.RemoveRegion(id)
		s.mu.Lock()
		if s.selected == id {
			s.selected = ""
		}
		if s.current == id {
			s.current = ""
		}
		s.mu.Unlock()
		return nil
	}, nil)
	return nil
}

// Skip marks the whole clip as skipped and moves on to the next item when
// there is one. The selected segment is reused, else the first one, else a
// new full-clip region is drawn.
func (s *Session) Skip() error {
	duration := s.engine.Duration()
	if duration <= 0 {
		return ErrNoAudio
	}

	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return err
	}
	id := s.selected
	s.mu.Unlock()

	if id == "" {
		if all := s.segments.List(); len(all) > 0 {
			id = all[0].RegionID
		} else {
			var err error
			if id, err = s.addFullClipRegion(duration); err != nil {
				s.release()
				return err
			}
		}
	}

	s.background("skip", "File skipped", func(ctx context.Context) error {
		if _, err := s.segments.Skip(ctx, id, duration); err != nil {
			return err
		}
		return s.engine.UpdateRegion(id, 0, duration)
	}, func() {
		s.mu.Lock()
		next := s.cursor.Next
		s.mu.Unlock()
		if next != nil {
			if err := s.navigate(next); err != nil {
				s.logger.Error("navigation after skip failed", zap.Error(err))
			}
		}
	})
	return nil
}

// SetMarkedForReview patches the item's review flag
func (s *Session) SetMarkedForReview(marked bool) error {
	s.mu.Lock()
	if err := s.acquire(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	msg := "Marked for review"
	if !marked {
		msg = "Review mark removed"
	}
	s.background("review flag", msg, func(ctx context.Context) error {
		updated, err := s.ctrl.deps.Data.SetMarkedForReview(ctx, s.target.DataID, marked)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.marked = marked
		if updated != nil {
			s.marked = updated.IsMarkedForReview
		}
		s.detail.IsMarkedForReview = s.marked
		s.mu.Unlock()
		return nil
	}, nil)
	return nil
}

// Next navigates to the following item
func (s *Session) Next() error {
	return s.move(func(c models.Cursor) *models.Neighbor { return c.Next })
}

// Previous navigates to the preceding item
func (s *Session) Previous() error {
	return s.move(func(c models.Cursor) *models.Neighbor { return c.Previous })
}

func (s *Session) move(pick func(models.Cursor) *models.Neighbor) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	n := pick(s.cursor)
	s.mu.Unlock()

	if n == nil {
		return ErrNoNeighbor
	}
	return s.navigate(n)
}

func (s *Session) navigate(n *models.Neighbor) error {
	if s.ctrl.deps.Router == nil {
		return errors.New("no router configured")
	}
	target := n.Target()
	s.logger.Info("navigating", zap.String("target", target.String()))
	return s.ctrl.deps.Router.Navigate(s.ctx, target)
}

// Wait blocks until the in-flight mutation, if any, has settled and any
// navigation it triggered has reached the router
func (s *Session) Wait() {
	s.wg.Wait()
	s.follow.Wait()
}

// Close refuses further mutations and waits for the in-flight one. An
// in-flight save is never canceled.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.engine.Pause()
	s.wg.Wait()
	s.logger.Debug("session closed")
}

// addFullClipRegion draws and selects a region spanning the clip. A region
// the store rejects is removed from the engine again.
func (s *Session) addFullClipRegion(duration float64) (string, error) {
	region := s.engine.AddRegion(0, duration)
	if err := s.segments.Add(region.ID, 0, duration); err != nil {
		s.engine.RemoveRegion(region.ID)
		return "", err
	}
	s.mu.Lock()
	s.selected = region.ID
	s.mu.Unlock()
	return region.ID, nil
}

func (s *Session) handleEvent(ev waveform.Event) {
	switch ev.Type {
	case waveform.EventReady:
		duration := s.engine.Duration()
		s.segments.SetDuration(duration)
		if s.segments.Len() == 0 && duration > 0 {
			if _, err := s.addFullClipRegion(duration); err != nil {
				s.logger.Warn("full clip region rejected", zap.Error(err))
			}
		}

	case waveform.EventRegionCreated:
		if err := s.segments.Add(ev.Region.ID, ev.Region.Start, ev.Region.End); err != nil {
			s.logger.Warn("region not tracked", zap.String("region_id", ev.Region.ID), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.selected = ev.Region.ID
		s.mu.Unlock()

	case waveform.EventRegionUpdated:
		if err := s.segments.SetBounds(ev.Region.ID, ev.Region.Start, ev.Region.End); err != nil {
			s.logger.Warn("region update rejected", zap.String("region_id", ev.Region.ID), zap.Error(err))
		}

	case waveform.EventRegionClicked:
		_ = s.Select(ev.Region.ID)

	case waveform.EventRegionEnter:
		s.mu.Lock()
		s.current = ev.Region.ID
		s.mu.Unlock()

	case waveform.EventRegionLeave:
		s.mu.Lock()
		if s.current == ev.Region.ID {
			s.current = ""
		}
		s.mu.Unlock()
	}
}
