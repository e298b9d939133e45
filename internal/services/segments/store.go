// Package segments owns the regions of the open data item and mediates their
// persistence against the segmentation API.
package segments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/killallgit/annotator/internal/models"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrSegmentBusy is returned when a save or delete is already in flight
	// for the segment
	ErrSegmentBusy    = errors.New("segment has a request in flight")
	ErrUnknownSegment = errors.New("unknown segment")
	ErrInvalidBounds  = errors.New("invalid segment bounds")
)

// Store holds the segments of one data item
type Store struct {
	mu       sync.Mutex
	api      SegmentationAPI
	dataID   int64
	duration float64
	order    []string
	segments map[string]*models.Segment
	logger   *zap.Logger
}

// StoreOption is a functional option for configuring the store
type StoreOption func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDuration sets the clip length used to validate bounds
func WithDuration(seconds float64) StoreOption {
	return func(s *Store) {
		s.duration = seconds
	}
}

// NewStore creates an empty store for dataID
func NewStore(api SegmentationAPI, dataID int64, opts ...StoreOption) *Store {
	s := &Store{
		api:      api,
		dataID:   dataID,
		segments: make(map[string]*models.Segment),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDuration updates the clip length once the audio is decoded
func (s *Store) SetDuration(seconds float64) {
	s.mu.Lock()
	s.duration = seconds
	s.mu.Unlock()
}

// Duration returns the clip length, 0 when unknown
func (s *Store) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Add registers a freshly drawn region as a New segment
func (s *Store) Add(regionID string, start, end float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.segments[regionID]; exists {
		return apperrors.New(apperrors.ErrCodeConflict, "region already tracked").
			WithDetail("region_id", regionID)
	}
	if err := s.checkBounds(start, end); err != nil {
		return err
	}
	s.insert(&models.Segment{RegionID: regionID, Start: start, End: end, State: models.SegmentNew})
	return nil
}

// Hydrate registers a persisted segmentation as a Saved segment
func (s *Store) Hydrate(regionID string, seg models.Segmentation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hydrated := models.SegmentFromSegmentation(regionID, seg)
	s.insert(&hydrated)
}

func (s *Store) insert(seg *models.Segment) {
	if _, exists := s.segments[seg.RegionID]; !exists {
		s.order = append(s.order, seg.RegionID)
	}
	s.segments[seg.RegionID] = seg
}

// Get returns a copy of the segment
func (s *Store) Get(regionID string) (models.Segment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[regionID]
	if !ok {
		return models.Segment{}, false
	}
	return seg.Clone(), true
}

// List returns copies of all segments in insertion order
func (s *Store) List() []models.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Segment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.segments[id].Clone())
	}
	return out
}

// Len returns the number of segments
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Pending reports whether any segment has a request in flight
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seg := range s.segments {
		if !seg.State.Stable() {
			return true
		}
	}
	return false
}

// SetBounds moves a segment locally; nothing is persisted until Save
func (s *Store) SetBounds(regionID string, start, end float64) error {
	return s.edit(regionID, func(seg *models.Segment) error {
		if err := s.checkBounds(start, end); err != nil {
			return err
		}
		seg.Start, seg.End = start, end
		return nil
	})
}

// SetTranscription replaces the segment transcription locally
func (s *Store) SetTranscription(regionID, text string) error {
	return s.edit(regionID, func(seg *models.Segment) error {
		seg.Transcription = text
		return nil
	})
}

// SetAnnotation stores a bound label value under key locally
func (s *Store) SetAnnotation(regionID, key string, value models.AnnotationValue) error {
	return s.edit(regionID, func(seg *models.Segment) error {
		if seg.Annotations == nil {
			seg.Annotations = make(map[string]models.AnnotationValue)
		}
		seg.Annotations[key] = value
		return nil
	})
}

func (s *Store) edit(regionID string, apply func(*models.Segment) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, err := s.lookup(regionID)
	if err != nil {
		return err
	}
	if seg.State == models.SegmentDeleting {
		return ErrSegmentBusy
	}
	return apply(seg)
}

// Save creates the segmentation when it was never persisted and updates it
// otherwise. On failure the segment returns to its prior state with local
// edits intact.
func (s *Store) Save(ctx context.Context, regionID string) (int64, error) {
	return s.save(ctx, regionID, nil)
}

// Skip saves the segment spanning the whole clip with the skip marker and no
// annotations. The local segment is rewritten only once the backend accepts
// it; on failure it keeps its bounds and edits.
func (s *Store) Skip(ctx context.Context, regionID string, clipDuration float64) (int64, error) {
	return s.save(ctx, regionID, func(seg *models.Segment) {
		seg.Start = 0
		seg.End = clipDuration
		seg.Transcription = models.SkipMarker
		seg.Annotations = nil
	})
}

func (s *Store) save(ctx context.Context, regionID string, mutate func(*models.Segment)) (int64, error) {
	s.mu.Lock()
	seg, err := s.lookup(regionID)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if !seg.State.Stable() {
		s.mu.Unlock()
		return 0, ErrSegmentBusy
	}
	payload := seg.Payload()
	if mutate != nil {
		next := seg.Clone()
		mutate(&next)
		payload = next.Payload()
	}
	prior := seg.State
	seg.State = models.SegmentSaving
	var existing *int64
	if seg.SegmentationID != nil {
		id := *seg.SegmentationID
		existing = &id
	}
	s.mu.Unlock()

	// A closed session must not abort a save that is already on the wire
	ctx = context.WithoutCancel(ctx)

	var (
		saved *models.Segmentation
		op    = "create"
	)
	if existing == nil {
		saved, err = s.api.CreateSegmentation(ctx, s.dataID, payload)
	} else {
		op = "update"
		saved, err = s.api.UpdateSegmentation(ctx, s.dataID, *existing, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil && saved == nil {
		err = fmt.Errorf("empty %s response", op)
	}
	if err != nil {
		seg.State = prior
		s.logger.Error("segment save failed",
			zap.Int64("data_id", s.dataID),
			zap.String("region_id", regionID),
			zap.String("operation", op),
			zap.Error(err))
		return 0, apperrors.PersistenceError(op, err).WithDetail("region_id", regionID)
	}

	if mutate != nil {
		mutate(seg)
	}
	if seg.SegmentationID == nil {
		id := saved.SegmentationID
		seg.SegmentationID = &id
	}
	seg.State = models.SegmentSaved

	s.logger.Info("segment saved",
		zap.Int64("data_id", s.dataID),
		zap.Int64("segmentation_id", *seg.SegmentationID),
		zap.String("operation", op))
	return *seg.SegmentationID, nil
}

// Delete removes the segment. A segment that was never persisted is dropped
// locally without any request.
func (s *Store) Delete(ctx context.Context, regionID string) error {
	s.mu.Lock()
	seg, err := s.lookup(regionID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !seg.State.Stable() {
		s.mu.Unlock()
		return ErrSegmentBusy
	}
	if !seg.Persisted() {
		s.remove(regionID)
		s.mu.Unlock()
		return nil
	}
	prior := seg.State
	seg.State = models.SegmentDeleting
	id := *seg.SegmentationID
	s.mu.Unlock()

	err = s.api.DeleteSegmentation(context.WithoutCancel(ctx), s.dataID, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		seg.State = prior
		s.logger.Error("segment delete failed",
			zap.Int64("data_id", s.dataID),
			zap.Int64("segmentation_id", id),
			zap.Error(err))
		return apperrors.PersistenceError("delete", err).WithDetail("region_id", regionID)
	}

	s.remove(regionID)
	s.logger.Info("segment deleted", zap.Int64("data_id", s.dataID), zap.Int64("segmentation_id", id))
	return nil
}

func (s *Store) remove(regionID string) {
	delete(s.segments, regionID)
	for i, id := range s.order {
		if id == regionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) lookup(regionID string) (*models.Segment, error) {
	seg, ok := s.segments[regionID]
	if !ok {
		return nil, apperrors.NotFound("segment", regionID).WithCause(ErrUnknownSegment)
	}
	return seg, nil
}

func (s *Store) checkBounds(start, end float64) error {
	if start < 0 || start >= end || (s.duration > 0 && end > s.duration) {
		return apperrors.ValidationError("bounds",
			fmt.Sprintf("[%g, %g] is outside [0, %g]", start, end, s.duration)).WithCause(ErrInvalidBounds)
	}
	return nil
}
