package session

import (
	"context"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/cursor"
	"github.com/killallgit/annotator/internal/services/segments"
	"github.com/killallgit/annotator/internal/waveform"
)

// DataAPI is the dataset collaborator scoped to one project
type DataAPI interface {
	cursor.PageFetcher
	GetData(ctx context.Context, dataID int64) (*models.DataDetail, error)
	GetLabels(ctx context.Context) (map[string]models.Label, error)
	SetMarkedForReview(ctx context.Context, dataID int64, marked bool) (*models.DataDetail, error)
}

// Engine is the waveform/playback surface a session drives
type Engine interface {
	Subscribe(h waveform.Handler)
	Load(ctx context.Context, source string) error
	Duration() float64
	AddRegion(start, end float64) waveform.Region
	UpdateRegion(id string, start, end float64) error
	RemoveRegion(id string)
	Regions() []waveform.Region
	Play()
	Pause()
	Playing() bool
	Skip(deltaSeconds float64)
	Zoom(level int) int
}

// Router moves the host to another item. The host is expected to close the
// current session and open a new one on target.
type Router interface {
	Navigate(ctx context.Context, target models.Target) error
}

// PageMemory remembers the last page visited per status filter
type PageMemory interface {
	RememberPage(ctx context.Context, active models.Status, page int)
}

// Dependencies holds the collaborators shared by every session
type Dependencies struct {
	Data      DataAPI
	Segments  segments.SegmentationAPI
	NewEngine func() Engine
	Router    Router
	Pages     PageMemory
}
