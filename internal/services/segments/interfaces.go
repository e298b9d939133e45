package segments

import (
	"context"

	"github.com/killallgit/annotator/internal/models"
)

// SegmentationAPI persists segmentations of one data item
type SegmentationAPI interface {
	CreateSegmentation(ctx context.Context, dataID int64, payload models.SegmentationPayload) (*models.Segmentation, error)
	UpdateSegmentation(ctx context.Context, dataID, segmentationID int64, payload models.SegmentationPayload) (*models.Segmentation, error)
	DeleteSegmentation(ctx context.Context, dataID, segmentationID int64) error
}
