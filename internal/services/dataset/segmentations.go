package dataset

import (
	"context"
	"fmt"
	"net/http"

	"github.com/killallgit/annotator/internal/models"
)

// CreateSegmentation persists a new segment; the backend assigns its id
func (c *Client) CreateSegmentation(ctx context.Context, dataID int64, payload models.SegmentationPayload) (*models.Segmentation, error) {
	var seg models.Segmentation
	if err := c.do(ctx, http.MethodPost, c.projectPath("/data/%d/segmentations", dataID), nil, payload, &seg); err != nil {
		return nil, fmt.Errorf("create segmentation on data %d: %w", dataID, err)
	}
	if seg.SegmentationID == 0 {
		return nil, fmt.Errorf("create segmentation on data %d: %w: missing segmentation_id", dataID, ErrInvalidResponse)
	}
	return &seg, nil
}

// UpdateSegmentation replaces bounds, transcription and annotations
func (c *Client) UpdateSegmentation(ctx context.Context, dataID, segmentationID int64, payload models.SegmentationPayload) (*models.Segmentation, error) {
	var seg models.Segmentation
	path := c.projectPath("/data/%d/segmentations/%d", dataID, segmentationID)
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &seg); err != nil {
		return nil, fmt.Errorf("update segmentation %d: %w", segmentationID, err)
	}
	if seg.SegmentationID == 0 {
		seg.SegmentationID = segmentationID
	}
	return &seg, nil
}

// DeleteSegmentation removes a persisted segment
func (c *Client) DeleteSegmentation(ctx context.Context, dataID, segmentationID int64) error {
	path := c.projectPath("/data/%d/segmentations/%d", dataID, segmentationID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete segmentation %d: %w", segmentationID, err)
	}
	return nil
}
