package segmentations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/models"
	"go.uber.org/zap"
)

type target struct {
	projectID uint
	dataID    uint
}

func parseTarget(c *gin.Context) (target, bool) {
	projectID, ok := types.ParseUintParam(c, "project_id")
	if !ok {
		return target{}, false
	}
	dataID, ok := types.ParseUintParam(c, "data_id")
	if !ok {
		return target{}, false
	}
	return target{projectID: projectID, dataID: dataID}, true
}

// Create stores a new segmentation on a clip. The answer carries the
// assigned segmentation_id.
// @Summary      Create segmentation
// @Description  Store a new segmentation on a clip
// @Tags         segmentations
// @Accept       json
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        data_id path int true "Data ID"
// @Param        segmentation body models.SegmentationPayload true "Bounds, transcription and annotations"
// @Success      201 {object} models.Segmentation "Created segmentation"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/data/{data_id}/segmentations [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := parseTarget(c)
		if !ok {
			return
		}
		var payload models.SegmentationPayload
		if !types.BindJSONOrError(c, &payload) {
			return
		}

		seg, err := deps.Catalog.CreateSegmentation(c.Request.Context(), t.projectID, t.dataID, payload)
		if err != nil {
			types.SendError(c, err)
			return
		}
		deps.Log().Debug("segmentation created",
			zap.Uint("data_id", t.dataID),
			zap.Int64("segmentation_id", seg.SegmentationID))
		types.SendCreated(c, seg)
	}
}

// Update replaces bounds, transcription and annotations of a segmentation
// @Summary      Update segmentation
// @Description  Replace bounds, transcription and annotations of a segmentation
// @Tags         segmentations
// @Accept       json
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        data_id path int true "Data ID"
// @Param        segmentation_id path int true "Segmentation ID"
// @Param        segmentation body models.SegmentationPayload true "Bounds, transcription and annotations"
// @Success      200 {object} models.Segmentation "Updated segmentation"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Segmentation not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/data/{data_id}/segmentations/{segmentation_id} [put]
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := parseTarget(c)
		if !ok {
			return
		}
		segmentationID, ok := types.ParseUintParam(c, "segmentation_id")
		if !ok {
			return
		}
		var payload models.SegmentationPayload
		if !types.BindJSONOrError(c, &payload) {
			return
		}

		seg, err := deps.Catalog.UpdateSegmentation(c.Request.Context(), t.projectID, t.dataID, segmentationID, payload)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, seg)
	}
}

// Delete removes a segmentation
// @Summary      Delete segmentation
// @Description  Delete a segmentation and its annotations
// @Tags         segmentations
// @Param        project_id path int true "Project ID"
// @Param        data_id path int true "Data ID"
// @Param        segmentation_id path int true "Segmentation ID"
// @Success      204 "Segmentation deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid ID"
// @Failure      404 {object} types.ErrorResponse "Segmentation not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/data/{data_id}/segmentations/{segmentation_id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := parseTarget(c)
		if !ok {
			return
		}
		segmentationID, ok := types.ParseUintParam(c, "segmentation_id")
		if !ok {
			return
		}

		if err := deps.Catalog.DeleteSegmentation(c.Request.Context(), t.projectID, t.dataID, segmentationID); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
