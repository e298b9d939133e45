package data

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// Get returns a clip with its segmentations
// @Summary      Get clip
// @Description  Get a clip with its reference transcription, review flag and segmentations ordered by start time
// @Tags         data
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        data_id path int true "Data ID"
// @Success      200 {object} models.DataDetail "Clip detail"
// @Failure      400 {object} types.ErrorResponse "Invalid ID"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/data/{data_id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := types.ParseUintParam(c, "project_id")
		if !ok {
			return
		}
		dataID, ok := types.ParseUintParam(c, "data_id")
		if !ok {
			return
		}

		detail, err := deps.Catalog.GetData(c.Request.Context(), projectID, dataID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, detail)
	}
}
