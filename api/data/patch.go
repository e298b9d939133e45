package data

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"go.uber.org/zap"
)

// PatchReview sets or clears a clip's review flag and returns the clip
// @Summary      Set review flag
// @Description  Mark a clip for review or clear the mark
// @Tags         data
// @Accept       json
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        data_id path int true "Data ID"
// @Param        review body types.ReviewRequest true "Review flag"
// @Success      200 {object} models.DataDetail "Updated clip"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/data/{data_id} [patch]
func PatchReview(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := types.ParseUintParam(c, "project_id")
		if !ok {
			return
		}
		dataID, ok := types.ParseUintParam(c, "data_id")
		if !ok {
			return
		}
		var req types.ReviewRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		detail, err := deps.Catalog.SetMarkedForReview(c.Request.Context(), projectID, dataID, *req.IsMarkedForReview)
		if err != nil {
			types.SendError(c, err)
			return
		}
		deps.Log().Info("review flag updated",
			zap.Uint("data_id", dataID),
			zap.Bool("is_marked_for_review", detail.IsMarkedForReview))
		types.SendSuccess(c, detail)
	}
}
