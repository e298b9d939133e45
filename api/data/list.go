package data

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/models"
)

// List returns one page of a project's clips with per-status counts.
// Query parameters: page (default 1) and active (default pending).
// @Summary      List clips
// @Description  List one page of a project's clips filtered by status, with counts per status
// @Tags         data
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        page query int false "Page number" default(1)
// @Param        active query string false "Status filter" Enums(pending, completed, all, marked_review) default(pending)
// @Success      200 {object} models.PaginationWindow "Page window"
// @Failure      400 {object} types.ErrorResponse "Invalid page or status"
// @Failure      404 {object} types.ErrorResponse "Project not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/current_user/projects/{project_id}/data [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := types.ParseUintParam(c, "project_id")
		if !ok {
			return
		}
		page, ok := types.ParsePageQuery(c)
		if !ok {
			return
		}
		active, err := models.ParseStatus(c.Query("active"))
		if err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		window, err := deps.Catalog.ListData(c.Request.Context(), projectID, page, active)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, window)
	}
}
