package labels

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/middleware"
	"github.com/killallgit/annotator/api/types"
	"go.uber.org/zap"
)

// List returns the project label schema keyed by label name
// @Summary      List labels
// @Description  Get the project's label schema keyed by label name
// @Tags         labels
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Success      200 {object} types.LabelsResponse "Label schema"
// @Failure      400 {object} types.ErrorResponse "Invalid project ID"
// @Failure      404 {object} types.ErrorResponse "Project not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/labels [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := types.ParseUintParam(c, "project_id")
		if !ok {
			return
		}

		labels, err := deps.Catalog.GetLabels(c.Request.Context(), projectID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.LabelsResponse(labels))
	}
}

// Create adds a label and its values to a project
// @Summary      Create label
// @Description  Add a label with its ordered values to a project
// @Tags         labels
// @Accept       json
// @Produce      json
// @Param        project_id path int true "Project ID"
// @Param        label body types.LabelRequest true "Label name, type and values"
// @Success      201 {object} models.Label "Created label"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Project not found"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects/{project_id}/labels [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := types.ParseUintParam(c, "project_id")
		if !ok {
			return
		}
		var req types.LabelRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		label, err := deps.Catalog.CreateLabel(c.Request.Context(), projectID, req.Name, req.Type, req.Values)
		if err != nil {
			types.SendError(c, err)
			return
		}

		middleware.Invalidate(c.Request.Context(), deps.ResponseCache, labelsPath(c))
		deps.Log().Info("label created",
			zap.Uint("project_id", projectID),
			zap.String("label", label.Key),
			zap.Int("values", len(label.Values)))
		types.SendCreated(c, label)
	}
}

func labelsPath(c *gin.Context) string {
	return "/api/projects/" + c.Param("project_id") + "/labels"
}
