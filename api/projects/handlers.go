package projects

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"go.uber.org/zap"
)

// RegisterRoutes registers project administration routes under /api
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/projects", Create(deps))
}

// Create creates a project and returns its API key
// @Summary      Create project
// @Description  Create a project; the answer carries the API key used for dataset ingestion
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project body types.ProjectRequest true "Project name"
// @Success      201 {object} types.ProjectResponse "Created project"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/projects [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ProjectRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		project, err := deps.Catalog.CreateProject(c.Request.Context(), req.Name)
		if err != nil {
			types.SendError(c, err)
			return
		}
		deps.Log().Info("project created", zap.Uint("project_id", project.ID))
		types.SendCreated(c, types.ProjectResponse{
			ProjectID: project.ID,
			Name:      project.Name,
			APIKey:    project.APIKey,
		})
	}
}
