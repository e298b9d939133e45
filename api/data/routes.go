package data

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// RegisterRoutes registers data listing and detail routes under /api
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/current_user/projects/:project_id/data", List(deps))

	project := router.Group("/projects/:project_id")
	{
		project.GET("/data/:data_id", Get(deps))
		project.PATCH("/data/:data_id", PatchReview(deps))
	}
}
