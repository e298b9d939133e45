package labels

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// RegisterRoutes registers label schema routes on a project group.
// cache wraps the schema read; pass nil to serve it uncached.
func RegisterRoutes(project *gin.RouterGroup, deps *types.Dependencies, cache gin.HandlerFunc) {
	if cache != nil {
		project.GET("/labels", cache, List(deps))
	} else {
		project.GET("/labels", List(deps))
	}
	project.POST("/labels", Create(deps))
}
