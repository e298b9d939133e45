package segmentations

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// RegisterRoutes registers segmentation routes on a project group
func RegisterRoutes(project *gin.RouterGroup, deps *types.Dependencies) {
	segs := project.Group("/data/:data_id/segmentations")
	{
		segs.POST("", Create(deps))
		segs.PUT("/:segmentation_id", Update(deps))
		segs.DELETE("/:segmentation_id", Delete(deps))
	}
}
