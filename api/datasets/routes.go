package datasets

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// RegisterRoutes registers the API-key authenticated ingestion routes under /api
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/data", Upload(deps))
	router.POST("/register-dataset", Register(deps))
}
