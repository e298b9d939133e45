package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Build information reported by the server; set from the cmd package
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Get handles version requests
// @Summary      API version
// @Description  Get the API name, version and build commit
// @Tags         version
// @Produce      json
// @Success      200 {object} object{name=string,version=string,commit=string,description=string,status=string} "Version information"
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Annotator API",
			"version":     Version,
			"commit":      GitCommit,
			"description": "Dataset and segmentation API for audio annotation",
			"status":      "running",
		})
	}
}
