package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Report service health and database connectivity
// @Tags         health
// @Produce      json
// @Success      200 {object} object{status=string,timestamp=string,database=object} "Service healthy"
// @Failure      503 {object} object{status=string,timestamp=string,database=object} "Database unhealthy"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := getDatabaseStatus(deps)

		status := http.StatusOK
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		}
		if database["status"] == "unhealthy" {
			status = http.StatusServiceUnavailable
			response["status"] = "degraded"
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}
