package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// JobReporter exposes the scheduler's next run times for the health endpoint.
type JobReporter interface {
	NextRuns() map[string]time.Time
}

// registerHomeRoutes registers the public health routes.
func registerHomeRoutes(r *gin.Engine, jobs JobReporter) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/health/jobs", func(c *gin.Context) {
		if jobs == nil {
			c.JSON(http.StatusOK, gin.H{"jobs": gin.H{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs.NextRuns()})
	})
}
