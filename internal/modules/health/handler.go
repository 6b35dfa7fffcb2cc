package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

// RegisterRoutes mounts the liveness endpoint.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Truncate(time.Second).String(),
			"time":   time.Now().UnixMilli(),
		})
	})
}
