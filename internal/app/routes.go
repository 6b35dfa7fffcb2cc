package app

import (
	"github.com/gin-gonic/gin"

	"github.com/tubelens/core/internal/modules/health"
	"github.com/tubelens/core/internal/modules/video"
	"github.com/tubelens/core/internal/pkg/response"
	"github.com/tubelens/core/internal/pkg/taskqueue"
)

// registerRoutes mounts every module under the versioned API prefix.
func (a *App) registerRoutes(videoSvc *video.Service, queue *taskqueue.Service) {
	api := a.router.Group("/api/v2")

	health.RegisterRoutes(api)

	videoHandler := video.NewHandler(videoSvc, queue)
	videoHandler.RegisterRoutes(api.Group("/youtube"))

	api.GET("/cron", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
}
