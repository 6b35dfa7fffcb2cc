package video

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tubelens/core/internal/pkg/response"
	"github.com/tubelens/core/internal/pkg/taskqueue"
)

// TaskTypeSummary is the queue type for background summary generation.
const TaskTypeSummary = "video:summary"

type Handler struct {
	svc   *Service
	queue *taskqueue.Service
}

func NewHandler(svc *Service, queue *taskqueue.Service) *Handler {
	return &Handler{svc: svc, queue: queue}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/videoinfo", h.getVideoInfo)
	rg.POST("/summary", h.getSummary)
	rg.POST("/summary_task", h.createSummaryTask)
	rg.GET("/summary_task/:id", h.getSummaryTask)
}

// envelope is the domain response shape. HTTP status stays 200 for
// domain outcomes; the code field carries the result class.
func envelope(c *gin.Context, code, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": code,
		"msg":  msg,
		"data": data,
	})
}

func envelopeError(c *gin.Context, err error) {
	var subErr *SubtitleError
	if errors.As(err, &subErr) {
		envelope(c, CodeSubtitleError, subErr.Error(), nil)
		return
	}
	envelope(c, CodeProcessingError, err.Error(), nil)
}

func (h *Handler) getVideoInfo(c *gin.Context) {
	var dto videoInfoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "video_url is required")
		return
	}

	info, err := h.svc.GetVideoInfo(c.Request.Context(), dto.VideoURL)
	if err != nil {
		envelopeError(c, err)
		return
	}
	envelope(c, CodeSuccess, "success", info)
}

func (h *Handler) getSummary(c *gin.Context) {
	var dto summaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "video_id is required")
		return
	}

	outcome, err := h.svc.GetSummary(c.Request.Context(), dto.VideoID)
	if err != nil {
		envelopeError(c, err)
		return
	}
	if outcome.Task != nil {
		envelope(c, CodeSuccess, "transcript pending", outcome.Task)
		return
	}
	if len(outcome.Records) == 0 {
		envelope(c, CodeNoData, "no summary available", nil)
		return
	}
	envelope(c, CodeSuccess, "success", outcome.Records)
}

func (h *Handler) createSummaryTask(c *gin.Context) {
	var dto summaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "video_id is required")
		return
	}

	task, err := h.queue.Enqueue(c.Request.Context(), TaskTypeSummary,
		map[string]string{"video_id": dto.VideoID}, dto.VideoID)
	if err != nil {
		envelope(c, CodeProcessingError, err.Error(), nil)
		return
	}
	envelope(c, CodeSuccess, "task accepted", gin.H{
		"task_id": task.ID,
		"status":  task.Status,
	})
}

func (h *Handler) getSummaryTask(c *gin.Context) {
	task, err := h.queue.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		envelope(c, CodeProcessingError, err.Error(), nil)
		return
	}
	if task == nil {
		envelope(c, CodeNoData, "task not found", nil)
		return
	}
	envelope(c, CodeSuccess, "success", task)
}
