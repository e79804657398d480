package handlers

import (
	"net/http"

	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// JobHandler handles generation job HTTP requests
type JobHandler struct {
	jobService services.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// GetJob handles GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CancelJob handles DELETE /jobs/:id
func (h *JobHandler) CancelJob(c *gin.Context) {
	job, err := h.jobService.CancelJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}
