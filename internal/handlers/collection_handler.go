package handlers

import (
	"fmt"
	"net/http"

	"github.com/ArowuTest/lottogen-backend/internal/export"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// CollectionHandler handles collection and ticket HTTP requests
type CollectionHandler struct {
	generationService services.GenerationService
	jobService        services.JobService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(generationService services.GenerationService, jobService services.JobService) *CollectionHandler {
	return &CollectionHandler{
		generationService: generationService,
		jobService:        jobService,
	}
}

// ListCollections handles GET /collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	collections, err := h.generationService.ListCollections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, collections)
}

// CreateCollection handles POST /collections
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req models.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coll, err := h.generationService.CreateCollection(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coll)
}

// GetCollection handles GET /collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	coll, err := h.generationService.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

// DeleteCollection handles DELETE /collections/:id
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	if err := h.generationService.DeleteCollection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate handles POST /collections/:id/generate and answers with the queued job
func (h *CollectionHandler) Generate(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := h.jobService.StartGenerate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

// Regenerate handles POST /collections/:id/regenerate
func (h *CollectionHandler) Regenerate(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	var req models.RegenerateRequest
	// An empty body means no constraints and a fresh entropy seed.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	job, err := h.jobService.StartRegenerate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

// SetFrozen handles PUT /collections/:id/tickets/:key/freeze
func (h *CollectionHandler) SetFrozen(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	key, ok := ticketKey(c)
	if !ok {
		return
	}
	req := models.FreezeRequest{Frozen: true}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	coll, err := h.generationService.SetFrozen(c.Request.Context(), id, key, req.Frozen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

// DeleteTicket handles DELETE /collections/:id/tickets/:key
func (h *CollectionHandler) DeleteTicket(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	key, ok := ticketKey(c)
	if !ok {
		return
	}
	coll, err := h.generationService.DeleteTicket(c.Request.Context(), id, key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coll)
}

// VerifyTicket handles GET /collections/:id/tickets/:key/verify
func (h *CollectionHandler) VerifyTicket(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	key, ok := ticketKey(c)
	if !ok {
		return
	}
	v, err := h.generationService.VerifyTicket(c.Request.Context(), id, key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Export handles GET /collections/:id/export?format=csv|txt|json
func (h *CollectionHandler) Export(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		respondError(c, err)
		return
	}
	coll, err := h.generationService.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s.%s", coll.ID.Hex(), format)))
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, format, export.Records(coll)); err != nil {
		slog.Error("Failed to write export", "error", err, "collectionId", id.Hex(), "format", format)
	}
}
