package handlers

import (
	"net/http"
	"strconv"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ValidationHandler handles draw validation and odds requests
type ValidationHandler struct {
	validationService services.ValidationService
}

// NewValidationHandler creates a new ValidationHandler
func NewValidationHandler(validationService services.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

// Validate handles POST /collections/:id/validate
func (h *ValidationHandler) Validate(c *gin.Context) {
	id, ok := collectionID(c)
	if !ok {
		return
	}
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := h.validationService.ValidateCollection(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Odds handles GET /odds?tickets=k
func (h *ValidationHandler) Odds(c *gin.Context) {
	tickets, err := strconv.Atoi(c.DefaultQuery("tickets", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tickets parameter"})
		return
	}
	dist, err := h.validationService.Odds(tickets)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "distribution": dist})
}

// ExactOdds handles GET /odds/exact
func (h *ValidationHandler) ExactOdds(c *gin.Context) {
	c.JSON(http.StatusOK, h.validationService.ExactOdds())
}
