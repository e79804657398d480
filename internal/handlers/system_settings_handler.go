package handlers

import (
	"net/http"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SystemSettingsHandler handles system settings-related HTTP requests
type SystemSettingsHandler struct {
	settingsService services.SystemSettingsService
}

// NewSystemSettingsHandler creates a new SystemSettingsHandler
func NewSystemSettingsHandler(settingsService services.SystemSettingsService) *SystemSettingsHandler {
	return &SystemSettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SystemSettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SystemSettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.SystemSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Record who changed the settings
	if email, ok := c.Get("userEmail"); ok {
		if s, ok := email.(string); ok {
			settings.UpdatedBy = s
		}
	}

	if err := h.settingsService.UpdateSettings(c.Request.Context(), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
