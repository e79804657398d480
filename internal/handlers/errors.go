package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/lottogen-backend/internal/export"
	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrImpossibleConstraint),
		errors.Is(err, models.ErrInvalidDrawInput),
		errors.Is(err, models.ErrInvalidCombination),
		errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, generator.ErrGenerationExhausted),
		errors.Is(err, generator.ErrUniquenessExhausted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "path", c.FullPath(), "requestId", c.GetString("RequestID"))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// collectionID reads the :id path parameter
func collectionID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// ticketKey reads the :key path parameter and canonicalises it
func ticketKey(c *gin.Context) (models.Key, bool) {
	combo, err := models.ParseKey(models.Key(c.Param("key")))
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return combo.Key(), true
}
