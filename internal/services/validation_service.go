package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/probability"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationServiceImpl implements ValidationService
type ValidationServiceImpl struct {
	generation GenerationService
	settings   SystemSettingsService
}

// NewValidationService creates a new ValidationService
func NewValidationService(generation GenerationService, settings SystemSettingsService) ValidationService {
	return &ValidationServiceImpl{generation: generation, settings: settings}
}

// ValidateCollection scores every ticket of a collection against a draw
// using the configured payout table.
func (s *ValidationServiceImpl) ValidateCollection(ctx context.Context, id primitive.ObjectID, req models.ValidateRequest) (*models.ValidationReport, error) {
	coll, err := s.generation.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	jackpot := settings.JackpotValue
	if req.JackpotValue != nil {
		if *req.JackpotValue < 0 {
			return nil, fmt.Errorf("%w: jackpot value must not be negative", ErrInvalidArgument)
		}
		jackpot = *req.JackpotValue
	}
	engine := probability.NewEngine(settings.PayoutTable())
	return engine.ValidateDraw(coll.Combinations(), req.Draw, jackpot)
}

// Odds returns the at-least-m distribution for a set of tickets
func (s *ValidationServiceImpl) Odds(tickets int) ([]models.MatchProbability, error) {
	if tickets < 1 {
		return nil, fmt.Errorf("%w: tickets must be at least 1", ErrInvalidArgument)
	}
	return probability.AtLeastDistribution(tickets), nil
}

// ExactOdds returns the exact-hit distribution of a single ticket
func (s *ValidationServiceImpl) ExactOdds() []models.ExactProbability {
	return probability.ExactDistribution()
}
