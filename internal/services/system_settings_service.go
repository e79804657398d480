package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// SystemSettingsServiceImpl implements SystemSettingsService
type SystemSettingsServiceImpl struct {
	settingsRepo repositories.SystemSettingsRepository
}

// NewSystemSettingsService creates a new SystemSettingsService
func NewSystemSettingsService(settingsRepo repositories.SystemSettingsRepository) SystemSettingsService {
	return &SystemSettingsServiceImpl{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the current system settings
func (s *SystemSettingsServiceImpl) GetSettings(ctx context.Context) (*models.SystemSettings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateSettings validates and stores new settings. Zero limits fall back
// to the generator defaults when a batch runs.
func (s *SystemSettingsServiceImpl) UpdateSettings(ctx context.Context, settings *models.SystemSettings) error {
	if settings.JackpotValue < 0 {
		return fmt.Errorf("%w: jackpot value must not be negative", ErrInvalidArgument)
	}
	for tier, v := range settings.Payouts {
		if !knownTier(tier) {
			return fmt.Errorf("%w: unknown prize tier %q", ErrInvalidArgument, tier)
		}
		if v < 0 {
			return fmt.Errorf("%w: payout for tier %s must not be negative", ErrInvalidArgument, tier)
		}
	}
	l := settings.Limits
	if l.FillGuard < 0 || l.AnyOfGuard < 0 || l.NonceGuard < 0 {
		return fmt.Errorf("%w: generation limits must not be negative", ErrInvalidArgument)
	}

	current, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings.ID = current.ID
	settings.CreatedAt = current.CreatedAt
	if err := s.settingsRepo.UpdateSettings(ctx, settings); err != nil {
		slog.Error("Failed to update system settings", "error", err)
		return err
	}
	slog.Info("System settings updated", "updatedBy", settings.UpdatedBy, "jackpot", settings.JackpotValue)
	return nil
}

func knownTier(tier models.PrizeTier) bool {
	for _, t := range models.AllTiers {
		if t == tier {
			return true
		}
	}
	return false
}
