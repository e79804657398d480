package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories/memory"
	"github.com/ArowuTest/lottogen-backend/internal/utils"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAdminUserRepository()
	svc := NewAuthService(repo, "secret", time.Hour)

	require.NoError(t, svc.EnsureAdmin(ctx, "ops@example.com", "hunter22"))
	// idempotent
	require.NoError(t, svc.EnsureAdmin(ctx, "ops@example.com", "other"))

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)
	claims, err := utils.ValidateJWT(resp.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims["email"])
	assert.Equal(t, RoleAdmin, claims["role"])

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ops@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureAdminSkipsWithoutCredentials(t *testing.T) {
	repo := memory.NewAdminUserRepository()
	svc := NewAuthService(repo, "secret", time.Hour)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	_, err := repo.FindByEmail(context.Background(), "")
	assert.Error(t, err)
}

func TestSystemSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSystemSettingsRepository(models.SystemSettings{JackpotValue: 7})
	svc := NewSystemSettingsService(repo)

	err := svc.UpdateSettings(ctx, &models.SystemSettings{JackpotValue: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = svc.UpdateSettings(ctx, &models.SystemSettings{Payouts: map[models.PrizeTier]float64{"7": 1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = svc.UpdateSettings(ctx, &models.SystemSettings{Limits: models.GenerationLimits{NonceGuard: -2}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, svc.UpdateSettings(ctx, &models.SystemSettings{JackpotValue: 42, UpdatedBy: "ops"}))
	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.JackpotValue)
	assert.Equal(t, "ops", got.UpdatedBy)
}
