package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"github.com/ArowuTest/lottogen-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// RoleAdmin is the only operator role
const RoleAdmin = "admin"

type authService struct {
	userRepo  repositories.AdminUserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(userRepo repositories.AdminUserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login checks the password and issues a bearer token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Warn("Login attempt for unknown user", "email", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		slog.Warn("Login attempt with wrong password", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	slog.Info("User logged in", "email", user.Email)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// EnsureAdmin seeds the bootstrap operator account
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		slog.Warn("Admin credentials not configured; skipping admin bootstrap")
		return nil
	}
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.AdminUser{
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	slog.Info("Bootstrap admin created", "email", email)
	return nil
}
