package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidArgument is returned for malformed requests that never reach the generator
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTicketNotFound matches repositories.ErrNotFound as well
	ErrTicketNotFound = fmt.Errorf("ticket %w", repositories.ErrNotFound)
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// GenerationService defines the interface for collection and ticket operations.
// Batches are serialised: the uniqueness ledger spans every collection.
type GenerationService interface {
	// CreateCollection stores a new empty collection
	CreateCollection(ctx context.Context, name string) (*models.Collection, error)

	// GetCollection retrieves a collection by its ID
	GetCollection(ctx context.Context, id primitive.ObjectID) (*models.Collection, error)

	// ListCollections retrieves every collection, oldest first
	ListCollections(ctx context.Context) ([]*models.Collection, error)

	// DeleteCollection removes a collection and frees its keys
	DeleteCollection(ctx context.Context, id primitive.ObjectID) error

	// Generate appends req.Count unique tickets to a collection
	Generate(ctx context.Context, id primitive.ObjectID, req models.GenerationRequest, progress generator.ProgressFunc) (*models.Collection, error)

	// RegenerateUnfrozen replaces every unfrozen ticket in place
	RegenerateUnfrozen(ctx context.Context, id primitive.ObjectID, req models.RegenerateRequest, progress generator.ProgressFunc) (*models.Collection, error)

	// SetFrozen marks a ticket frozen or unfrozen
	SetFrozen(ctx context.Context, id primitive.ObjectID, key models.Key, frozen bool) (*models.Collection, error)

	// DeleteTicket removes one ticket and frees its key
	DeleteTicket(ctx context.Context, id primitive.ObjectID, key models.Key) (*models.Collection, error)

	// VerifyTicket replays a ticket from its recorded provenance
	VerifyTicket(ctx context.Context, id primitive.ObjectID, key models.Key) (*models.TicketVerification, error)

	// LedgerSize returns the number of keys allocated across all collections
	LedgerSize() int
}

// JobService runs generation batches in the background
type JobService interface {
	StartGenerate(ctx context.Context, id primitive.ObjectID, req models.GenerationRequest) (*models.Job, error)
	StartRegenerate(ctx context.Context, id primitive.ObjectID, req models.RegenerateRequest) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	CancelJob(ctx context.Context, jobID string) (*models.Job, error)
	// Shutdown cancels running jobs and waits for them to finish
	Shutdown()
}

// ValidationService scores collections against draws and reports odds
type ValidationService interface {
	ValidateCollection(ctx context.Context, id primitive.ObjectID, req models.ValidateRequest) (*models.ValidationReport, error)
	Odds(tickets int) ([]models.MatchProbability, error)
	ExactOdds() []models.ExactProbability
}

// SystemSettingsService defines the interface for system settings operations
type SystemSettingsService interface {
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SystemSettings) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// EnsureAdmin creates the bootstrap operator if no user has that email
	EnsureAdmin(ctx context.Context, email, password string) error
}
