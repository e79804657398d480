package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by every repository when a document does not exist
var ErrNotFound = errors.New("not found")

// CollectionRepository defines the interface for ticket collection persistence.
// Collections round-trip in full: Replace stores the whole ticket list.
type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error)
	FindAll(ctx context.Context) ([]*models.Collection, error)
	Replace(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SystemSettingsRepository defines the interface for system settings operations
type SystemSettingsRepository interface {
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SystemSettings) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

// ProgressStore keeps generation job state where API callers can poll it
type ProgressStore interface {
	Save(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
}
