// Package memory holds in-process repository implementations used by the
// command-line tool and by tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.CollectionRepository     = (*CollectionRepository)(nil)
	_ repositories.SystemSettingsRepository = (*SystemSettingsRepository)(nil)
	_ repositories.AdminUserRepository      = (*AdminUserRepository)(nil)
	_ repositories.ProgressStore            = (*ProgressStore)(nil)
)

// CollectionRepository stores deep copies of collections in a map
type CollectionRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Collection
}

// NewCollectionRepository returns an empty repository
func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{items: make(map[primitive.ObjectID]*models.Collection)}
}

func cloneCollection(c *models.Collection) *models.Collection {
	out := *c
	out.Tickets = append([]models.Ticket{}, c.Tickets...)
	return &out
}

// Create stores c, assigning an ID unless one is already set
func (r *CollectionRepository) Create(_ context.Context, c *models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, ok := r.items[c.ID]; ok {
		return fmt.Errorf("collection %s already exists", c.ID.Hex())
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.Tickets == nil {
		c.Tickets = []models.Ticket{}
	}
	r.items[c.ID] = cloneCollection(c)
	return nil
}

// FindByID returns a copy of the stored collection
func (r *CollectionRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneCollection(c), nil
}

// FindAll returns copies of every collection, oldest first
func (r *CollectionRepository) FindAll(_ context.Context) ([]*models.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Collection, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, cloneCollection(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Replace overwrites the stored collection
func (r *CollectionRepository) Replace(_ context.Context, c *models.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.items[c.ID] = cloneCollection(c)
	return nil
}

// Delete removes a collection
func (r *CollectionRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// SystemSettingsRepository keeps a single settings value
type SystemSettingsRepository struct {
	mu       sync.Mutex
	settings models.SystemSettings
}

// NewSystemSettingsRepository starts from defaults
func NewSystemSettingsRepository(defaults models.SystemSettings) *SystemSettingsRepository {
	defaults.CreatedAt = time.Now()
	defaults.UpdatedAt = defaults.CreatedAt
	return &SystemSettingsRepository{settings: defaults}
}

// GetSettings returns a copy of the current settings
func (r *SystemSettingsRepository) GetSettings(_ context.Context) (*models.SystemSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings
	s.Payouts = copyPayouts(r.settings.Payouts)
	return &s, nil
}

// UpdateSettings replaces the settings
func (r *SystemSettingsRepository) UpdateSettings(_ context.Context, settings *models.SystemSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings.UpdatedAt = time.Now()
	r.settings = *settings
	r.settings.Payouts = copyPayouts(settings.Payouts)
	return nil
}

func copyPayouts(in map[models.PrizeTier]float64) map[models.PrizeTier]float64 {
	if in == nil {
		return nil
	}
	out := make(map[models.PrizeTier]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// AdminUserRepository stores admin users by email
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.AdminUser
}

// NewAdminUserRepository returns an empty repository
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[string]*models.AdminUser)}
}

// Create stores a new admin user
func (r *AdminUserRepository) Create(_ context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

// FindByEmail looks a user up by email
func (r *AdminUserRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// FindByID looks a user up by ID
func (r *AdminUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// ProgressStore keeps jobs in a map
type ProgressStore struct {
	mu   sync.RWMutex
	jobs map[string]models.Job
}

// NewProgressStore returns an empty store
func NewProgressStore() *ProgressStore {
	return &ProgressStore{jobs: make(map[string]models.Job)}
}

// Save stores a snapshot of job
func (s *ProgressStore) Save(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

// Get returns the latest snapshot of a job
func (s *ProgressStore) Get(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &job, nil
}
