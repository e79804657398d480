// Package redisstore stores generation job progress in Redis so any API replica
// can answer a poll for it.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultJobTTL is how long a job snapshot survives its last update
const DefaultJobTTL = 24 * time.Hour

// NewClient connects to Redis and checks the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// ProgressStore implements repositories.ProgressStore on Redis string keys
type ProgressStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ repositories.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a ProgressStore; a non-positive ttl means DefaultJobTTL
func NewProgressStore(client redis.Cmdable, ttl time.Duration) *ProgressStore {
	if ttl <= 0 {
		ttl = DefaultJobTTL
	}
	return &ProgressStore{client: client, ttl: ttl}
}

func jobKey(id string) string {
	return fmt.Sprintf("job:%s", id)
}

// Save writes a snapshot of the job and refreshes its TTL
func (s *ProgressStore) Save(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, jobKey(job.ID), data, s.ttl).Err()
}

// Get reads the latest snapshot of a job
func (s *ProgressStore) Get(ctx context.Context, id string) (*models.Job, error) {
	data, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}
