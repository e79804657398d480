package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

const progressSaveTimeout = 5 * time.Second

type batchFunc func(ctx context.Context, progress generator.ProgressFunc) error

// JobServiceImpl runs batches on background goroutines and mirrors their
// progress into a ProgressStore.
type JobServiceImpl struct {
	generation GenerationService
	store      repositories.ProgressStore

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
	baseCtx context.Context
	stop    context.CancelFunc
}

// NewJobService creates a new JobService
func NewJobService(generation GenerationService, store repositories.ProgressStore) JobService {
	ctx, stop := context.WithCancel(context.Background())
	return &JobServiceImpl{
		generation: generation,
		store:      store,
		cancels:    make(map[string]context.CancelFunc),
		baseCtx:    ctx,
		stop:       stop,
	}
}

// StartGenerate checks the request and starts a generation job
func (s *JobServiceImpl) StartGenerate(ctx context.Context, id primitive.ObjectID, req models.GenerationRequest) (*models.Job, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", ErrInvalidArgument)
	}
	if err := generator.ValidateConstraints(req.Constraints); err != nil {
		return nil, err
	}
	if _, err := s.generation.GetCollection(ctx, id); err != nil {
		return nil, err
	}
	return s.start(ctx, id, models.JobKindGenerate, req.Count, func(jobCtx context.Context, progress generator.ProgressFunc) error {
		_, err := s.generation.Generate(jobCtx, id, req, progress)
		return err
	})
}

// StartRegenerate checks the request and starts a regeneration job
func (s *JobServiceImpl) StartRegenerate(ctx context.Context, id primitive.ObjectID, req models.RegenerateRequest) (*models.Job, error) {
	if err := generator.ValidateConstraints(req.Constraints); err != nil {
		return nil, err
	}
	coll, err := s.generation.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, t := range coll.Tickets {
		if !t.Frozen {
			total++
		}
	}
	return s.start(ctx, id, models.JobKindRegenerate, total, func(jobCtx context.Context, progress generator.ProgressFunc) error {
		_, err := s.generation.RegenerateUnfrozen(jobCtx, id, req, progress)
		return err
	})
}

// GetJob returns the latest stored state of a job
func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return s.store.Get(ctx, jobID)
}

// CancelJob asks a running job to stop. The batch stops at its next chunk
// boundary and commits nothing; poll GetJob for the final state.
func (s *JobServiceImpl) CancelJob(ctx context.Context, jobID string) (*models.Job, error) {
	s.mu.Lock()
	cancel, ok := s.cancels[jobID]
	s.mu.Unlock()
	if ok {
		cancel()
		slog.Info("Job cancellation requested", "jobId", jobID)
	}
	return s.store.Get(ctx, jobID)
}

// Shutdown cancels running jobs and waits for them to finish
func (s *JobServiceImpl) Shutdown() {
	s.stop()
	s.wg.Wait()
}

func (s *JobServiceImpl) start(ctx context.Context, id primitive.ObjectID, kind models.JobKind, total int, fn batchFunc) (*models.Job, error) {
	now := time.Now()
	job := &models.Job{
		ID:           uuid.NewString(),
		CollectionID: id.Hex(),
		Kind:         kind,
		Status:       models.JobStatusPending,
		Total:        total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	jobCtx, cancel := context.WithCancel(s.baseCtx)
	s.mu.Lock()
	s.cancels[job.ID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(jobCtx, cancel, *job, fn)

	slog.Info("Job started", "jobId", job.ID, "collectionId", job.CollectionID, "kind", kind, "total", total)
	return job, nil
}

func (s *JobServiceImpl) run(ctx context.Context, cancel context.CancelFunc, job models.Job, fn batchFunc) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.cancels, job.ID)
		s.mu.Unlock()
		cancel()
	}()

	job.Status = models.JobStatusRunning
	s.save(&job)

	err := fn(ctx, func(done, total int) {
		job.Done = done
		job.Total = total
		s.save(&job)
	})

	switch {
	case err == nil:
		job.Status = models.JobStatusCompleted
	case errors.Is(err, context.Canceled):
		job.Status = models.JobStatusCancelled
		// nothing was committed
		job.Done = 0
	default:
		job.Status = models.JobStatusFailed
		job.ErrorMessage = err.Error()
	}
	s.save(&job)
	slog.Info("Job finished", "jobId", job.ID, "status", job.Status, "done", job.Done, "total", job.Total)
}

func (s *JobServiceImpl) save(job *models.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), progressSaveTimeout)
	defer cancel()
	job.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, job); err != nil {
		slog.Warn("Failed to save job progress", "error", err, "jobId", job.ID)
	}
}
