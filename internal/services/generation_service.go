package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/random"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// GenerationServiceImpl implements GenerationService on top of a single
// in-process ledger. mu serialises every operation that reads or changes it;
// committed holds the ledger size as of the last finished operation and is
// read without mu.
type GenerationServiceImpl struct {
	mu             sync.Mutex
	collectionRepo repositories.CollectionRepository
	settingsRepo   repositories.SystemSettingsRepository
	ledger         *generator.Ledger
	committed      atomic.Int64
	yield          func()
}

// NewGenerationService loads every stored collection and rebuilds the
// ledger from their keys. Two collections sharing a key is an error.
func NewGenerationService(ctx context.Context, collectionRepo repositories.CollectionRepository, settingsRepo repositories.SystemSettingsRepository) (GenerationService, error) {
	collections, err := collectionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}
	var keys []models.Key
	for _, c := range collections {
		keys = append(keys, c.Keys()...)
	}
	ledger, err := generator.NewLedger(keys)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild ledger: %w", err)
	}
	slog.Info("Uniqueness ledger rebuilt", "collections", len(collections), "keys", ledger.Len())

	s := &GenerationServiceImpl{
		collectionRepo: collectionRepo,
		settingsRepo:   settingsRepo,
		ledger:         ledger,
	}
	s.publishSize()
	return s, nil
}

// CreateCollection stores a new empty collection
func (s *GenerationServiceImpl) CreateCollection(ctx context.Context, name string) (*models.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", ErrInvalidArgument)
	}
	coll := &models.Collection{Name: name, Tickets: []models.Ticket{}}
	if err := s.collectionRepo.Create(ctx, coll); err != nil {
		slog.Error("Failed to create collection", "error", err, "name", name)
		return nil, err
	}
	slog.Info("Collection created", "collectionId", coll.ID.Hex(), "name", name)
	return coll, nil
}

// GetCollection retrieves a collection by its ID
func (s *GenerationServiceImpl) GetCollection(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	return s.collectionRepo.FindByID(ctx, id)
}

// ListCollections retrieves every collection
func (s *GenerationServiceImpl) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	return s.collectionRepo.FindAll(ctx)
}

// DeleteCollection removes a collection and frees its keys
func (s *GenerationServiceImpl) DeleteCollection(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.publishSize()

	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		slog.Error("Failed to delete collection", "error", err, "collectionId", id.Hex())
		return err
	}
	freed := s.ledger.Release(coll.Keys()...)
	slog.Info("Collection deleted", "collectionId", id.Hex(), "freedKeys", len(freed))
	return nil
}

// Generate appends req.Count unique tickets. Either every ticket is stored
// or none is: a failed or cancelled batch leaves the ledger untouched, and
// a failed save reverts the batch.
func (s *GenerationServiceImpl) Generate(ctx context.Context, id primitive.ObjectID, req models.GenerationRequest, progress generator.ProgressFunc) (*models.Collection, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.publishSize()

	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	scheduler, err := s.scheduler(ctx)
	if err != nil {
		return nil, err
	}
	factory, prov, err := batchFactory(req.Seed, coll)
	if err != nil {
		return nil, err
	}
	prov.Constraints = req.Constraints

	res, err := scheduler.Run(ctx, s.ledger, generator.Batch{
		Count:       req.Count,
		Constraints: req.Constraints,
		Factory:     factory,
	}, progress)
	if err != nil {
		slog.Warn("Generation batch aborted", "error", err, "collectionId", id.Hex(), "count", req.Count)
		return nil, err
	}

	first := coll.NextOrder
	now := time.Now()
	for _, a := range res.Allocations {
		coll.Tickets = append(coll.Tickets, newTicket(a, first, prov, now))
	}
	coll.NextOrder += req.Count

	if err := s.collectionRepo.Replace(ctx, coll); err != nil {
		res.Revert(s.ledger)
		slog.Error("Failed to save generated tickets", "error", err, "collectionId", id.Hex())
		return nil, fmt.Errorf("failed to save collection: %w", err)
	}
	slog.Info("Tickets generated", "collectionId", id.Hex(), "count", req.Count, "mode", prov.Mode, "ledgerSize", s.ledger.Len())
	return coll, nil
}

// RegenerateUnfrozen replaces every unfrozen ticket in its position.
// Replacements may reuse none of the keys they replace.
func (s *GenerationServiceImpl) RegenerateUnfrozen(ctx context.Context, id primitive.ObjectID, req models.RegenerateRequest, progress generator.ProgressFunc) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.publishSize()

	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var positions []int
	var replaced []models.Key
	for i, t := range coll.Tickets {
		if !t.Frozen {
			positions = append(positions, i)
			replaced = append(replaced, t.Key)
		}
	}
	if len(positions) == 0 {
		if err := generator.ValidateConstraints(req.Constraints); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(0, 0)
		}
		return coll, nil
	}

	scheduler, err := s.scheduler(ctx)
	if err != nil {
		return nil, err
	}
	factory, prov, err := batchFactory(req.Seed, coll)
	if err != nil {
		return nil, err
	}
	prov.Constraints = req.Constraints

	res, err := scheduler.Run(ctx, s.ledger, generator.Batch{
		Count:       len(positions),
		Constraints: req.Constraints,
		Factory:     factory,
		Replace:     replaced,
	}, progress)
	if err != nil {
		slog.Warn("Regeneration batch aborted", "error", err, "collectionId", id.Hex(), "count", len(positions))
		return nil, err
	}

	first := coll.NextOrder
	now := time.Now()
	for i, a := range res.Allocations {
		coll.Tickets[positions[i]] = newTicket(a, first, prov, now)
	}
	coll.NextOrder += len(positions)

	if err := s.collectionRepo.Replace(ctx, coll); err != nil {
		res.Revert(s.ledger)
		slog.Error("Failed to save regenerated tickets", "error", err, "collectionId", id.Hex())
		return nil, fmt.Errorf("failed to save collection: %w", err)
	}
	slog.Info("Unfrozen tickets regenerated", "collectionId", id.Hex(), "count", len(positions), "mode", prov.Mode)
	return coll, nil
}

// SetFrozen marks a ticket frozen or unfrozen
func (s *GenerationServiceImpl) SetFrozen(ctx context.Context, id primitive.ObjectID, key models.Key, frozen bool) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i := coll.TicketIndex(key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, key)
	}
	coll.Tickets[i].Frozen = frozen
	if err := s.collectionRepo.Replace(ctx, coll); err != nil {
		return nil, fmt.Errorf("failed to save collection: %w", err)
	}
	return coll, nil
}

// DeleteTicket removes one ticket and frees its key once the collection is saved
func (s *GenerationServiceImpl) DeleteTicket(ctx context.Context, id primitive.ObjectID, key models.Key) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.publishSize()

	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i := coll.TicketIndex(key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, key)
	}
	coll.Tickets = append(coll.Tickets[:i], coll.Tickets[i+1:]...)
	if err := s.collectionRepo.Replace(ctx, coll); err != nil {
		return nil, fmt.Errorf("failed to save collection: %w", err)
	}
	s.ledger.Release(key)
	slog.Info("Ticket deleted", "collectionId", id.Hex(), "key", key)
	return coll, nil
}

// LedgerSize returns the number of allocated keys as of the last finished
// operation. It does not wait for a running batch.
func (s *GenerationServiceImpl) LedgerSize() int {
	return int(s.committed.Load())
}

// publishSize records the ledger size; callers hold mu
func (s *GenerationServiceImpl) publishSize() {
	s.committed.Store(int64(s.ledger.Len()))
}

// VerifyTicket resamples a ticket from the stream its provenance names,
// under the constraints it was generated with. A ticket whose stored numbers
// differ from the replay has been altered since generation.
func (s *GenerationServiceImpl) VerifyTicket(ctx context.Context, id primitive.ObjectID, key models.Key) (*models.TicketVerification, error) {
	coll, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i := coll.TicketIndex(key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, key)
	}
	ticket := coll.Tickets[i]
	limits, err := s.limits(ctx)
	if err != nil {
		return nil, err
	}

	prov := ticket.Provenance
	stream := ReplayFactory(prov, coll.ID)(prov.Slot, prov.Nonce)
	replayed, err := generator.NewSampler(limits).SampleOne(stream, prov.Constraints)
	if err != nil {
		return nil, fmt.Errorf("failed to replay ticket %s: %w", key, err)
	}
	v := &models.TicketVerification{
		Key:        ticket.Key,
		Provenance: prov,
		Replayed:   replayed,
		Reproduced: replayed == ticket.Combination,
	}
	if !v.Reproduced {
		slog.Warn("Ticket does not match its provenance", "collectionId", id.Hex(), "key", key, "replayed", replayed.Key())
	}
	return v, nil
}

func (s *GenerationServiceImpl) limits(ctx context.Context) (models.GenerationLimits, error) {
	if s.settingsRepo == nil {
		return models.GenerationLimits{}, nil
	}
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return models.GenerationLimits{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.Limits, nil
}

// scheduler builds a scheduler with the currently configured limits
func (s *GenerationServiceImpl) scheduler(ctx context.Context) (*generator.Scheduler, error) {
	limits, err := s.limits(ctx)
	if err != nil {
		return nil, err
	}
	sch := generator.NewScheduler(generator.NewSampler(limits))
	if s.yield != nil {
		sch.Yield = s.yield
	}
	return sch, nil
}

// batchFactory returns a stream factory whose slot 0 is the collection's
// next creation order, so no two batches in a collection share a slot.
// Without a seed, one entropy base is drawn for the whole batch.
func batchFactory(seed string, coll *models.Collection) (random.StreamFactory, models.Provenance, error) {
	var base random.StreamFactory
	prov := models.Provenance{Mode: models.ModeSeeded, Seed: seed}
	if seed != "" {
		base = random.SeededFactory(seed, coll.ID.Hex())
	} else {
		f, b, err := random.EntropyFactory()
		if err != nil {
			return nil, models.Provenance{}, fmt.Errorf("failed to read entropy: %w", err)
		}
		base = f
		prov = models.Provenance{Mode: models.ModeEntropy, Base: b}
	}
	first := coll.NextOrder
	return func(slot, nonce int) random.Stream {
		return base(first+slot, nonce)
	}, prov, nil
}

func newTicket(a generator.Allocation, first int, prov models.Provenance, now time.Time) models.Ticket {
	prov.Slot = first + a.Slot
	prov.Nonce = a.Nonce
	return models.Ticket{
		Combination: a.Combination,
		Key:         a.Key,
		Order:       first + a.Slot,
		Provenance:  prov,
		CreatedAt:   now,
	}
}

// ReplayFactory rebuilds the stream factory recorded in a ticket's
// provenance, indexed by absolute slot.
func ReplayFactory(prov models.Provenance, collectionID primitive.ObjectID) random.StreamFactory {
	if prov.Mode == models.ModeEntropy {
		return random.BaseFactory(prov.Base)
	}
	return random.SeededFactory(prov.Seed, collectionID.Hex())
}
