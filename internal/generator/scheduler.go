package generator

import (
	"context"
	"runtime"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/random"
)

// ProgressFunc receives (done, total) after every chunk.
type ProgressFunc func(done, total int)

// Batch describes one all-or-nothing generation run.
type Batch struct {
	Count       int
	Constraints models.Constraints
	Factory     random.StreamFactory
	// Replace lists keys freed before sampling, so replacements may not
	// collide with the tickets they replace.
	Replace []models.Key
}

// Result is the outcome of a committed batch.
type Result struct {
	Allocations []Allocation
	Released    []models.Key
}

// Keys returns the allocated keys in slot order.
func (r *Result) Keys() []models.Key {
	keys := make([]models.Key, len(r.Allocations))
	for i, a := range r.Allocations {
		keys[i] = a.Key
	}
	return keys
}

// Revert undoes a committed batch on l, e.g. when persisting it failed.
func (r *Result) Revert(l *Ledger) {
	l.releaseAllocations(r.Allocations)
	l.restore(r.Released)
}

// Scheduler runs batches in chunks, yielding between chunks.
type Scheduler struct {
	Sampler *Sampler
	// Yield is called between chunks; defaults to runtime.Gosched.
	Yield func()
	// ChunkSize picks the chunk length for a batch of n; defaults to ChunkSize.
	ChunkSize func(n int) int
}

// NewScheduler returns a Scheduler using sampler and the default chunking.
func NewScheduler(sampler *Sampler) *Scheduler {
	return &Scheduler{Sampler: sampler, Yield: runtime.Gosched, ChunkSize: ChunkSize}
}

// ChunkSize grows with the batch so small batches report often and large
// ones do not pay for too many yields.
func ChunkSize(n int) int {
	switch {
	case n <= 100:
		return 10
	case n <= 1_000:
		return 50
	case n <= 10_000:
		return 250
	default:
		return 1_000
	}
}

// Run allocates b.Count tickets on l. Cancellation of ctx is observed only
// between chunks. On cancellation or error, every key the batch allocated
// is released and every replaced key restored, leaving l exactly as it was.
func (s *Scheduler) Run(ctx context.Context, l *Ledger, b Batch, progress ProgressFunc) (*Result, error) {
	if err := ValidateConstraints(b.Constraints); err != nil {
		return nil, err
	}

	yield := s.Yield
	if yield == nil {
		yield = runtime.Gosched
	}
	chunkSize := s.ChunkSize
	if chunkSize == nil {
		chunkSize = ChunkSize
	}
	sampler := s.Sampler
	if sampler == nil {
		sampler = NewSampler(models.GenerationLimits{})
	}

	res := &Result{Released: l.Release(b.Replace...)}
	total := b.Count
	size := chunkSize(total)
	if size < 1 {
		size = 1
	}

	for done := 0; done < total; {
		if err := ctx.Err(); err != nil {
			res.Revert(l)
			return nil, err
		}

		n := size
		if total-done < n {
			n = total - done
		}
		offset := done
		factory := func(slot, nonce int) random.Stream {
			return b.Factory(offset+slot, nonce)
		}
		allocs, err := l.Allocate(sampler, n, factory, b.Constraints)
		if err != nil {
			res.Revert(l)
			return nil, err
		}
		for i := range allocs {
			allocs[i].Slot += offset
		}
		res.Allocations = append(res.Allocations, allocs...)
		done += n

		if progress != nil {
			progress(done, total)
		}
		if done < total {
			yield()
		}
	}
	return res, nil
}
