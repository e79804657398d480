package generator

import (
	"fmt"
	"sort"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/random"
)

// Ledger is the set of keys allocated across every collection. Allocate and
// Release are its only mutating operations. A Ledger is not safe for
// concurrent use; callers serialise batches.
type Ledger struct {
	keys map[models.Key]struct{}
}

// Allocation is one accepted ticket together with the slot and nonce that produced it.
type Allocation struct {
	Combination models.Combination
	Key         models.Key
	Slot        int
	Nonce       int
}

// NewLedger builds a ledger from keys that are already in use.
func NewLedger(keys []models.Key) (*Ledger, error) {
	l := &Ledger{keys: make(map[models.Key]struct{}, len(keys))}
	for _, k := range keys {
		if _, ok := l.keys[k]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, k)
		}
		l.keys[k] = struct{}{}
	}
	return l, nil
}

// Len returns the number of allocated keys.
func (l *Ledger) Len() int {
	return len(l.keys)
}

// Contains reports whether k is allocated.
func (l *Ledger) Contains(k models.Key) bool {
	_, ok := l.keys[k]
	return ok
}

// Keys returns every allocated key in sorted order.
func (l *Ledger) Keys() []models.Key {
	out := make([]models.Key, 0, len(l.keys))
	for k := range l.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Allocate produces count new tickets, one per slot in [0,count). A slot
// whose sample collides with an allocated key is resampled from
// factory(slot, nonce+1) until it is unique or the nonce guard runs out.
// On error every key inserted by this call is released again.
func (l *Ledger) Allocate(s *Sampler, count int, factory random.StreamFactory, c models.Constraints) ([]Allocation, error) {
	out := make([]Allocation, 0, count)
	guard := s.Limits().NonceGuard

	for slot := 0; slot < count; slot++ {
		accepted := false
		for nonce := 0; nonce < guard; nonce++ {
			combo, err := s.SampleOne(factory(slot, nonce), c)
			if err != nil {
				l.releaseAllocations(out)
				return nil, err
			}
			key := combo.Key()
			if l.Contains(key) {
				continue
			}
			l.keys[key] = struct{}{}
			out = append(out, Allocation{Combination: combo, Key: key, Slot: slot, Nonce: nonce})
			accepted = true
			break
		}
		if !accepted {
			l.releaseAllocations(out)
			return nil, fmt.Errorf("%w: slot %d collided %d times", ErrUniquenessExhausted, slot, guard)
		}
	}
	return out, nil
}

// Release frees keys and returns the ones that were actually allocated.
func (l *Ledger) Release(keys ...models.Key) []models.Key {
	freed := make([]models.Key, 0, len(keys))
	for _, k := range keys {
		if _, ok := l.keys[k]; ok {
			delete(l.keys, k)
			freed = append(freed, k)
		}
	}
	return freed
}

func (l *Ledger) releaseAllocations(allocs []Allocation) {
	for _, a := range allocs {
		delete(l.keys, a.Key)
	}
}

// restore puts back keys freed earlier in the same batch.
func (l *Ledger) restore(keys []models.Key) {
	for _, k := range keys {
		l.keys[k] = struct{}{}
	}
}
