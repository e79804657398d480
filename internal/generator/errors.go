// Package generator produces unique, constraint-satisfying 6-of-90 tickets.
//
// The pieces stack leaves first: constraint evaluation, a rejection
// sampler that fills one ticket from a random.Stream, a Ledger that keeps
// every allocated key unique across collections and reseeds on collision,
// and a Scheduler that runs a whole batch in chunks with all-or-nothing
// commit semantics.
package generator

import (
	"errors"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

var (
	// ErrImpossibleConstraint means no ticket can ever satisfy the constraints
	ErrImpossibleConstraint = errors.New("impossible constraint")
	// ErrGenerationExhausted means the per-ticket fill or any-of guard ran out
	ErrGenerationExhausted = errors.New("generation exhausted")
	// ErrUniquenessExhausted means a slot kept colliding with allocated keys
	ErrUniquenessExhausted = errors.New("uniqueness exhausted")
	// ErrDuplicateKey means a ledger was seeded with the same key twice
	ErrDuplicateKey = errors.New("duplicate key in ledger")
)

// Default guard values.
const (
	DefaultFillGuard  = 100_000
	DefaultAnyOfGuard = 1_000
	DefaultNonceGuard = 50_000
)

// DefaultLimits returns the stock guard values.
func DefaultLimits() models.GenerationLimits {
	return models.GenerationLimits{
		FillGuard:  DefaultFillGuard,
		AnyOfGuard: DefaultAnyOfGuard,
		NonceGuard: DefaultNonceGuard,
	}
}

// withDefaults fills any non-positive guard with its default.
func withDefaults(l models.GenerationLimits) models.GenerationLimits {
	if l.FillGuard <= 0 {
		l.FillGuard = DefaultFillGuard
	}
	if l.AnyOfGuard <= 0 {
		l.AnyOfGuard = DefaultAnyOfGuard
	}
	if l.NonceGuard <= 0 {
		l.NonceGuard = DefaultNonceGuard
	}
	return l
}
