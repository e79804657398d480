package generator

import (
	"fmt"
	"sort"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/random"
)

// Sampler fills single tickets by rejection sampling.
type Sampler struct {
	limits models.GenerationLimits
}

// NewSampler returns a Sampler bounded by limits; zero guards take their defaults.
func NewSampler(limits models.GenerationLimits) *Sampler {
	return &Sampler{limits: withDefaults(limits)}
}

// Limits returns the effective guards.
func (s *Sampler) Limits() models.GenerationLimits {
	return s.limits
}

// SampleOne draws one ticket from stream with the default guards.
func SampleOne(stream random.Stream, c models.Constraints) (models.Combination, error) {
	return NewSampler(models.GenerationLimits{}).SampleOne(stream, c)
}

// SampleOne seeds the ticket with the mandatory numbers and fills the rest
// from stream, skipping repeats and excluded numbers. The any-of rule is
// only checked once the ticket is full; a miss throws the whole ticket away
// and starts again from the next point of the same stream.
func (s *Sampler) SampleOne(stream random.Stream, c models.Constraints) (models.Combination, error) {
	must := dedupe(c.MustInclude)
	if len(must) > models.TicketSize {
		return models.Combination{}, fmt.Errorf("%w: %d mandatory numbers", ErrImpossibleConstraint, len(must))
	}
	excluded := newNumberSet(c.Exclude)
	for _, n := range must {
		if n < models.MinNumber || n > models.MaxNumber {
			return models.Combination{}, fmt.Errorf("%w: mandatory number %d out of range", ErrImpossibleConstraint, n)
		}
		if excluded[n] {
			return models.Combination{}, fmt.Errorf("%w: %d is both mandatory and excluded", ErrImpossibleConstraint, n)
		}
	}

	for attempt := 0; attempt < s.limits.AnyOfGuard; attempt++ {
		var picked numberSet
		var combo models.Combination
		size := 0
		for _, n := range must {
			picked[n] = true
			combo[size] = n
			size++
		}

		draws := 0
		for size < models.TicketSize {
			if draws >= s.limits.FillGuard {
				return models.Combination{}, fmt.Errorf("%w: no ticket after %d draws", ErrGenerationExhausted, draws)
			}
			draws++
			n := random.IntInRange(stream, models.MinNumber, models.MaxNumber)
			if picked[n] || excluded[n] {
				continue
			}
			picked[n] = true
			combo[size] = n
			size++
		}

		sort.Ints(combo[:])
		if IsValid(combo, c) {
			return combo, nil
		}
	}
	return models.Combination{}, fmt.Errorf("%w: any-of rule unmet after %d attempts", ErrGenerationExhausted, s.limits.AnyOfGuard)
}
