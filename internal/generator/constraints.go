package generator

import (
	"fmt"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

// numberSet is a membership table indexed by ticket number.
type numberSet [models.MaxNumber + 1]bool

func newNumberSet(numbers []int) numberSet {
	var s numberSet
	for _, n := range numbers {
		if n >= models.MinNumber && n <= models.MaxNumber {
			s[n] = true
		}
	}
	return s
}

// IsValid reports whether set satisfies every rule in c.
func IsValid(set models.Combination, c models.Constraints) bool {
	for _, n := range c.Exclude {
		if set.Contains(n) {
			return false
		}
	}
	for _, n := range c.MustInclude {
		if !set.Contains(n) {
			return false
		}
	}
	if len(c.MustIncludeAnyOf) == 0 {
		return true
	}
	for _, n := range c.MustIncludeAnyOf {
		if set.Contains(n) {
			return true
		}
	}
	return false
}

// ValidateConstraints rejects constraint sets that no ticket can satisfy.
func ValidateConstraints(c models.Constraints) error {
	must := dedupe(c.MustInclude)
	if len(must) > models.TicketSize {
		return fmt.Errorf("%w: %d mandatory numbers, at most %d allowed", ErrImpossibleConstraint, len(must), models.TicketSize)
	}
	for _, list := range [][]int{c.Exclude, c.MustInclude, c.MustIncludeAnyOf} {
		for _, n := range list {
			if n < models.MinNumber || n > models.MaxNumber {
				return fmt.Errorf("%w: number %d outside %d-%d", ErrImpossibleConstraint, n, models.MinNumber, models.MaxNumber)
			}
		}
	}

	excluded := newNumberSet(c.Exclude)
	for _, n := range must {
		if excluded[n] {
			return fmt.Errorf("%w: %d is both mandatory and excluded", ErrImpossibleConstraint, n)
		}
	}

	available := 0
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		if !excluded[n] {
			available++
		}
	}
	if available < models.TicketSize {
		return fmt.Errorf("%w: only %d numbers left after exclusions", ErrImpossibleConstraint, available)
	}

	if len(c.MustIncludeAnyOf) > 0 {
		reachable := false
		for _, n := range c.MustIncludeAnyOf {
			if !excluded[n] {
				reachable = true
				break
			}
		}
		if !reachable {
			return fmt.Errorf("%w: every any-of number is excluded", ErrImpossibleConstraint)
		}
		if len(must) == models.TicketSize {
			anyOf := newNumberSet(c.MustIncludeAnyOf)
			hit := false
			for _, n := range must {
				hit = hit || anyOf[n]
			}
			if !hit {
				return fmt.Errorf("%w: mandatory numbers fill the ticket and miss every any-of number", ErrImpossibleConstraint)
			}
		}
	}
	return nil
}

func dedupe(numbers []int) []int {
	seen := make(map[int]bool, len(numbers))
	out := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
