package models

import (
	"errors"
	"fmt"
)

// ErrInvalidDrawInput is returned when a drawn outcome is malformed
var ErrInvalidDrawInput = errors.New("invalid draw input")

// Draw is the drawn outcome a collection is validated against
type Draw struct {
	Numbers   []int `bson:"numbers" json:"numbers" binding:"required"`
	Jolly     *int  `bson:"jolly,omitempty" json:"jolly,omitempty"`
	Superstar *int  `bson:"superstar,omitempty" json:"superstar,omitempty"`
}

// Validate checks the draw holds exactly 6 distinct in-range numbers and
// that the optional extras are in range. The jolly may not repeat a drawn number.
func (d Draw) Validate() error {
	if len(d.Numbers) != TicketSize {
		return fmt.Errorf("%w: need %d numbers, got %d", ErrInvalidDrawInput, TicketSize, len(d.Numbers))
	}
	seen := make(map[int]bool, TicketSize)
	for _, n := range d.Numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("%w: %d out of range", ErrInvalidDrawInput, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate number %d", ErrInvalidDrawInput, n)
		}
		seen[n] = true
	}
	if d.Jolly != nil {
		j := *d.Jolly
		if j < MinNumber || j > MaxNumber {
			return fmt.Errorf("%w: jolly %d out of range", ErrInvalidDrawInput, j)
		}
		if seen[j] {
			return fmt.Errorf("%w: jolly %d repeats a drawn number", ErrInvalidDrawInput, j)
		}
	}
	if d.Superstar != nil {
		s := *d.Superstar
		if s < MinNumber || s > MaxNumber {
			return fmt.Errorf("%w: superstar %d out of range", ErrInvalidDrawInput, s)
		}
	}
	return nil
}

// ValidateRequest scores a collection against a draw. A nil JackpotValue
// uses the configured jackpot.
type ValidateRequest struct {
	Draw         Draw     `json:"draw"`
	JackpotValue *float64 `json:"jackpotValue,omitempty"`
}
