package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Number space of the game: tickets pick TicketSize numbers out of 1..MaxNumber.
const (
	MinNumber  = 1
	MaxNumber  = 90
	TicketSize = 6
)

// ErrInvalidCombination is returned when a set of numbers is not a valid ticket
var ErrInvalidCombination = errors.New("invalid combination")

// Combination is a 6-number ticket kept in ascending order
type Combination [TicketSize]int

// Key is the order-independent identity of a Combination, e.g. "3-17-22-41-60-88"
type Key string

// NewCombination validates numbers and returns them in canonical sorted form
func NewCombination(numbers []int) (Combination, error) {
	var c Combination
	if len(numbers) != TicketSize {
		return c, fmt.Errorf("%w: need %d numbers, got %d", ErrInvalidCombination, TicketSize, len(numbers))
	}
	seen := make(map[int]bool, TicketSize)
	for i, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return c, fmt.Errorf("%w: %d out of range", ErrInvalidCombination, n)
		}
		if seen[n] {
			return c, fmt.Errorf("%w: duplicate number %d", ErrInvalidCombination, n)
		}
		seen[n] = true
		c[i] = n
	}
	sort.Ints(c[:])
	return c, nil
}

// Key returns the canonical string identity
func (c Combination) Key() Key {
	parts := make([]string, TicketSize)
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return Key(strings.Join(parts, "-"))
}

// Numbers returns the numbers as a slice
func (c Combination) Numbers() []int {
	out := make([]int, TicketSize)
	copy(out, c[:])
	return out
}

// Contains reports whether n is on the ticket
func (c Combination) Contains(n int) bool {
	i := sort.SearchInts(c[:], n)
	return i < TicketSize && c[i] == n
}

// String implements fmt.Stringer
func (c Combination) String() string {
	return string(c.Key())
}

// ParseKey turns a Key back into a Combination
func ParseKey(k Key) (Combination, error) {
	parts := strings.Split(string(k), "-")
	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Combination{}, fmt.Errorf("%w: bad key %q", ErrInvalidCombination, k)
		}
		numbers = append(numbers, n)
	}
	return NewCombination(numbers)
}

// Constraints restricts which combinations the generator may produce
type Constraints struct {
	Exclude          []int `bson:"exclude,omitempty" json:"exclude,omitempty"`
	MustInclude      []int `bson:"mustInclude,omitempty" json:"mustInclude,omitempty"`
	MustIncludeAnyOf []int `bson:"mustIncludeAnyOf,omitempty" json:"mustIncludeAnyOf,omitempty"`
}
