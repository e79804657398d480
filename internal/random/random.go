// Package random provides the deterministic float streams used by the
// ticket generator.
//
// Every stream is a Mulberry32 generator. Seeded streams derive their
// 32-bit state from an xxhash of the seed string; entropy streams draw one
// value from crypto/rand and otherwise behave identically, so code that
// consumes a Stream does not care how it was bootstrapped.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Stream yields pseudorandom floats in [0,1).
type Stream interface {
	Float64() float64
}

// Mulberry32 is a small scrambling 32-bit generator.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 returns a generator starting at the given state.
func NewMulberry32(state uint32) *Mulberry32 {
	return &Mulberry32{state: state}
}

// Float64 returns the next value in [0,1).
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// HashSeed maps a seed string to a 32-bit generator state.
func HashSeed(seed string) uint32 {
	h := xxhash.Sum64String(seed)
	return uint32(h ^ (h >> 32))
}

// SeededStream returns the stream for a seed string. The same seed always
// yields the same sequence.
func SeededStream(seed string) Stream {
	return NewMulberry32(HashSeed(seed))
}

// NewEntropySeed reads one 32-bit value from the system entropy source.
func NewEntropySeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// EntropyStream returns a stream bootstrapped from system entropy.
func EntropyStream() (Stream, error) {
	seed, err := NewEntropySeed()
	if err != nil {
		return nil, err
	}
	return NewMulberry32(seed), nil
}

// IntInRange maps the next draw of s to an integer in [min, max].
func IntInRange(s Stream, min, max int) int {
	return int(math.Floor(s.Float64()*float64(max-min+1))) + min
}

// StreamFactory returns the stream for a generation slot and retry nonce.
type StreamFactory func(slot, nonce int) Stream

// SeededFactory derives one stream per (seed, collection, slot, nonce).
func SeededFactory(seed, collectionID string) StreamFactory {
	return func(slot, nonce int) Stream {
		return SeededStream(DerivationKey(seed, collectionID, slot, nonce))
	}
}

// DerivationKey is the string a seeded slot stream is hashed from.
func DerivationKey(seed, collectionID string, slot, nonce int) string {
	return seed + "|" + collectionID + "|" + strconv.Itoa(slot) + "|" + strconv.Itoa(nonce)
}

// golden is the 32-bit golden ratio constant used to spread slots apart.
const golden = 0x9E3779B9

// EntropyFactory draws one random base and perturbs it by slot and nonce.
func EntropyFactory() (StreamFactory, uint32, error) {
	base, err := NewEntropySeed()
	if err != nil {
		return nil, 0, err
	}
	return BaseFactory(base), base, nil
}

// BaseFactory is the deterministic half of EntropyFactory; it is exposed so
// a recorded base can be replayed.
func BaseFactory(base uint32) StreamFactory {
	return func(slot, nonce int) Stream {
		return NewMulberry32(base + uint32(slot)*golden + uint32(nonce))
	}
}
