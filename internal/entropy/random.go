// Package entropy provides the single uniform randomness source used by the
// political simulation. Every probabilistic draw in the core goes through a
// Source so tests can substitute a deterministic seeded generator.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source yields uniform random floats in [0, 1). Implementations need not be
// safe for concurrent use; a civilization's turn runs on one goroutine.
type Source interface {
	Float() float64
}

// Seeded is a deterministic Source backed by math/rand.
type Seeded struct {
	rng *mathrand.Rand
}

// NewSeeded creates a deterministic Source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Float returns the next uniform float64 in [0, 1).
func (s *Seeded) Float() float64 {
	return s.rng.Float64()
}

// Crypto is a Source backed by crypto/rand for production runs where draws
// must not be predictable from a seed.
type Crypto struct{}

// NewCrypto creates a crypto/rand-backed Source.
func NewCrypto() *Crypto {
	return &Crypto{}
}

// Float returns a uniform float64 in [0, 1) using crypto/rand.
func (Crypto) Float() float64 {
	return cryptoRandFloat()
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Fixed is a Source that replays a fixed sequence of values, cycling when
// exhausted. Test helper for forcing a specific draw outcome.
type Fixed struct {
	values []float64
	next   int
}

// NewFixed creates a Source replaying the given values.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &Fixed{values: values}
}

// Float returns the next value in the sequence.
func (f *Fixed) Float() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
