// Package synth provides the injectable randomness and clock used by the
// analytics synthesizers.
package synth

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies pseudo-random values and the current time.
// Implementations must be safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Now returns the current time.
	Now() time.Time
}

// Clock returns the current time
type Clock func() time.Time

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type seededSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock Clock
}

// NewSource returns a Source backed by a seeded generator.
// A zero seed uses the current time; a nil clock uses time.Now.
func NewSource(seed int64, clock Clock) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if clock == nil {
		clock = time.Now
	}
	return &seededSource{
		rng:   rand.New(rand.NewSource(seed)),
		clock: clock,
	}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *seededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *seededSource) Now() time.Time {
	return s.clock()
}

// Range returns a value in [lo, hi)
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// IntRange returns a value in [lo, hi)
func IntRange(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo)
}

// Chance reports true with probability p
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a random element of items
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NodeID returns a synthetic "NodeID-" identifier with n random characters
func NodeID(src Source, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[src.Intn(len(alphanumeric))]
	}
	return "NodeID-" + string(b)
}

// HexString returns a "0x" prefixed string of n random hex digits
func HexString(src Source, n int) string {
	const digits = "0123456789abcdef"
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[src.Intn(len(digits))]
	}
	return "0x" + string(b)
}
