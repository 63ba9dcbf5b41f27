package gen

import (
	"math/rand/v2"

	"github.com/opencomputeproject/ocp-telemetry/section"
)

// State carries everything a generation run shares: the random source, the
// timestamp clock and the registries of invented vendor unique names.
//
// A State is not safe for concurrent use.
type State struct {
	rng   *rand.Rand
	clock uint64

	// Events holds vendor unique event names (classes 80h and above).
	Events *Registry
	// VuEvents holds the names of vendor unique data attached to fixed
	// class events.
	VuEvents *Registry
}

// NewState creates a State drawing from rng with the timestamp clock set
// to start milliseconds.
func NewState(rng *rand.Rand, start uint64) *State {
	return &State{
		rng:      rng,
		clock:    start,
		Events:   NewRegistry(),
		VuEvents: NewRegistry(),
	}
}

// NewSeededState creates a State backed by a PCG source seeded with seed.
// Two states with the same seed and start produce the same logs.
func NewSeededState(seed, start uint64) *State {
	return NewState(rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)), start) //nolint:gosec
}

// Rand returns the underlying random source.
func (s *State) Rand() *rand.Rand {
	return s.rng
}

// Timestamp advances the clock by one millisecond and returns it as a
// timestamp set by a Set Features command. The clock wraps to zero past
// the 48-bit range.
func (s *State) Timestamp() section.Timestamp {
	s.clock++
	if s.clock > section.TimestampMax {
		s.clock = 0
	}

	return section.NewTimestamp(s.clock)
}

// Coin returns true or false with equal probability.
func (s *State) Coin() bool {
	return s.rng.IntN(2) == 1
}

// IntN returns a uniform int in [lo, hi]. It panics if hi < lo.
func (s *State) IntN(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Uint64Range returns a uniform uint64 in [lo, hi]. It panics if hi < lo.
func (s *State) Uint64Range(lo, hi uint64) uint64 {
	span := hi - lo
	if span == ^uint64(0) {
		return s.rng.Uint64()
	}

	return lo + s.rng.Uint64N(span+1)
}

// Uint16 returns a uniform uint16.
func (s *State) Uint16() uint16 {
	return uint16(s.rng.Uint32()) //nolint:gosec
}

// Uint32 returns a uniform uint32.
func (s *State) Uint32() uint32 {
	return s.rng.Uint32()
}

// Bytes returns n random bytes.
func (s *State) Bytes(n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i += 8 {
		v := s.rng.Uint64()
		for j := i; j < n && j < i+8; j++ {
			b[j] = byte(v)
			v >>= 8
		}
	}

	return b
}

// Pick returns a uniformly chosen element of items. It panics if items is
// empty.
func Pick[T any](s *State, items []T) T {
	return items[s.rng.IntN(len(items))]
}
