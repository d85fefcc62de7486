package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Stream names for the engine's random concerns.
const (
	// StreamArrival drives inter-arrival time draws.
	StreamArrival = "arrival"

	// StreamCache drives cache hit/miss Bernoulli draws.
	StreamCache = "cache"

	// StreamBalancer drives the random load-balancing policy.
	StreamBalancer = "balancer"
)

// StreamStation returns the stream name for a station's service-time draws.
func StreamStation(station string) string {
	return fmt.Sprintf("service_%s", station)
}

// StreamSet provides deterministic, isolated RNG streams per concern.
//
// Derivation formula: streamSeed = seed XOR fnv1a64(streamName), so each
// stream's sequence depends only on the seed and its own name, never on
// the order in which other streams draw. Two StreamSets with the same
// seed MUST produce bit-for-bit identical sequences per stream.
//
// Thread-safety: NOT thread-safe. A StreamSet is owned by exactly one
// Simulation and called from its single event loop.
type StreamSet struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewStreamSet creates a StreamSet from a seed value.
func NewStreamSet(seed int64) *StreamSet {
	return &StreamSet{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// For returns the deterministically-seeded stream for the given name.
// The same name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (s *StreamSet) For(name string) *rand.Rand {
	if rng, ok := s.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(s.seed ^ fnv1a64(name)))
	s.streams[name] = rng
	return rng
}

// Seed returns the seed used to create this StreamSet.
func (s *StreamSet) Seed() int64 {
	return s.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
