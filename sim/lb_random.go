package sim

import "math/rand"

// RandomBalancer routes each request to a uniformly random server,
// drawing from its own dedicated stream.
type RandomBalancer struct {
	rng *rand.Rand
}

// NewRandomBalancer creates a random load balancer.
func NewRandomBalancer(rng *rand.Rand) *RandomBalancer {
	return &RandomBalancer{rng: rng}
}

// SelectServer returns a uniform independent draw over [0, len(servers)).
func (lb *RandomBalancer) SelectServer(_ *Request, servers []*Server) int {
	return lb.rng.Intn(len(servers))
}

func (lb *RandomBalancer) Strategy() string {
	return StrategyRandom
}
