package sim

import "math/rand"

// Load-balancing strategy names accepted in configuration.
const (
	StrategyRoundRobin       = "round_robin"
	StrategyRandom           = "random"
	StrategyLeastConnections = "least_connections"
)

// LoadBalancer defines the interface for routing requests to application
// servers. Every request is assigned to exactly one server at arrival
// time and never reassigned.
type LoadBalancer interface {
	// SelectServer returns the index of the server that should handle
	// the incoming request. servers is the current fleet state, for
	// state-aware policies.
	SelectServer(req *Request, servers []*Server) int

	// Strategy returns the policy name for reporting.
	Strategy() string
}

// NewLoadBalancer creates a load balancer of the named strategy. The rng
// is the balancer's private stream; only the random policy draws from it.
func NewLoadBalancer(strategy string, rng *rand.Rand) (LoadBalancer, error) {
	switch strategy {
	case StrategyRoundRobin:
		return &RoundRobinBalancer{}, nil
	case StrategyRandom:
		return NewRandomBalancer(rng), nil
	case StrategyLeastConnections:
		return &LeastConnectionsBalancer{}, nil
	default:
		return nil, &ConfigurationError{Field: "load_balancing_strategy", Reason: "unknown strategy " + strategy}
	}
}

// AvailableStrategies returns the supported load-balancing strategies.
func AvailableStrategies() []string {
	return []string{StrategyRoundRobin, StrategyRandom, StrategyLeastConnections}
}
