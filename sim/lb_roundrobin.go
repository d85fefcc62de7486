package sim

// RoundRobinBalancer cycles through servers in index order. Deterministic,
// stateful, fair by construction.
type RoundRobinBalancer struct {
	next int
}

// SelectServer returns the next index in the cycle.
func (lb *RoundRobinBalancer) SelectServer(_ *Request, servers []*Server) int {
	idx := lb.next
	lb.next = (lb.next + 1) % len(servers)
	return idx
}

func (lb *RoundRobinBalancer) Strategy() string {
	return StrategyRoundRobin
}
