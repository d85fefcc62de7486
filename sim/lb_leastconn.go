package sim

// LeastConnectionsBalancer routes to the server with the fewest requests
// enqueued or in service. Ties break to the lowest index so replications
// stay reproducible. O(N) per call; the fleet size is small and bounded.
type LeastConnectionsBalancer struct{}

// SelectServer returns the index of the least-loaded server.
func (lb *LeastConnectionsBalancer) SelectServer(_ *Request, servers []*Server) int {
	best := 0
	bestLoad := servers[0].Load()
	for i := 1; i < len(servers); i++ {
		if load := servers[i].Load(); load < bestLoad {
			best = i
			bestLoad = load
		}
	}
	return best
}

func (lb *LeastConnectionsBalancer) Strategy() string {
	return StrategyLeastConnections
}
