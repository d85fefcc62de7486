package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// seedPrime spaces replication seeds so consecutive replications never
// share a seed for any realistic base seed.
const seedPrime = 1000003

// ReplicationSeed derives the deterministic seed for replication r.
func ReplicationSeed(base int64, r int) int64 {
	return base*seedPrime + int64(r)
}

// ReplicationRunner runs K independent replications of a scenario, each
// with its own derived seed and a completely private Simulation, and
// returns the raw per-replication results in replication order.
// Confidence-interval computation is a downstream concern.
type ReplicationRunner struct {
	cfg     Config
	workers int
}

// NewReplicationRunner creates a runner. workers bounds how many
// replications run concurrently; values < 1 default to GOMAXPROCS.
func NewReplicationRunner(cfg Config, workers int) *ReplicationRunner {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ReplicationRunner{cfg: cfg, workers: workers}
}

// Run executes cfg.NumReplications replications. Replications share no
// mutable state, so they run on a bounded worker pool; results are merged
// only after each finishes. The first failure cancels the remaining
// replications and is returned; partial results are discarded so aborted
// runs never bias downstream statistics.
func (rr *ReplicationRunner) Run(ctx context.Context) ([]*Result, error) {
	if err := rr.cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := rr.cfg.NumReplications
	results := make([]*Result, n)
	errs := make([]error, n)
	sem := make(chan struct{}, rr.workers)

	var wg sync.WaitGroup
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				errs[r] = ctx.Err()
				return
			}
			seed := ReplicationSeed(rr.cfg.Seed, r)
			sim, err := NewSimulation(rr.cfg, seed)
			if err != nil {
				errs[r] = err
				cancel()
				return
			}
			res, err := sim.Run(ctx)
			if err != nil {
				errs[r] = err
				cancel()
				return
			}
			res.Replication = r
			results[r] = res
		}(r)
	}
	wg.Wait()

	// Prefer a real failure over the context.Canceled errors it caused
	// in sibling replications.
	var firstErr error
	for r := 0; r < n; r++ {
		if errs[r] == nil {
			continue
		}
		wrapped := fmt.Errorf("replication %d: %w", r, errs[r])
		if !errors.Is(errs[r], context.Canceled) {
			return nil, wrapped
		}
		if firstErr == nil {
			firstErr = wrapped
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
