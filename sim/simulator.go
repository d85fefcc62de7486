package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrBudgetExceeded is returned when a replication processes more events
// than Config.MaxEvents allows. The replication's partial statistics are
// discarded.
var ErrBudgetExceeded = errors.New("event budget exceeded")

// Simulation wires the fixed topology (load balancer → N app servers →
// optional cache → one data-tier server) and runs one replication to
// completion. A Simulation owns all of its state — scheduler, stations,
// cache, balancer, and random streams — so independent replications can
// run concurrently without any shared mutable objects.
type Simulation struct {
	cfg       Config
	seed      int64
	clock     float64
	scheduler *EventScheduler
	streams   *StreamSet

	arrivalDist Distribution
	lb          LoadBalancer
	appServers  []*Server
	cacheServer *Server // nil unless cache enabled with a cache-tier rate
	dbServer    *Server
	cache       *Cache // nil when cache disabled

	nextRequestID     uint64
	totalArrivals     int64
	inFlight          int64
	completed         []*Request
	perServerRequests []int64

	warnings []string
	failure  error
}

// NewSimulation validates cfg and constructs a fresh replication with the
// given seed. On a validation error no Simulation is constructed.
func NewSimulation(cfg Config, seed int64) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	streams := NewStreamSet(seed)
	lb, err := NewLoadBalancer(cfg.Strategy, streams.For(StreamBalancer))
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:               cfg,
		seed:              seed,
		scheduler:         NewEventScheduler(),
		streams:           streams,
		arrivalDist:       NewDistribution(cfg.ArrivalRate, cfg.ArrivalCV),
		lb:                lb,
		perServerRequests: make([]int64, cfg.NumAppServers),
	}

	for i := 0; i < cfg.NumAppServers; i++ {
		name := fmt.Sprintf("app_%d", i)
		dist := NewDistribution(cfg.AppServiceRate, cfg.AppServiceCV)
		s.appServers = append(s.appServers, NewServer(name, TierApp, dist, streams.For(StreamStation(name))))
	}
	s.dbServer = NewServer("db", TierDB, NewDistribution(cfg.DBServiceRate, cfg.DBServiceCV), streams.For(StreamStation("db")))

	if cfg.CacheEnabled {
		s.cache = NewCache(cfg.CacheHitRate, streams.For(StreamCache))
		if cfg.CacheServiceRate > 0 {
			s.cacheServer = NewServer("cache", TierCache, NewDistribution(cfg.CacheServiceRate, cfg.CacheServiceCV), streams.For(StreamStation("cache")))
		}
	}

	s.warnings = cfg.InstabilityWarnings()
	for _, w := range s.warnings {
		logrus.Warnf("seed %d: %s", seed, w)
	}
	return s, nil
}

// Run executes the replication until the horizon (and, in drain mode,
// until the system empties), then returns the raw statistics. ctx aborts
// the run between events; on abort or invariant violation the partial
// result is discarded and an error is returned.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	horizon := s.cfg.SimulationTime

	// Self-perpetuating arrival process: the first arrival happens one
	// inter-arrival time after t=0, each arrival schedules the next.
	s.scheduler.Schedule(&ArrivalEvent{time: s.arrivalDist.Sample(s.streams.For(StreamArrival))})

	var processed int64
	for s.scheduler.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replication aborted at t=%.4f: %w", s.clock, err)
		}
		if s.cfg.MaxEvents > 0 && processed >= s.cfg.MaxEvents {
			return nil, fmt.Errorf("replication aborted at t=%.4f after %d events: %w", s.clock, processed, ErrBudgetExceeded)
		}

		ev := s.scheduler.PopNext()
		t := ev.Time()
		if t < s.clock {
			return nil, &ReplicationFailure{
				Seed:   s.seed,
				Clock:  s.clock,
				Reason: fmt.Sprintf("event popped out of time order: %.6f < %.6f", t, s.clock),
			}
		}
		if t > horizon {
			if !s.cfg.DrainAtHorizon {
				break
			}
			// Drain mode: arrivals cease at the horizon; in-flight work
			// runs to completion.
			if _, isArrival := ev.(*ArrivalEvent); isArrival {
				continue
			}
		}

		s.clock = t
		ev.Execute(s)
		processed++

		if s.failure != nil {
			return nil, s.failure
		}
	}

	return s.buildResult()
}

// handleArrival processes an ArrivalEvent: create the request, schedule
// the next arrival, and route through the load balancer.
func (s *Simulation) handleArrival(e *ArrivalEvent) {
	s.scheduler.Schedule(&ArrivalEvent{time: e.time + s.arrivalDist.Sample(s.streams.For(StreamArrival))})

	req := &Request{
		ID:          s.nextRequestID,
		ArrivalTime: e.time,
		Outcome:     CacheNone,
		State:       StateArrived,
	}
	s.nextRequestID++
	s.totalArrivals++
	s.inFlight++

	idx := s.lb.SelectServer(req, s.appServers)
	if idx < 0 || idx >= len(s.appServers) {
		s.fail(fmt.Sprintf("balancer selected server %d of %d", idx, len(s.appServers)))
		return
	}
	req.AppServer = idx
	s.perServerRequests[idx]++
	s.enqueue(s.appServers[idx], req)
}

// handleDeparture processes a DepartureEvent: finish service at the
// station, start the next waiting request if any, and advance the
// departing request to its next stage.
func (s *Simulation) handleDeparture(e *DepartureEvent) {
	srv := e.station
	done, nextDepart, started, err := srv.CompleteService(s.clock)
	if err != nil {
		s.fail(err.Error())
		return
	}
	if started {
		s.scheduler.Schedule(&DepartureEvent{time: nextDepart, station: srv})
	}

	switch srv.Tier {
	case TierApp:
		if s.cache != nil {
			outcome := s.cache.Lookup()
			done.Outcome = outcome
			if outcome == CacheHit {
				if s.cacheServer != nil {
					s.enqueue(s.cacheServer, done)
					return
				}
				s.complete(done)
				return
			}
		}
		s.enqueue(s.dbServer, done)
	case TierCache, TierDB:
		s.complete(done)
	}
}

// enqueue places req at srv and schedules its departure if service began
// immediately.
func (s *Simulation) enqueue(srv *Server, req *Request) {
	if departAt, started := srv.Enqueue(req, s.clock); started {
		s.scheduler.Schedule(&DepartureEvent{time: departAt, station: srv})
	}
}

// complete marks req completed at the current clock and moves it into the
// completed collection. The request is not mutated afterwards.
func (s *Simulation) complete(req *Request) {
	req.CompletionTime = s.clock
	req.State = StateCompleted
	s.inFlight--
	s.completed = append(s.completed, req)
	logrus.Debugf("completed request %d at %.4f min (latency %.4f)", req.ID, s.clock, req.Latency())
}

// fail records the first invariant violation; the run loop aborts on it.
func (s *Simulation) fail(reason string) {
	if s.failure == nil {
		s.failure = &ReplicationFailure{Seed: s.seed, Clock: s.clock, Reason: reason}
	}
}

// buildResult finalizes statistics over the elapsed simulation time.
func (s *Simulation) buildResult() (*Result, error) {
	horizon := s.cfg.SimulationTime
	elapsed := horizon
	if s.cfg.DrainAtHorizon && s.clock > horizon {
		elapsed = s.clock
	}

	// Conservation check: every generated arrival is either completed or
	// still in the system.
	if int64(len(s.completed))+s.inFlight != s.totalArrivals {
		return nil, &ReplicationFailure{
			Seed:  s.seed,
			Clock: s.clock,
			Reason: fmt.Sprintf("conservation violated: completed %d + in flight %d != arrivals %d",
				len(s.completed), s.inFlight, s.totalArrivals),
		}
	}

	res := &Result{
		Seed:           s.seed,
		Elapsed:        elapsed,
		TotalArrivals:  s.totalArrivals,
		CompletedCount: int64(len(s.completed)),
		Completed:      s.completed,
		Warnings:       s.warnings,
	}
	if s.cfg.DrainAtHorizon {
		res.InSystemCount = s.inFlight
	} else {
		res.AbandonedCount = s.inFlight
	}

	res.Latencies = make([]float64, len(s.completed))
	for i, req := range s.completed {
		res.Latencies[i] = req.Latency()
	}
	res.Latency = summarizeLatencies(res.Latencies)
	res.AvgEndToEnd = res.Latency.Mean
	if elapsed > 0 {
		res.SystemThroughput = float64(len(s.completed)) / elapsed
	}

	appRho := s.cfg.appOfferedLoad()
	for _, srv := range s.appServers {
		st := srv.Stats(elapsed)
		st.OfferedLoad = appRho
		st.Unstable = appRho >= 1
		res.AppServers = append(res.AppServers, st)
	}
	res.DB = s.dbServer.Stats(elapsed)
	res.DB.OfferedLoad = s.cfg.dbOfferedLoad()
	res.DB.Unstable = res.DB.OfferedLoad >= 1
	if s.cacheServer != nil {
		st := s.cacheServer.Stats(elapsed)
		st.OfferedLoad = s.cfg.cacheOfferedLoad()
		st.Unstable = st.OfferedLoad >= 1
		res.CacheServer = &st
	}
	if s.cache != nil {
		cs := s.cache.Stats()
		res.Cache = &cs
	}
	res.Balancer = BalancerStats{
		Strategy:          s.lb.Strategy(),
		PerServerRequests: s.perServerRequests,
	}
	return res, nil
}

// Clock returns the current simulation time in minutes.
func (s *Simulation) Clock() float64 {
	return s.clock
}
