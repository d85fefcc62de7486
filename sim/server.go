package sim

import (
	"fmt"
	"math/rand"
)

// Tier identifies which pipeline stage a station belongs to. It decides
// which per-stage timestamps are stamped onto traversing requests.
type Tier string

const (
	TierApp   Tier = "app"
	TierCache Tier = "cache"
	TierDB    Tier = "db"
)

// Server models a single-queue, single-server FIFO station with an
// injectable service-time distribution.
//
// Invariants: busy == true iff a request occupies the service slot, and
// the queue never contains the request in service. Queue-length and busy
// time are accumulated as time-integrals on every state change
// (Little's-law-consistent), not as sampled averages.
type Server struct {
	Name string
	Tier Tier

	dist Distribution
	rng  *rand.Rand

	busy      bool
	inService *Request
	queue     *FIFOQueue

	// Time-integral accumulators. lastChange is the time of the most
	// recent state change; integrals cover [0, lastChange).
	lastChange float64
	busyTime   float64
	queueArea  float64 // integral of waiting-queue length (excludes in-service)

	arrivals      int64
	departures    int64
	started       int64 // services begun (wait samples recorded)
	totalWait     float64
	totalService  float64
	totalResponse float64
}

// NewServer creates a station. dist supplies service times; rng is the
// station's private service-time stream.
func NewServer(name string, tier Tier, dist Distribution, rng *rand.Rand) *Server {
	return &Server{
		Name:  name,
		Tier:  tier,
		dist:  dist,
		rng:   rng,
		queue: &FIFOQueue{},
	}
}

// Enqueue appends a request to the station at time now. If the server is
// idle, service begins immediately and the departure time is returned
// with started == true; the caller schedules the Departure event.
func (s *Server) Enqueue(req *Request, now float64) (departAt float64, started bool) {
	s.accumulate(now)
	s.arrivals++
	s.stampQueueEnter(req, now)

	if !s.busy {
		s.busy = true
		s.inService = req
		return now + s.beginService(req, now), true
	}
	s.queue.Enqueue(req)
	return 0, false
}

// CompleteService finishes the in-service request at time now and returns
// it. If the queue is non-empty the next request begins service
// immediately (a zero-time transition: no intermediate event, but the
// statistics integrals are advanced to now first) and its departure time
// is returned with started == true.
func (s *Server) CompleteService(now float64) (done *Request, nextDepartAt float64, started bool, err error) {
	if !s.busy || s.inService == nil {
		return nil, 0, false, fmt.Errorf("station %s: departure while idle", s.Name)
	}
	s.accumulate(now)

	done = s.inService
	s.stampServiceEnd(done, now)
	s.departures++
	s.totalResponse += now - s.queueEnter(done)

	s.busy = false
	s.inService = nil

	if next := s.queue.Dequeue(); next != nil {
		s.busy = true
		s.inService = next
		return done, now + s.beginService(next, now), true, nil
	}
	return done, 0, false, nil
}

// beginService draws the service-time sample for req and stamps its
// service-start timestamp. Returns the sampled service time.
func (s *Server) beginService(req *Request, now float64) float64 {
	s.stampServiceStart(req, now)
	s.started++
	s.totalWait += now - s.queueEnter(req)
	sample := s.dist.Sample(s.rng)
	s.totalService += sample
	return sample
}

// accumulate advances the busy-time and queue-area integrals to now.
func (s *Server) accumulate(now float64) {
	dt := now - s.lastChange
	if dt <= 0 {
		return
	}
	if s.busy {
		s.busyTime += dt
	}
	s.queueArea += float64(s.queue.Len()) * dt
	s.lastChange = now
}

// Load returns the number of requests enqueued or in service. Used by the
// least-connections policy.
func (s *Server) Load() int {
	n := s.queue.Len()
	if s.busy {
		n++
	}
	return n
}

// QueueLen returns the number of waiting requests (excludes in-service).
func (s *Server) QueueLen() int {
	return s.queue.Len()
}

// Busy reports whether a request currently occupies the service slot.
func (s *Server) Busy() bool {
	return s.busy
}

// Stats finalizes the integrals at the given elapsed simulation time and
// returns the station's statistics.
func (s *Server) Stats(elapsed float64) StationStats {
	s.accumulate(elapsed)

	st := StationStats{
		Name:       s.Name,
		Arrivals:   s.arrivals,
		Departures: s.departures,
	}
	if elapsed > 0 {
		st.Utilization = s.busyTime / elapsed
		st.AvgQueueLength = s.queueArea / elapsed
		st.Throughput = float64(s.departures) / elapsed
	}
	if s.started > 0 {
		st.AvgWaitTime = s.totalWait / float64(s.started)
	}
	if s.departures > 0 {
		st.AvgResponseTime = s.totalResponse / float64(s.departures)
	}
	return st
}

func (s *Server) stampQueueEnter(req *Request, now float64) {
	switch s.Tier {
	case TierApp:
		req.AppQueueEnter = now
		req.State = StateAppQueued
	case TierCache:
		req.CacheQueueEnter = now
		req.State = StateCacheQueued
	case TierDB:
		req.DBQueueEnter = now
		req.State = StateDBQueued
	}
}

func (s *Server) stampServiceStart(req *Request, now float64) {
	switch s.Tier {
	case TierApp:
		req.AppServiceStart = now
		req.State = StateAppInService
	case TierCache:
		req.CacheServiceStart = now
		req.State = StateCacheInService
	case TierDB:
		req.DBServiceStart = now
		req.State = StateDBInService
	}
}

func (s *Server) stampServiceEnd(req *Request, now float64) {
	switch s.Tier {
	case TierApp:
		req.AppServiceEnd = now
	case TierCache:
		req.CacheServiceEnd = now
	case TierDB:
		req.DBServiceEnd = now
	}
}

// queueEnter returns the time req entered this station's queue.
func (s *Server) queueEnter(req *Request) float64 {
	switch s.Tier {
	case TierApp:
		return req.AppQueueEnter
	case TierCache:
		return req.CacheQueueEnter
	default:
		return req.DBQueueEnter
	}
}
