// Defines the Request struct that models an individual request flowing
// through the pipeline. Tracks arrival time and per-stage timestamps.

package sim

import "fmt"

// RequestState represents the lifecycle state of a request. Transitions
// are driven exclusively by event processing:
//
//	arrived → app_queued → app_in_service →
//	  cache hit:  [cache_queued → cache_in_service →] completed
//	  cache miss: db_queued → db_in_service → completed
type RequestState string

const (
	StateArrived        RequestState = "arrived"
	StateAppQueued      RequestState = "app_queued"
	StateAppInService   RequestState = "app_in_service"
	StateCacheQueued    RequestState = "cache_queued"
	StateCacheInService RequestState = "cache_in_service"
	StateDBQueued       RequestState = "db_queued"
	StateDBInService    RequestState = "db_in_service"
	StateCompleted      RequestState = "completed"
)

// CacheOutcome is the result of the cache lookup for a request.
type CacheOutcome string

const (
	CacheNone CacheOutcome = "n/a" // cache disabled or not yet consulted
	CacheHit  CacheOutcome = "hit"
	CacheMiss CacheOutcome = "miss"
)

// Request models a single request's trip through the pipeline. All times
// are in simulation minutes. A request is owned exclusively by the
// simulation while in flight and is mutated only by the stage it is
// currently traversing; once CompletionTime is set it is immutable.
type Request struct {
	ID          uint64
	ArrivalTime float64

	// AppServer is the index of the application server this request was
	// assigned to. Assigned exactly once, at arrival, never reassigned.
	AppServer int

	AppQueueEnter   float64
	AppServiceStart float64
	AppServiceEnd   float64

	Outcome CacheOutcome

	CacheQueueEnter   float64
	CacheServiceStart float64
	CacheServiceEnd   float64

	DBQueueEnter   float64
	DBServiceStart float64
	DBServiceEnd   float64

	CompletionTime float64

	State RequestState
}

// Latency returns the end-to-end time from arrival to completion.
// Only meaningful once State == StateCompleted.
func (r *Request) Latency() float64 {
	return r.CompletionTime - r.ArrivalTime
}

func (r Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, State: %s, ArrivalTime: %.4f)", r.ID, r.State, r.ArrivalTime)
}
