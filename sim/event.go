package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Each event has a
// scheduled time (in minutes) and an Execute method that advances
// simulation state when invoked. Events with equal times are processed in
// insertion order; the scheduler enforces that tie-break.
type Event interface {
	Time() float64
	Execute(*Simulation)
}

// ArrivalEvent represents the arrival of a new request into the system.
// The Request itself is created when the event is processed, not when the
// event is scheduled.
type ArrivalEvent struct {
	time float64
}

// Time returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Time() float64 {
	return e.time
}

// Execute creates the arriving request, schedules the next arrival
// (self-perpetuating arrival process, terminated by the horizon check in
// the run loop), and routes the request through the load balancer.
func (e *ArrivalEvent) Execute(sim *Simulation) {
	logrus.Debugf("<< Arrival at %.4f min", e.time)
	sim.handleArrival(e)
}

// DepartureEvent represents a request finishing service at a station.
type DepartureEvent struct {
	time    float64
	station *Server
}

// Time returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Time() float64 {
	return e.time
}

// Execute completes the in-service request at the station and moves it to
// its next stage (cache lookup, data tier, or completion).
func (e *DepartureEvent) Execute(sim *Simulation) {
	logrus.Debugf("<< Departure from %s at %.4f min", e.station.Name, e.time)
	sim.handleDeparture(e)
}
