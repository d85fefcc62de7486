// Package sim provides the core discrete-event simulation engine for tiersim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: Request lifecycle (arrived → app → cache/db → completed)
//   - event.go: Event types that drive the simulation (Arrival, Departure)
//   - simulator.go: The event loop, topology wiring, and horizon handling
//
// # Architecture
//
// The engine models a fixed pipeline: a load balancer in front of N
// application servers, an optional cache stage, and a single data-tier
// server. Each station is a single-queue, single-server FIFO with an
// injectable service-time distribution. The scheduler is the sole driver
// of time; every event handler runs to completion before the next event
// is popped, and no I/O happens inside the loop.
//
// # Key Interfaces
//
// The extension points are small strategy interfaces:
//   - LoadBalancer: select the app server for an arriving request
//   - Distribution: draw inter-arrival and service-time samples
//
// All randomness flows through a StreamSet: one deterministic stream per
// concern (arrival, cache, balancer, each station's service times), so a
// replication's behavior depends only on its seed and configuration.
package sim
