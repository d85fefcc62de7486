package sim

import "fmt"

// ConfigurationError reports an invalid parameter. It is returned before
// any event is scheduled; a Simulation is never partially constructed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ReplicationFailure reports an internal invariant violation (an event
// popped out of time order, a station completing service while idle).
// It is a programming-logic fault, not a user error: the replication is
// aborted immediately and its partial statistics are discarded.
type ReplicationFailure struct {
	Seed   int64
	Clock  float64
	Reason string
}

func (e *ReplicationFailure) Error() string {
	return fmt.Sprintf("replication invariant violated (seed %d, t=%.6f min): %s", e.Seed, e.Clock, e.Reason)
}
