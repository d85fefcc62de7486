package sim

import "fmt"

// Config holds all parameters for one simulation scenario. Rates are in
// events/minute; durations are in minutes, consistently throughout.
type Config struct {
	// Arrival and service rates.
	ArrivalRate    float64 `yaml:"arrival_rate"`
	AppServiceRate float64 `yaml:"app_service_rate"`
	DBServiceRate  float64 `yaml:"db_service_rate"`

	// CacheServiceRate > 0 inserts a cache-tier station that processes
	// hits before completion. 0 (default) completes hits instantly.
	CacheServiceRate float64 `yaml:"cache_service_rate,omitempty"`

	NumAppServers int    `yaml:"num_app_servers"`
	Strategy      string `yaml:"load_balancing_strategy"`

	CacheEnabled bool    `yaml:"cache_enabled"`
	CacheHitRate float64 `yaml:"cache_hit_rate"`

	// SimulationTime is the horizon in minutes. DrainAtHorizon selects
	// what happens to requests still in queue or in service at the
	// horizon: true lets them drain ("time to empty"); false abandons
	// them and excludes them from completed statistics.
	SimulationTime  float64 `yaml:"simulation_time"`
	DrainAtHorizon  bool    `yaml:"drain_at_horizon,omitempty"`
	NumReplications int     `yaml:"num_replications"`
	Seed            int64   `yaml:"random_seed"`

	// Optional coefficients of variation selecting the distribution per
	// stream: nil or 1 → exponential, 0 → deterministic, else gamma.
	ArrivalCV      *float64 `yaml:"arrival_cv,omitempty"`
	AppServiceCV   *float64 `yaml:"app_service_cv,omitempty"`
	DBServiceCV    *float64 `yaml:"db_service_cv,omitempty"`
	CacheServiceCV *float64 `yaml:"cache_service_cv,omitempty"`

	// MaxEvents aborts a replication once that many events have been
	// processed (0 = unlimited). An aborted replication's partial
	// statistics are discarded.
	MaxEvents int64 `yaml:"max_events,omitempty"`
}

// Validate checks every parameter and returns a ConfigurationError for
// the first violation. It must pass before any event is scheduled.
func (c *Config) Validate() error {
	if c.ArrivalRate <= 0 {
		return &ConfigurationError{Field: "arrival_rate", Reason: fmt.Sprintf("must be > 0, got %v", c.ArrivalRate)}
	}
	if c.AppServiceRate <= 0 {
		return &ConfigurationError{Field: "app_service_rate", Reason: fmt.Sprintf("must be > 0, got %v", c.AppServiceRate)}
	}
	if c.DBServiceRate <= 0 {
		return &ConfigurationError{Field: "db_service_rate", Reason: fmt.Sprintf("must be > 0, got %v", c.DBServiceRate)}
	}
	if c.CacheServiceRate < 0 {
		return &ConfigurationError{Field: "cache_service_rate", Reason: fmt.Sprintf("must be >= 0, got %v", c.CacheServiceRate)}
	}
	if c.NumAppServers < 1 {
		return &ConfigurationError{Field: "num_app_servers", Reason: fmt.Sprintf("must be >= 1, got %d", c.NumAppServers)}
	}
	valid := false
	for _, s := range AvailableStrategies() {
		if c.Strategy == s {
			valid = true
			break
		}
	}
	if !valid {
		return &ConfigurationError{Field: "load_balancing_strategy", Reason: fmt.Sprintf("unknown strategy %q", c.Strategy)}
	}
	if c.CacheEnabled && (c.CacheHitRate < 0 || c.CacheHitRate > 1) {
		return &ConfigurationError{Field: "cache_hit_rate", Reason: fmt.Sprintf("must be in [0, 1], got %v", c.CacheHitRate)}
	}
	if c.SimulationTime <= 0 {
		return &ConfigurationError{Field: "simulation_time", Reason: fmt.Sprintf("must be > 0, got %v", c.SimulationTime)}
	}
	if c.NumReplications < 1 {
		return &ConfigurationError{Field: "num_replications", Reason: fmt.Sprintf("must be >= 1, got %d", c.NumReplications)}
	}
	for name, cv := range map[string]*float64{
		"arrival_cv":       c.ArrivalCV,
		"app_service_cv":   c.AppServiceCV,
		"db_service_cv":    c.DBServiceCV,
		"cache_service_cv": c.CacheServiceCV,
	} {
		if cv != nil && *cv < 0 {
			return &ConfigurationError{Field: name, Reason: fmt.Sprintf("must be >= 0, got %v", *cv)}
		}
	}
	if c.MaxEvents < 0 {
		return &ConfigurationError{Field: "max_events", Reason: fmt.Sprintf("must be >= 0, got %d", c.MaxEvents)}
	}
	return nil
}

// Offered loads (ρ) per station, assuming the balancer spreads arrivals
// evenly across the app fleet.

func (c *Config) appOfferedLoad() float64 {
	return c.ArrivalRate / float64(c.NumAppServers) / c.AppServiceRate
}

func (c *Config) dbOfferedLoad() float64 {
	miss := 1.0
	if c.CacheEnabled {
		miss = 1.0 - c.CacheHitRate
	}
	return c.ArrivalRate * miss / c.DBServiceRate
}

func (c *Config) cacheOfferedLoad() float64 {
	if !c.CacheEnabled || c.CacheServiceRate <= 0 {
		return 0
	}
	return c.ArrivalRate * c.CacheHitRate / c.CacheServiceRate
}

// InstabilityWarnings reports every station whose long-run offered load
// meets or exceeds capacity (ρ >= 1). These are warnings, not errors:
// finite-horizon statistics are still computed, but steady-state formulas
// do not apply to flagged stations.
func (c *Config) InstabilityWarnings() []string {
	var warnings []string
	if rho := c.appOfferedLoad(); rho >= 1 {
		warnings = append(warnings, fmt.Sprintf("app tier unstable: offered load %.3f >= 1", rho))
	}
	if rho := c.dbOfferedLoad(); rho >= 1 {
		warnings = append(warnings, fmt.Sprintf("db tier unstable: offered load %.3f >= 1", rho))
	}
	if rho := c.cacheOfferedLoad(); rho >= 1 {
		warnings = append(warnings, fmt.Sprintf("cache tier unstable: offered load %.3f >= 1", rho))
	}
	return warnings
}
