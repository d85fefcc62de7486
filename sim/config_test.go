package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		ArrivalRate:     10,
		AppServiceRate:  60,
		DBServiceRate:   30,
		NumAppServers:   1,
		Strategy:        StrategyRoundRobin,
		CacheEnabled:    true,
		CacheHitRate:    0.3,
		SimulationTime:  60,
		NumReplications: 1,
		Seed:            42,
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	negCV := -0.5
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative arrival rate", func(c *Config) { c.ArrivalRate = -1 }, "arrival_rate"},
		{"zero app rate", func(c *Config) { c.AppServiceRate = 0 }, "app_service_rate"},
		{"zero db rate", func(c *Config) { c.DBServiceRate = 0 }, "db_service_rate"},
		{"negative cache rate", func(c *Config) { c.CacheServiceRate = -5 }, "cache_service_rate"},
		{"zero servers", func(c *Config) { c.NumAppServers = 0 }, "num_app_servers"},
		{"unknown strategy", func(c *Config) { c.Strategy = "sticky" }, "load_balancing_strategy"},
		{"hit rate above one", func(c *Config) { c.CacheHitRate = 1.5 }, "cache_hit_rate"},
		{"hit rate negative", func(c *Config) { c.CacheHitRate = -0.1 }, "cache_hit_rate"},
		{"non-positive horizon", func(c *Config) { c.SimulationTime = 0 }, "simulation_time"},
		{"zero replications", func(c *Config) { c.NumReplications = 0 }, "num_replications"},
		{"negative cv", func(c *Config) { c.AppServiceCV = &negCV }, "app_service_cv"},
		{"negative event budget", func(c *Config) { c.MaxEvents = -1 }, "max_events"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestConfig_HitRate_IgnoredWhenCacheDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.CacheEnabled = false
	cfg.CacheHitRate = 7.0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_InstabilityWarnings(t *testing.T) {
	// Stable everywhere: no warnings.
	cfg := validConfig()
	assert.Empty(t, cfg.InstabilityWarnings())

	// App tier overloaded: ρ = 100/60 per server.
	cfg = validConfig()
	cfg.ArrivalRate = 100
	warnings := cfg.InstabilityWarnings()
	require.Len(t, warnings, 2) // app and db both exceed capacity
	assert.Contains(t, warnings[0], "app tier unstable")

	// The cache shields the db tier: miss traffic 100*0.7 = 70 > 30 is
	// unstable, but with a 0.9 hit rate it drops to 10 < 30.
	cfg.CacheHitRate = 0.9
	warnings = cfg.InstabilityWarnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "app tier unstable")
}

func TestConfig_CacheOfferedLoad(t *testing.T) {
	cfg := validConfig()
	cfg.CacheServiceRate = 300
	cfg.ArrivalRate = 30
	cfg.CacheHitRate = 0.5
	assert.InDelta(t, 0.05, cfg.cacheOfferedLoad(), 1e-12)

	cfg.CacheEnabled = false
	assert.Equal(t, 0.0, cfg.cacheOfferedLoad())
}
