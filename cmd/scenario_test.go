package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiersim/tiersim/sim"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_OK(t *testing.T) {
	path := writeScenario(t, `
arrival_rate: 12
app_service_rate: 60
db_service_rate: 30
num_app_servers: 3
load_balancing_strategy: least_connections
cache_enabled: true
cache_hit_rate: 0.4
simulation_time: 120
drain_at_horizon: true
num_replications: 5
random_seed: 7
app_service_cv: 0.5
`)

	cfg, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.ArrivalRate)
	assert.Equal(t, 3, cfg.NumAppServers)
	assert.Equal(t, sim.StrategyLeastConnections, cfg.Strategy)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 0.4, cfg.CacheHitRate)
	assert.True(t, cfg.DrainAtHorizon)
	assert.Equal(t, 5, cfg.NumReplications)
	assert.Equal(t, int64(7), cfg.Seed)
	require.NotNil(t, cfg.AppServiceCV)
	assert.Equal(t, 0.5, *cfg.AppServiceCV)
	assert.Nil(t, cfg.DBServiceCV)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, "arrival_rate: [not a number")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadScenario_InvalidConfig(t *testing.T) {
	path := writeScenario(t, `
arrival_rate: 10
app_service_rate: 60
db_service_rate: 30
num_app_servers: 0
load_balancing_strategy: round_robin
simulation_time: 60
num_replications: 1
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	var cfgErr *sim.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "num_app_servers", cfgErr.Field)
}
