package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tiersim/tiersim/sim"
)

var (
	// CLI flags mirroring the scenario configuration
	scenarioPath     string  // YAML scenario file (overrides individual flags)
	arrivalRate      float64 // Mean arrival rate (req/min)
	appServiceRate   float64 // App server service rate (req/min)
	dbServiceRate    float64 // Data-tier service rate (req/min)
	cacheServiceRate float64 // Cache-tier service rate (req/min, 0 = instant hits)
	numAppServers    int     // Number of application servers
	strategy         string  // Load-balancing strategy
	cacheEnabled     bool    // Whether the cache stage is active
	cacheHitRate     float64 // Cache hit probability in [0,1]
	simulationTime   float64 // Horizon in minutes
	drainAtHorizon   bool    // Drain in-flight work past the horizon
	numReplications  int     // Independent replications
	seed             int64   // Base random seed
	maxEvents        int64   // Per-replication event budget (0 = unlimited)
	workers          int     // Concurrent replications (0 = GOMAXPROCS)
	logLevel         string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tiersim",
	Short: "Discrete-event simulator for a multi-tier request pipeline",
}

// buildConfig assembles the scenario from the YAML file if given,
// otherwise from the individual flags.
func buildConfig() (sim.Config, error) {
	if scenarioPath != "" {
		return LoadScenario(scenarioPath)
	}
	return sim.Config{
		ArrivalRate:      arrivalRate,
		AppServiceRate:   appServiceRate,
		DBServiceRate:    dbServiceRate,
		CacheServiceRate: cacheServiceRate,
		NumAppServers:    numAppServers,
		Strategy:         strategy,
		CacheEnabled:     cacheEnabled,
		CacheHitRate:     cacheHitRate,
		SimulationTime:   simulationTime,
		DrainAtHorizon:   drainAtHorizon,
		NumReplications:  numReplications,
		Seed:             seed,
		MaxEvents:        maxEvents,
	}, nil
}

// runCmd executes the replications and prints per-replication statistics.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig()
		if err != nil {
			logrus.Fatalf("scenario: %v", err)
		}

		logrus.Infof("Starting %d replication(s): arrival=%.2f/min, app=%.2f/min x%d (%s), db=%.2f/min, horizon=%.1fmin",
			cfg.NumReplications, cfg.ArrivalRate, cfg.AppServiceRate, cfg.NumAppServers,
			cfg.Strategy, cfg.DBServiceRate, cfg.SimulationTime)

		start := time.Now()
		runner := sim.NewReplicationRunner(cfg, workers)
		results, err := runner.Run(context.Background())
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		for _, res := range results {
			res.Print()
		}
		logrus.Infof("Simulation complete in %v.", time.Since(start))
	},
}

// validateCmd checks a scenario file without running it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a YAML scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		if scenarioPath == "" {
			logrus.Fatal("validate requires --scenario")
		}
		if _, err := LoadScenario(scenarioPath); err != nil {
			logrus.Fatalf("scenario invalid: %v", err)
		}
		logrus.Infof("scenario %s is valid", scenarioPath)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides the flags below)")
		c.Flags().StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 10, "Mean arrival rate (req/min)")
	runCmd.Flags().Float64Var(&appServiceRate, "app-service-rate", 60, "App server service rate (req/min)")
	runCmd.Flags().Float64Var(&dbServiceRate, "db-service-rate", 30, "Data-tier service rate (req/min)")
	runCmd.Flags().Float64Var(&cacheServiceRate, "cache-service-rate", 0, "Cache-tier service rate (req/min, 0 = hits complete instantly)")
	runCmd.Flags().IntVar(&numAppServers, "num-app-servers", 1, "Number of application servers")
	runCmd.Flags().StringVar(&strategy, "lb", sim.StrategyRoundRobin, "Load-balancing strategy (round_robin, random, least_connections)")
	runCmd.Flags().BoolVar(&cacheEnabled, "cache", false, "Enable the cache stage")
	runCmd.Flags().Float64Var(&cacheHitRate, "cache-hit-rate", 0.3, "Cache hit probability in [0,1]")
	runCmd.Flags().Float64Var(&simulationTime, "horizon", 60, "Simulation horizon (minutes)")
	runCmd.Flags().BoolVar(&drainAtHorizon, "drain", false, "Drain in-flight requests past the horizon instead of abandoning them")
	runCmd.Flags().IntVar(&numReplications, "replications", 1, "Number of independent replications")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Base random seed")
	runCmd.Flags().Int64Var(&maxEvents, "max-events", 0, "Per-replication event budget (0 = unlimited)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent replications (0 = GOMAXPROCS)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
