// Per-replication output: station statistics, cache counters, balancer
// assignment counts, and the end-to-end latency summary. Aggregation
// across replications (confidence intervals) is a downstream concern.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StationStats holds one station's finalized statistics over the elapsed
// simulation time.
type StationStats struct {
	Name            string
	Utilization     float64 // busy time / elapsed time, in [0, 1]
	AvgQueueLength  float64 // time-integral of queue length / elapsed time
	AvgWaitTime     float64 // mean time from queue entry to service start
	AvgResponseTime float64 // mean time from queue entry to departure
	Throughput      float64 // departures / elapsed time
	Arrivals        int64
	Departures      int64
	OfferedLoad     float64 // configured ρ for this station
	Unstable        bool    // ρ >= 1
}

// CacheStats holds the cache counters for one replication.
type CacheStats struct {
	Hits            uint64
	Misses          uint64
	ObservedHitRate float64
}

// BalancerStats holds the load balancer's assignment counts.
type BalancerStats struct {
	Strategy          string
	PerServerRequests []int64
}

// LatencySummary describes the end-to-end latency distribution of the
// completed requests in one replication.
type LatencySummary struct {
	Count  int
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
	P99    float64
	Max    float64
}

// summarizeLatencies computes the latency summary. lat is not modified.
func summarizeLatencies(lat []float64) LatencySummary {
	if len(lat) == 0 {
		return LatencySummary{}
	}
	sorted := make([]float64, len(lat))
	copy(sorted, lat)
	sort.Float64s(sorted)

	s := LatencySummary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:   sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// Result is the raw output of one replication.
type Result struct {
	Seed        int64
	Replication int

	// Elapsed is the simulation time statistics are normalized over: the
	// horizon in abandon mode, the time to empty in drain mode.
	Elapsed float64

	TotalArrivals  int64
	CompletedCount int64
	AbandonedCount int64 // in flight at the horizon, abandon mode only
	InSystemCount  int64 // in flight at end of run, drain mode only

	// Completed holds the completed requests in completion order; their
	// end-to-end latencies, in the same order, are in Latencies.
	Completed []*Request
	Latencies []float64

	AppServers  []StationStats
	DB          StationStats
	CacheServer *StationStats // nil unless a cache-tier station is configured
	Cache       *CacheStats   // nil when the cache is disabled
	Balancer    BalancerStats

	AvgEndToEnd      float64
	SystemThroughput float64
	Latency          LatencySummary

	Warnings []string
}

// Print displays the replication's statistics on stdout.
func (r *Result) Print() {
	fmt.Printf("=== Replication %d (seed %d) ===\n", r.Replication, r.Seed)
	fmt.Printf("Elapsed              : %.2f min\n", r.Elapsed)
	fmt.Printf("Total Arrivals       : %d\n", r.TotalArrivals)
	fmt.Printf("Completed Requests   : %d\n", r.CompletedCount)
	if r.AbandonedCount > 0 {
		fmt.Printf("Abandoned at Horizon : %d\n", r.AbandonedCount)
	}
	fmt.Printf("System Throughput    : %.4f req/min\n", r.SystemThroughput)
	fmt.Printf("Avg End-to-End Time  : %.4f min (p95 %.4f, p99 %.4f)\n",
		r.AvgEndToEnd, r.Latency.P95, r.Latency.P99)

	printStation := func(st StationStats) {
		flag := ""
		if st.Unstable {
			flag = "  [UNSTABLE]"
		}
		fmt.Printf("%-10s util=%.4f Lq=%.4f wait=%.4f resp=%.4f thru=%.4f%s\n",
			st.Name, st.Utilization, st.AvgQueueLength, st.AvgWaitTime, st.AvgResponseTime, st.Throughput, flag)
	}
	for _, st := range r.AppServers {
		printStation(st)
	}
	if r.CacheServer != nil {
		printStation(*r.CacheServer)
	}
	printStation(r.DB)

	if r.Cache != nil {
		fmt.Printf("Cache: hits=%d misses=%d observed_hit_rate=%.4f\n",
			r.Cache.Hits, r.Cache.Misses, r.Cache.ObservedHitRate)
	}
	fmt.Printf("Balancer (%s): %v\n", r.Balancer.Strategy, r.Balancer.PerServerRequests)
	for _, w := range r.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
