// Package main provides the benchmark CLI for the Coalesce replacement
// engine. It runs synthetic workload scenarios against all five replacement
// policies and reports hit rate, average memory access time, and total
// latency, optionally recording the results into a SQLite database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/datarecording"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/replacement"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/workload"
)

var (
	scenarioName = flag.String("scenario", "all",
		"Scenario to run (pollution, graphhub, phasechange, all)")
	iterations = flag.Int("iterations", 0,
		"Iteration count override (0 uses each scenario's default)")
	configPath = flag.String("config", "",
		"Path to cache configuration JSON file")
	record = flag.Bool("record", false,
		"Record results into a SQLite database")
	dbPath = flag.String("db", "",
		"Database path prefix for -record (default coalsim_<runid>)")
	verbose = flag.Bool("v", false, "Verbose output")
)

// resultEntry is one recorded policy/scenario outcome.
type resultEntry struct {
	Run          string  `json:"run"`
	Scenario     string  `json:"scenario"`
	Policy       string  `json:"policy"`
	Hits         uint64  `json:"hits"`
	Misses       uint64  `json:"misses"`
	Evictions    uint64  `json:"evictions"`
	TotalLatency uint64  `json:"total_latency"`
	HitRate      float64 `json:"hit_rate"`
	AMAT         float64 `json:"amat"`
}

func main() {
	flag.Parse()

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scenarios, err := selectScenarios(*scenarioName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runID := xid.New().String()

	var recorder datarecording.DataRecorder
	if *record {
		path := *dbPath
		if path == "" {
			path = "coalsim_" + runID
		}
		recorder = datarecording.NewDataRecorder(path)
		recorder.CreateTable("results", resultEntry{})
	}

	for _, scenario := range scenarios {
		runScenario(scenario, config, runID, recorder)
	}

	if recorder != nil {
		recorder.Flush()
	}
}

// loadConfig returns the cache configuration, from file if requested.
func loadConfig() (*sim.Config, error) {
	if *configPath == "" {
		return sim.DefaultConfig(), nil
	}

	config, err := sim.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	return config, nil
}

// selectScenarios resolves the -scenario flag.
func selectScenarios(name string) ([]workload.Scenario, error) {
	all := workload.Scenarios()
	if name == "all" {
		return all, nil
	}

	for _, s := range all {
		if s.Name == name {
			return []workload.Scenario{s}, nil
		}
	}

	return nil, fmt.Errorf("unknown scenario %q", name)
}

// policies builds fresh policy instances for one scenario run. Each run gets
// its own learned state.
func policies(config *sim.Config) []sim.Policy {
	return []sim.Policy{
		replacement.NewLRU(config.NumSets, config.Ways),
		replacement.NewSRRIP(config.NumSets, config.Ways),
		replacement.NewSHiP(config.NumSets, config.Ways, 0),
		replacement.NewSDBP(config.NumSets, config.Ways, 0),
		replacement.NewCoalesce(
			config.NumSets, nil, replacement.DefaultCoalesceConfig()),
	}
}

// runScenario runs one workload against every policy and prints a results
// table.
func runScenario(
	scenario workload.Scenario,
	config *sim.Config,
	runID string,
	recorder datarecording.DataRecorder,
) {
	iters := scenario.DefaultIterations
	if *iterations > 0 {
		iters = *iterations
	}

	fmt.Printf(">>> SCENARIO: %s (%s, %d iterations)\n",
		scenario.Name, scenario.Description, iters)

	for _, policy := range policies(config) {
		simulator := sim.New(config, policy)
		scenario.Run(simulator, iters)
		stats := simulator.Stats()

		fmt.Printf("%-20s | Hit Rate: %6.2f%% | AMAT: %6.1f cyc | Total Latency: %d\n",
			policy.Name(), stats.HitRate(), stats.AMAT(), stats.TotalLatency)

		if *verbose {
			fmt.Printf("%-20s | Hits: %d | Misses: %d | Evictions: %d (%d coherence)\n",
				"", stats.Hits, stats.Misses,
				stats.Evictions, stats.CoherenceEvictions)
		}

		if recorder != nil {
			recorder.InsertData("results", resultEntry{
				Run:          runID,
				Scenario:     scenario.Name,
				Policy:       policy.Name(),
				Hits:         stats.Hits,
				Misses:       stats.Misses,
				Evictions:    stats.Evictions,
				TotalLatency: stats.TotalLatency,
				HitRate:      stats.HitRate(),
				AMAT:         stats.AMAT(),
			})
		}
	}

	fmt.Println("--------------------------------------------------------")
}
