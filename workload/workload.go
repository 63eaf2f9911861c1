// Package workload generates the synthetic access traces used to compare
// replacement policies. Every access carries a program counter, a sharer
// count, and a MESI state, standing in for the directory annotations a full
// system would provide.
package workload

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// Synthetic program counters. Each scenario uses a distinct PC per role so
// PC-indexed predictors can tell the roles apart.
const (
	scannerPC    = 0xBAD
	workingSetPC = 0xF00D
	hubPC        = 0x50B
	noisePC      = 0xD0015E
)

// A Scenario is one named workload that can drive a simulator.
type Scenario struct {
	// Name is the short identifier used on the command line and in
	// reports.
	Name string
	// Description summarizes what the workload stresses.
	Description string
	// DefaultIterations is the iteration count used when the caller does
	// not override it.
	DefaultIterations int
	// Run feeds the workload into the simulator.
	Run func(s *sim.Simulator, iterations int)
}

// Scenarios returns all benchmark scenarios.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:              "pollution",
			Description:       "database scan streaming past a hot working set",
			DefaultIterations: 1000000,
			Run:               PollutionScan,
		},
		{
			Name:              "graphhub",
			Description:       "streaming noise competing with a modified multi-sharer hub",
			DefaultIterations: 2000,
			Run:               GraphHub,
		},
		{
			Name:              "phasechange",
			Description:       "hot shared data turning into a dead stream",
			DefaultIterations: 1000000,
			Run:               PhaseChange,
		},
	}
}

// PollutionScan interleaves a never-repeating scanner stream with a 64-line
// working set that comes back every 64 accesses. The scanner runs Exclusive
// with no sharers; the working set is Shared with two sharers, so a
// cost-aware policy has both reuse history and coherence cost on its side.
// Recency-based policies let the scanner flush the working set.
func PollutionScan(s *sim.Simulator, iterations int) {
	for i := 0; i < iterations; i++ {
		s.Access(uint64(100000+i), scannerPC, 0, coherence.Exclusive)
		s.Access(uint64(i%64), workingSetPC, 2, coherence.Shared)
	}
}

// GraphHub alternates epochs of 800 streaming noise lines with 400 accesses
// to a 50-line Modified, 4-sharer hub. Evicting the hub is expensive; the
// noise is free to evict. iterations is the epoch count.
func GraphHub(s *sim.Simulator, iterations int) {
	for epoch := 0; epoch < iterations; epoch++ {
		for i := 0; i < 800; i++ {
			s.Access(uint64(10000+i+epoch*100), noisePC, 0, coherence.Exclusive)
		}
		for k := 0; k < 400; k++ {
			s.Access(uint64(k%50), hubPC, 4, coherence.Modified)
		}
	}
}

// PhaseChange runs two phases of the same program counter. In the first it
// is a hit-heavy Modified, 4-sharer working set; in the second the same PC
// turns into a never-repeating Exclusive stream. A learned policy must
// unlearn the protection it built up in phase one.
func PhaseChange(s *sim.Simulator, iterations int) {
	for i := 0; i < iterations; i++ {
		s.Access(uint64(i%100), hubPC, 4, coherence.Modified)
		s.Access(uint64(10000+i), noisePC, 0, coherence.Exclusive)
	}

	for i := 0; i < iterations; i++ {
		s.Access(uint64(20000+i), hubPC, 0, coherence.Exclusive)
	}
}
