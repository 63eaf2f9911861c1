package sim

import (
	"fmt"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
)

// Statistics holds the outcome counters for one simulation run. All fields
// are non-decreasing for the lifetime of a Simulator; a fresh run needs a
// fresh Simulator.
type Statistics struct {
	// Hits is the number of accesses that found their block resident.
	Hits uint64
	// Misses is the number of accesses that did not.
	Misses uint64
	// Evictions is the number of valid lines overwritten by installs.
	Evictions uint64
	// CoherenceEvictions is the number of evictions that paid the
	// coherence penalty (Modified or multi-sharer victims).
	CoherenceEvictions uint64
	// TotalLatency is the accumulated access cost in abstract cycles.
	TotalLatency uint64
}

// HitRate returns the hit rate as a percentage.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// AMAT returns the average memory access time in cycles.
func (s Statistics) AMAT() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.TotalLatency) / float64(total)
}

// Simulator owns the set/way array and executes accesses against one
// replacement policy. It is single-threaded: each Access fully resolves one
// request, including policy training and victim selection, before returning.
type Simulator struct {
	config Config
	policy Policy
	sets   [][]CacheLine
	stats  Statistics
}

// New creates a simulator with all lines invalid.
func New(config *Config, policy Policy) *Simulator {
	if config == nil {
		config = DefaultConfig()
	}

	sets := make([][]CacheLine, config.NumSets)
	for i := range sets {
		sets[i] = make([]CacheLine, config.Ways)
	}

	return &Simulator{
		config: *config,
		policy: policy,
		sets:   sets,
	}
}

// Config returns the simulator configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Policy returns the active replacement policy.
func (s *Simulator) Policy() Policy {
	return s.policy
}

// Stats returns a snapshot of the run statistics.
func (s *Simulator) Stats() Statistics {
	return s.stats
}

// Lines returns a copy of one set's lines, for inspection.
func (s *Simulator) Lines(setID int) []CacheLine {
	lines := make([]CacheLine, len(s.sets[setID]))
	copy(lines, s.sets[setID])
	return lines
}

// setIndex maps an address to its set.
func (s *Simulator) setIndex(addr uint64) int {
	return int(addr / uint64(s.config.BlockSize) % uint64(s.config.NumSets))
}

// Access resolves one request. The sharer count and coherence state arrive
// precomputed from the external directory model; on a hit they refresh the
// resident line's metadata. On a miss the policy selects a victim, eviction
// cost is accounted, the new block is installed, and only then does the
// policy see the miss, so ghost-buffer bookkeeping runs against the final
// cache state.
func (s *Simulator) Access(
	addr, pc uint64,
	sharers int,
	state coherence.State,
) {
	setID := s.setIndex(addr)
	tag := addr
	set := s.sets[setID]

	for w := range set {
		if set[w].Valid && set[w].Tag == tag {
			s.stats.Hits++
			s.stats.TotalLatency += s.config.HitLatency

			set[w].PC = pc
			set[w].Sharers = sharers
			set[w].State = state

			s.policy.UpdateOnHit(setID, w, set[w])
			return
		}
	}

	s.stats.Misses++
	victim := s.policy.FindVictim(setID, set, pc, sharers, state)
	if victim < 0 || victim >= s.config.Ways {
		panic(fmt.Sprintf(
			"policy %s returned way %d for a %d-way set",
			s.policy.Name(), victim, s.config.Ways,
		))
	}

	s.stats.TotalLatency += s.config.MissLatency
	if evicted := set[victim]; evicted.Valid {
		s.stats.Evictions++
		if evicted.State == coherence.Modified || evicted.Sharers > 1 {
			s.stats.CoherenceEvictions++
			s.stats.TotalLatency += s.config.CoherencePenalty
		}
		s.policy.OnEvict(evicted)
	}

	set[victim] = CacheLine{
		Valid:   true,
		Tag:     tag,
		PC:      pc,
		Sharers: sharers,
		State:   state,
	}

	s.policy.UpdateOnMiss(setID, victim, pc, tag)
}
