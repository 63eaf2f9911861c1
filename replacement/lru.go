// Package replacement provides the replacement policies the simulator can
// drive: the LRU, SRRIP, SHiP, and SDBP baselines, and the learned,
// coherence-aware Coalesce policy.
package replacement

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// LRU is the least-recently-used baseline. Each set keeps a recency stack;
// rank 0 is the most recently used way.
type LRU struct {
	sim.NoEvictTracking

	ways   int
	stacks [][]int
}

// NewLRU creates an LRU policy for a cache of the given geometry.
func NewLRU(numSets, ways int) *LRU {
	stacks := make([][]int, numSets)
	for i := range stacks {
		stacks[i] = make([]int, ways)
		for w := range stacks[i] {
			stacks[i][w] = w
		}
	}

	return &LRU{
		ways:   ways,
		stacks: stacks,
	}
}

// promote moves a way to rank 0 and shifts the intervening ranks up by one.
func (l *LRU) promote(setID, way int) {
	old := l.stacks[setID][way]
	for w := range l.stacks[setID] {
		if l.stacks[setID][w] < old {
			l.stacks[setID][w]++
		}
	}
	l.stacks[setID][way] = 0
}

// UpdateOnHit promotes the hit way to most recently used.
func (l *LRU) UpdateOnHit(setID, way int, line sim.CacheLine) {
	l.promote(setID, way)
}

// UpdateOnMiss promotes the freshly installed way to most recently used.
func (l *LRU) UpdateOnMiss(setID, way int, pc, tag uint64) {
	l.promote(setID, way)
}

// FindVictim returns the first invalid way, else the way at maximum rank.
func (l *LRU) FindVictim(
	setID int,
	set []sim.CacheLine,
	pc uint64,
	sharers int,
	state coherence.State,
) int {
	for w, line := range set {
		if !line.Valid {
			return w
		}
		if l.stacks[setID][w] == l.ways-1 {
			return w
		}
	}
	return 0
}

// Name identifies the policy.
func (l *LRU) Name() string {
	return "LRU"
}
