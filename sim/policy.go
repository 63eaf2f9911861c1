// Package sim provides the set-associative cache simulation harness that
// drives a replacement policy against an access stream and accounts latency.
package sim

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
)

// A CacheLine holds one way's resident block and its coherence metadata.
// The coherence fields refresh on every hit even though occupancy does not
// change; this models the external directory updating metadata for an
// already-cached line.
type CacheLine struct {
	// Valid reports whether the way holds a block.
	Valid bool
	// Tag identifies the resident block. The simulator uses the full
	// request address as the tag, so no two valid lines in a set ever
	// share one.
	Tag uint64
	// PC is the program counter of the most recent accessing instruction.
	PC uint64
	// Sharers is the number of private caches currently holding a copy.
	Sharers int
	// State is the line's MESI coherence state.
	State coherence.State
}

// A Policy decides which line to evict and learns from access outcomes. The
// policy set is fixed; every implementation provides all five operations.
type Policy interface {
	// UpdateOnHit is called after a hit, with the line's refreshed
	// metadata.
	UpdateOnHit(setID, way int, line CacheLine)

	// UpdateOnMiss is called after the missing block has been installed
	// in the given way.
	UpdateOnMiss(setID, way int, pc, tag uint64)

	// FindVictim returns the way to install the missing block into. It
	// must return a way holding an invalid line if the set has one, and
	// must always return a valid way index.
	FindVictim(
		setID int,
		set []CacheLine,
		pc uint64,
		sharers int,
		state coherence.State,
	) int

	// OnEvict is called for every valid line the simulator evicts,
	// regardless of policy. Policies without eviction bookkeeping embed
	// NoEvictTracking.
	OnEvict(line CacheLine)

	// Name identifies the policy in reports.
	Name() string
}

// NoEvictTracking provides a no-op OnEvict for policies that do not track
// evictions.
type NoEvictTracking struct{}

// OnEvict does nothing.
func (NoEvictTracking) OnEvict(CacheLine) {}
