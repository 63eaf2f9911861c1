package replacement

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// Re-reference prediction values for the 2-bit SRRIP counters.
const (
	rrpvImmediate = 0
	rrpvLong      = 2
	rrpvDistant   = 3
)

// SRRIP is the static re-reference interval prediction baseline. Each way
// carries a 2-bit re-reference value: 0 means near-immediate reuse, 3 means
// distant.
type SRRIP struct {
	sim.NoEvictTracking

	rrpv [][]uint8
}

// NewSRRIP creates an SRRIP policy for a cache of the given geometry.
func NewSRRIP(numSets, ways int) *SRRIP {
	rrpv := make([][]uint8, numSets)
	for i := range rrpv {
		rrpv[i] = make([]uint8, ways)
		for w := range rrpv[i] {
			rrpv[i][w] = rrpvDistant
		}
	}

	return &SRRIP{rrpv: rrpv}
}

// UpdateOnHit promotes the hit way to immediate re-reference.
func (s *SRRIP) UpdateOnHit(setID, way int, line sim.CacheLine) {
	s.rrpv[setID][way] = rrpvImmediate
}

// UpdateOnMiss inserts the new line at long, not distant, giving it one
// aging round to prove reuse.
func (s *SRRIP) UpdateOnMiss(setID, way int, pc, tag uint64) {
	s.rrpv[setID][way] = rrpvLong
}

// FindVictim returns the first invalid way, else the first way at distant
// re-reference. If none is distant, every below-maximum way is aged and the
// scan retries; each pass strictly raises the maximum value, so a distant
// way is always reached.
func (s *SRRIP) FindVictim(
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
	}

	for {
		for w := range set {
			if s.rrpv[setID][w] == rrpvDistant {
				return w
			}
		}

		for w := range set {
			if s.rrpv[setID][w] < rrpvDistant {
				s.rrpv[setID][w]++
			}
		}
	}
}

// Name identifies the policy.
func (s *SRRIP) Name() string {
	return "SRRIP"
}
