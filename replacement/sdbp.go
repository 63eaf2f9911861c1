package replacement

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// SDBP is the sampling dead block prediction baseline. It extends LRU with
// a shared dead-block counter table indexed by program counter. The
// simulator reports every eviction through OnEvict; a program counter whose
// lines keep getting evicted without intervening hits accumulates evidence
// of producing dead blocks, and its resident lines become preferred victims.
type SDBP struct {
	LRU

	deadTable []uint8
}

// NewSDBP creates an SDBP policy for a cache of the given geometry. A zero
// tableSize selects DefaultSignatureTableSize.
func NewSDBP(numSets, ways, tableSize int) *SDBP {
	if tableSize == 0 {
		tableSize = DefaultSignatureTableSize
	}

	return &SDBP{
		LRU:       *NewLRU(numSets, ways),
		deadTable: make([]uint8, tableSize),
	}
}

func (s *SDBP) deadIndex(pc uint64) int {
	return int(pc % uint64(len(s.deadTable)))
}

// UpdateOnHit promotes the way and counts the hit as liveness evidence for
// the line's owning program counter.
func (s *SDBP) UpdateOnHit(setID, way int, line sim.CacheLine) {
	s.promote(setID, way)

	h := s.deadIndex(line.PC)
	if s.deadTable[h] > 0 {
		s.deadTable[h]--
	}
}

// FindVictim returns the first invalid way, else the first way whose owning
// program counter is predicted dead, else falls back to the LRU victim.
func (s *SDBP) FindVictim(
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
		if s.deadTable[s.deadIndex(line.PC)] >= 2 {
			return w
		}
	}

	return s.LRU.FindVictim(setID, set, pc, sharers, state)
}

// OnEvict counts the eviction against the victim's owning program counter.
func (s *SDBP) OnEvict(line sim.CacheLine) {
	h := s.deadIndex(line.PC)
	if s.deadTable[h] < 3 {
		s.deadTable[h]++
	}
}

// Name identifies the policy.
func (s *SDBP) Name() string {
	return "SDBP"
}
