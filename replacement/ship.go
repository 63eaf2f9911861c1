package replacement

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// DefaultSignatureTableSize is the default number of entries in the SHiP
// signature table and the SDBP dead-block table.
const DefaultSignatureTableSize = 1024

// SHiP is the signature-based hit prediction baseline. It extends SRRIP
// with a shared counter table indexed by program counter: a counter at 2 or
// above marks the signature as historically dead, and its misses insert at
// distant re-reference instead of long.
type SHiP struct {
	SRRIP

	shct []uint8
}

// NewSHiP creates a SHiP policy for a cache of the given geometry. A zero
// tableSize selects DefaultSignatureTableSize.
func NewSHiP(numSets, ways, tableSize int) *SHiP {
	if tableSize == 0 {
		tableSize = DefaultSignatureTableSize
	}

	return &SHiP{
		SRRIP: *NewSRRIP(numSets, ways),
		shct:  make([]uint8, tableSize),
	}
}

func (s *SHiP) signature(pc uint64) int {
	return int(pc % uint64(len(s.shct)))
}

// UpdateOnHit promotes the way to immediate re-reference and counts the hit
// as reuse evidence for the line's owning program counter.
func (s *SHiP) UpdateOnHit(setID, way int, line sim.CacheLine) {
	s.rrpv[setID][way] = rrpvImmediate

	sig := s.signature(line.PC)
	if s.shct[sig] > 0 {
		s.shct[sig]--
	}
}

// UpdateOnMiss inserts at distant re-reference for historically dead
// signatures, else at long.
func (s *SHiP) UpdateOnMiss(setID, way int, pc, tag uint64) {
	if s.shct[s.signature(pc)] >= 2 {
		s.rrpv[setID][way] = rrpvDistant
	} else {
		s.rrpv[setID][way] = rrpvLong
	}
}

// Name identifies the policy.
func (s *SHiP) Name() string {
	return "SHiP"
}
