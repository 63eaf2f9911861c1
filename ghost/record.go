// Package ghost implements the per-set ghost eviction buffer: a bounded
// record of recently evicted lines used to detect that an eviction was a
// mistake when the same block comes back. Evicted-line features are stored
// bit-packed, matching the signature width a hardware implementation would
// piggyback on NoC flits.
package ghost

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
)

// Record field widths. The layout is, from the most significant bit down:
// [PCSig(12) | TagFrag(14) | Sharers(3) | State(2) | Valid(1)].
const (
	pcSigBits   = 12
	tagFragBits = 14
	sharerBits  = 3
	stateBits   = 2

	pcSigMask   = (1 << pcSigBits) - 1
	tagFragMask = (1 << tagFragBits) - 1
	sharerMask  = (1 << sharerBits) - 1
	stateMask   = (1 << stateBits) - 1

	pcSigShift   = 20
	tagFragShift = 6
	sharerShift  = 3
	stateShift   = 1
)

// A Record is an evicted line's identity compressed to 32 bits. Both the tag
// and the program counter are truncated, so two distinct blocks can produce
// the same record; callers must tolerate the resulting aliasing. Sharer
// counts above 7 lose their high bits (truncation, not saturation).
type Record uint32

// Pack builds a valid Record from a line's full feature vector.
func Pack(tag, pc uint64, sharers int, state coherence.State) Record {
	r := uint32(pc&pcSigMask) << pcSigShift
	r |= uint32(tag&tagFragMask) << tagFragShift
	r |= uint32(sharers&sharerMask) << sharerShift
	r |= uint32(state&stateMask) << stateShift
	r |= 1
	return Record(r)
}

// IsValid reports whether the record holds an entry.
func (r Record) IsValid() bool {
	return r&1 != 0
}

// PCSig returns the truncated program-counter signature.
func (r Record) PCSig() uint32 {
	return uint32(r>>pcSigShift) & pcSigMask
}

// TagFrag returns the truncated tag fragment.
func (r Record) TagFrag() uint32 {
	return uint32(r>>tagFragShift) & tagFragMask
}

// Sharers returns the stored sharer count (0-7).
func (r Record) Sharers() int {
	return int(r>>sharerShift) & sharerMask
}

// State returns the stored coherence state.
func (r Record) State() coherence.State {
	return coherence.State(r>>stateShift) & stateMask
}

// Matches reports whether the record plausibly describes the block identified
// by tag and pc. Only the truncated fragments are compared, so a match means
// "probably the same block", not a guarantee.
func (r Record) Matches(tag, pc uint64) bool {
	if !r.IsValid() {
		return false
	}
	return r.PCSig() == uint32(pc&pcSigMask) &&
		r.TagFrag() == uint32(tag&tagFragMask)
}
