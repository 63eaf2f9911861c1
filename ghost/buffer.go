package ghost

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
)

// hashMix is the odd constant mixed into every membership-filter hash.
const hashMix = 0x9e3779b9

// BufferConfig holds sizing parameters for one ghost buffer.
type BufferConfig struct {
	// FilterBits is the membership filter width in bits.
	// Default is 1024.
	FilterBits int
	// FilterHashes is the number of independent filter hash functions.
	// Default is 3.
	FilterHashes int
	// Capacity is the number of direct-mapped record slots. It is much
	// smaller than FilterBits; the filter only gates the exact check.
	// Default is 256.
	Capacity int
}

// DefaultBufferConfig returns the default ghost buffer sizing.
func DefaultBufferConfig() BufferConfig {
	return BufferConfig{
		FilterBits:   1024,
		FilterHashes: 3,
		Capacity:     256,
	}
}

// A Buffer remembers recently evicted lines for one cache set. Membership is
// tracked by a bit-vector filter with no false negatives for a live entry;
// a direct-mapped table of compact records recovers the evicted line's
// features when a lookup verifies. A colliding insertion silently overwrites
// the earlier record, which is an accepted lossy outcome.
type Buffer struct {
	bits    []bool
	records []Record

	filterHashes int
}

// NewBuffer creates an empty ghost buffer.
func NewBuffer(config BufferConfig) *Buffer {
	if config.FilterBits == 0 {
		config.FilterBits = 1024
	}
	if config.FilterHashes == 0 {
		config.FilterHashes = 3
	}
	if config.Capacity == 0 {
		config.Capacity = 256
	}

	return &Buffer{
		bits:         make([]bool, config.FilterBits),
		records:      make([]Record, config.Capacity),
		filterHashes: config.FilterHashes,
	}
}

func (b *Buffer) filterIndex(tag, pc uint64, i int) int {
	return int((tag ^ pc ^ uint64(i)*hashMix) % uint64(len(b.bits)))
}

func (b *Buffer) recordIndex(tag, pc uint64) int {
	return int((tag ^ pc) % uint64(len(b.records)))
}

// Insert records an evicted line's full feature vector.
func (b *Buffer) Insert(tag, pc uint64, sharers int, state coherence.State) {
	for i := 0; i < b.filterHashes; i++ {
		b.bits[b.filterIndex(tag, pc, i)] = true
	}
	b.records[b.recordIndex(tag, pc)] = Pack(tag, pc, sharers, state)
}

// Lookup reports whether the block was recently evicted from this set and,
// if so, returns the sharer count and coherence state it had at eviction
// time. A false return is either a genuine miss, a filter false positive
// that failed record verification, or a record overwritten since insertion.
func (b *Buffer) Lookup(tag, pc uint64) (sharers int, state coherence.State, ok bool) {
	for i := 0; i < b.filterHashes; i++ {
		if !b.bits[b.filterIndex(tag, pc, i)] {
			return 0, coherence.Invalid, false
		}
	}

	r := b.records[b.recordIndex(tag, pc)]
	if !r.Matches(tag, pc) {
		return 0, coherence.Invalid, false
	}

	return r.Sharers(), r.State(), true
}

// Clear resets the filter and all records. It is meant for the start of a
// fresh simulation run, never mid-run.
func (b *Buffer) Clear() {
	for i := range b.bits {
		b.bits[i] = false
	}
	for i := range b.records {
		b.records[i] = 0
	}
}
