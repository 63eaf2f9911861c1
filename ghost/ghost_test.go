package ghost_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/ghost"
)

func TestGhost(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ghost Suite")
}

var _ = Describe("Record", func() {
	It("should round-trip features that fit the field widths", func() {
		r := ghost.Pack(0x2ABC, 0x9F3, 5, coherence.Modified)

		Expect(r.IsValid()).To(BeTrue())
		Expect(r.PCSig()).To(Equal(uint32(0x9F3)))
		Expect(r.TagFrag()).To(Equal(uint32(0x2ABC)))
		Expect(r.Sharers()).To(Equal(5))
		Expect(r.State()).To(Equal(coherence.Modified))
	})

	It("should truncate the tag and PC to their fragments", func() {
		r := ghost.Pack(0xDEAD_2ABC, 0xBEEF_09F3, 1, coherence.Shared)

		Expect(r.TagFrag()).To(Equal(uint32(0x2ABC)))
		Expect(r.PCSig()).To(Equal(uint32(0x9F3)))
	})

	It("should truncate sharer counts above 7, not saturate them", func() {
		// 9 = 0b1001 keeps only its low 3 bits.
		r := ghost.Pack(1, 1, 9, coherence.Shared)
		Expect(r.Sharers()).To(Equal(1))
	})

	Describe("Matches", func() {
		It("should match the inserted identity", func() {
			r := ghost.Pack(0x2ABC, 0x9F3, 2, coherence.Shared)
			Expect(r.Matches(0x2ABC, 0x9F3)).To(BeTrue())
		})

		It("should match an aliasing identity", func() {
			// Addresses that agree on the truncated fragments are
			// indistinguishable; that is the accepted lossy design.
			r := ghost.Pack(0x2ABC, 0x9F3, 2, coherence.Shared)
			Expect(r.Matches(0x4_2ABC, 0x1_09F3)).To(BeTrue())
		})

		It("should reject a different tag fragment", func() {
			r := ghost.Pack(0x2ABC, 0x9F3, 2, coherence.Shared)
			Expect(r.Matches(0x2ABD, 0x9F3)).To(BeFalse())
		})

		It("should reject a different PC signature", func() {
			r := ghost.Pack(0x2ABC, 0x9F3, 2, coherence.Shared)
			Expect(r.Matches(0x2ABC, 0x9F4)).To(BeFalse())
		})

		It("should never match an empty record", func() {
			var r ghost.Record
			Expect(r.Matches(0, 0)).To(BeFalse())
		})
	})
})

var _ = Describe("Buffer", func() {
	var b *ghost.Buffer

	BeforeEach(func() {
		b = ghost.NewBuffer(ghost.DefaultBufferConfig())
	})

	It("should miss on an empty buffer", func() {
		_, _, ok := b.Lookup(0x40, 0xF00D)
		Expect(ok).To(BeFalse())
	})

	It("should recover the evicted line's features", func() {
		b.Insert(0x40, 0xF00D, 2, coherence.Shared)

		sharers, state, ok := b.Lookup(0x40, 0xF00D)
		Expect(ok).To(BeTrue())
		Expect(sharers).To(Equal(2))
		Expect(state).To(Equal(coherence.Shared))
	})

	It("should find every line of a recently inserted batch", func() {
		// No false negatives: the filter bits for a live insertion are
		// all set, and distinct small tags with one PC cannot collide
		// in the record table.
		for tag := uint64(0); tag < 16; tag++ {
			b.Insert(tag, 0x50B, 4, coherence.Modified)
		}

		for tag := uint64(0); tag < 16; tag++ {
			sharers, state, ok := b.Lookup(tag, 0x50B)
			Expect(ok).To(BeTrue(), "tag %d", tag)
			Expect(sharers).To(Equal(4))
			Expect(state).To(Equal(coherence.Modified))
		}
	})

	It("should overwrite a colliding record slot", func() {
		// Tags 0x10 and 0x110 with PC 0 differ by 0x100; with a
		// 256-slot table they map to the same record index, and the
		// later insertion wins. Their tag fragments differ, so the
		// earlier line no longer verifies.
		b.Insert(0x10, 0, 1, coherence.Exclusive)
		b.Insert(0x110, 0, 3, coherence.Modified)

		_, _, ok := b.Lookup(0x10, 0)
		Expect(ok).To(BeFalse())

		sharers, state, ok := b.Lookup(0x110, 0)
		Expect(ok).To(BeTrue())
		Expect(sharers).To(Equal(3))
		Expect(state).To(Equal(coherence.Modified))
	})

	It("should forget everything on Clear", func() {
		b.Insert(0x40, 0xF00D, 2, coherence.Shared)
		b.Clear()

		_, _, ok := b.Lookup(0x40, 0xF00D)
		Expect(ok).To(BeFalse())
	})
})
