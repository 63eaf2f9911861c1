package perceptron_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/perceptron"
)

func TestPerceptron(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Perceptron Suite")
}

var _ = Describe("Predictor", func() {
	var p *perceptron.Predictor

	BeforeEach(func() {
		p = perceptron.New(perceptron.DefaultConfig())
	})

	Describe("Predict", func() {
		It("should be deterministic", func() {
			a := p.Predict(0xF00D, 2, coherence.Shared)
			b := p.Predict(0xF00D, 2, coherence.Shared)
			Expect(a).To(Equal(b))
		})

		It("should start cold within the init band", func() {
			// Both tables initialize in [-5, +5], so a cold vote is
			// within [-10, +10].
			for pc := uint64(0); pc < 256; pc++ {
				vote := p.Predict(pc, 0, coherence.Exclusive)
				Expect(vote).To(BeNumerically(">=", -10))
				Expect(vote).To(BeNumerically("<=", 10))
			}
		})

		It("should distinguish coherence contexts of one PC", func() {
			// Different states index different table-0 weights, so
			// training one context must not move the other.
			before := p.Predict(0x50B, 0, coherence.Exclusive)

			for i := 0; i < 50; i++ {
				vote := p.Predict(0x50B, 4, coherence.Modified)
				p.Train(0x50B, 4, coherence.Modified, true, vote)
			}

			Expect(p.Predict(0x50B, 4, coherence.Modified)).
				To(BeNumerically(">", 35))
			Expect(p.Predict(0x50B, 0, coherence.Exclusive)).
				To(Equal(before))
		})
	})

	Describe("Train", func() {
		It("should learn a kept line toward positive votes", func() {
			for i := 0; i < 100; i++ {
				vote := p.Predict(0xF00D, 2, coherence.Shared)
				p.Train(0xF00D, 2, coherence.Shared, true, vote)
			}
			Expect(p.Predict(0xF00D, 2, coherence.Shared)).
				To(BeNumerically(">", 0))
		})

		It("should stop once confident and correct", func() {
			// Positive training stalls once the vote clears the
			// confidence threshold: correct and confident means no
			// update.
			for i := 0; i < 1000; i++ {
				vote := p.Predict(0xF00D, 2, coherence.Shared)
				p.Train(0xF00D, 2, coherence.Shared, true, vote)
			}
			settled := p.Predict(0xF00D, 2, coherence.Shared)
			Expect(settled).To(BeNumerically(">", 35))

			p.Train(0xF00D, 2, coherence.Shared, true, settled)
			Expect(p.Predict(0xF00D, 2, coherence.Shared)).To(Equal(settled))
		})

		It("should still nudge weights at low confidence", func() {
			// A correct but barely-positive vote is within the
			// confidence band, so training fires anyway.
			vote := p.Predict(0xF00D, 2, coherence.Shared)
			p.Train(0xF00D, 2, coherence.Shared, true, 1)
			Expect(p.Predict(0xF00D, 2, coherence.Shared)).To(Equal(vote + 2))
		})

		It("should train on misprediction regardless of confidence", func() {
			before := p.Predict(0xBAD, 0, coherence.Exclusive)
			p.Train(0xBAD, 0, coherence.Exclusive, true, -90)
			Expect(p.Predict(0xBAD, 0, coherence.Exclusive)).
				To(Equal(before + 2))
		})
	})

	Describe("Saturation", func() {
		It("should keep every vote within the weight bounds", func() {
			// Passing a zero confidence vote forces every call to
			// fire, driving the weights to their bounds.
			for i := 0; i < 300; i++ {
				p.Train(0x1234, 3, coherence.Modified, false, 0)
			}
			vote := p.Predict(0x1234, 3, coherence.Modified)
			Expect(vote).To(BeNumerically(">=", -256))

			// Out-of-range updates are dropped, so further training
			// cannot move the weights.
			floor := vote
			for i := 0; i < 10; i++ {
				p.Train(0x1234, 3, coherence.Modified, false, 0)
			}
			Expect(p.Predict(0x1234, 3, coherence.Modified)).To(Equal(floor))

			stats := p.Stats()
			Expect(stats.SaturatedUpdates).To(BeNumerically(">", 0))
		})

		It("should default each bound independently", func() {
			// Configuring only one bound must not zero the other.
			capped := perceptron.New(perceptron.Config{MaxWeight: 20})
			for i := 0; i < 300; i++ {
				capped.Train(0x1234, 3, coherence.Modified, false, 0)
			}
			Expect(capped.Predict(0x1234, 3, coherence.Modified)).
				To(BeNumerically("<=", -200))

			floored := perceptron.New(perceptron.Config{MinWeight: -20})
			for i := 0; i < 300; i++ {
				floored.Train(0x1234, 3, coherence.Modified, true, 0)
			}
			Expect(floored.Predict(0x1234, 3, coherence.Modified)).
				To(BeNumerically(">=", 100))
		})

		It("should saturate upward as well", func() {
			for i := 0; i < 300; i++ {
				p.Train(0x1234, 3, coherence.Modified, true, 0)
			}
			ceiling := p.Predict(0x1234, 3, coherence.Modified)
			Expect(ceiling).To(BeNumerically("<=", 254))

			for i := 0; i < 10; i++ {
				p.Train(0x1234, 3, coherence.Modified, true, 0)
			}
			Expect(p.Predict(0x1234, 3, coherence.Modified)).To(Equal(ceiling))
		})
	})

	Describe("Stats", func() {
		It("should count predictions and trainings", func() {
			p.Predict(1, 0, coherence.Shared)
			p.Train(1, 0, coherence.Shared, true, 0)
			p.Train(1, 0, coherence.Shared, true, 100) // confident, correct: no-op

			stats := p.Stats()
			Expect(stats.Predictions).To(Equal(uint64(1)))
			Expect(stats.Trainings).To(Equal(uint64(1)))
		})
	})
})
