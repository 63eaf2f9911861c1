package sim_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

var _ = Describe("Config", func() {
	Describe("Defaults", func() {
		It("should describe a 64-set 16-way cache", func() {
			config := sim.DefaultConfig()
			Expect(config.NumSets).To(Equal(64))
			Expect(config.Ways).To(Equal(16))
			Expect(config.BlockSize).To(Equal(64))
		})

		It("should have the default latency model", func() {
			config := sim.DefaultConfig()
			Expect(config.HitLatency).To(Equal(uint64(15)))
			Expect(config.MissLatency).To(Equal(uint64(200)))
			Expect(config.CoherencePenalty).To(Equal(uint64(100)))
		})

		It("should validate", func() {
			Expect(sim.DefaultConfig().Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		It("should reject a zero-set cache", func() {
			config := sim.DefaultConfig()
			config.NumSets = 0
			Expect(config.Validate()).NotTo(Succeed())
		})

		It("should reject zero associativity", func() {
			config := sim.DefaultConfig()
			config.Ways = 0
			Expect(config.Validate()).NotTo(Succeed())
		})

		It("should reject a zero miss latency", func() {
			config := sim.DefaultConfig()
			config.MissLatency = 0
			Expect(config.Validate()).NotTo(Succeed())
		})
	})

	Describe("Load and save", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "coalsim-config")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("should round-trip through JSON", func() {
			path := filepath.Join(dir, "cache.json")

			config := sim.DefaultConfig()
			config.NumSets = 128
			config.MissLatency = 300
			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := sim.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(config))
		})

		It("should keep defaults for fields missing from the file", func() {
			path := filepath.Join(dir, "partial.json")
			Expect(os.WriteFile(path,
				[]byte(`{"num_sets": 32}`), 0644)).To(Succeed())

			loaded, err := sim.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.NumSets).To(Equal(32))
			Expect(loaded.Ways).To(Equal(16))
			Expect(loaded.MissLatency).To(Equal(uint64(200)))
		})

		It("should fail on a missing file", func() {
			_, err := sim.LoadConfig(filepath.Join(dir, "nope.json"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should return an independent copy", func() {
			config := sim.DefaultConfig()
			clone := config.Clone()
			clone.NumSets = 1
			Expect(config.NumSets).To(Equal(64))
		})
	})
})
