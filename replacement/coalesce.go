package replacement

import (
	"math"

	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/ghost"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/perceptron"
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/sim"
)

// CoalesceConfig holds the tuning constants for the Coalesce policy.
type CoalesceConfig struct {
	// SampleStride selects every SampleStride-th set for training and
	// ghost bookkeeping. Default is 16 (6.25% of sets).
	SampleStride int
	// VetoOverride is the vote floor below which coherence protection is
	// skipped: a prediction this negative marks the line as definitely
	// dead. Default is -100.
	VetoOverride int
	// ModifiedProtection is added to the score of Modified lines, whose
	// eviction forces a write-back. Default is 150.
	ModifiedProtection int
	// SharerProtection is added to the score of lines with two or more
	// sharers, whose eviction triggers invalidation traffic. Default
	// is 75.
	SharerProtection int
	// GhostTrainingRounds is how many times a confirmed premature
	// eviction trains the predictor. Default is 5.
	GhostTrainingRounds int
	// Predictor configures the shared perceptron when NewCoalesce
	// constructs one itself.
	Predictor perceptron.Config
	// Ghost configures the per-set ghost buffers.
	Ghost ghost.BufferConfig
}

// DefaultCoalesceConfig returns the default Coalesce tuning.
func DefaultCoalesceConfig() CoalesceConfig {
	return CoalesceConfig{
		SampleStride:        16,
		VetoOverride:        -100,
		ModifiedProtection:  150,
		SharerProtection:    75,
		GhostTrainingRounds: 5,
		Predictor:           perceptron.DefaultConfig(),
		Ghost:               ghost.DefaultBufferConfig(),
	}
}

// Coalesce is the learned, coherence-aware policy. One perceptron is shared
// across all sets; only sampled sets train it or touch their ghost buffer,
// while every set uses it for inference. Victim scoring protects lines that
// are expensive to evict under the MESI protocol unless the predictor is
// confident enough to override the protection.
type Coalesce struct {
	sim.NoEvictTracking

	brain   *perceptron.Predictor
	ghosts  []*ghost.Buffer
	sampled []bool
	config  CoalesceConfig
}

// NewCoalesce creates a Coalesce policy for a cache with numSets sets. The
// predictor is a single resource owned by the policy for the whole run; pass
// nil to have one constructed from config.Predictor.
func NewCoalesce(
	numSets int,
	brain *perceptron.Predictor,
	config CoalesceConfig,
) *Coalesce {
	if config.SampleStride == 0 {
		config.SampleStride = 16
	}
	if brain == nil {
		brain = perceptron.New(config.Predictor)
	}

	ghosts := make([]*ghost.Buffer, numSets)
	sampled := make([]bool, numSets)
	for i := range ghosts {
		ghosts[i] = ghost.NewBuffer(config.Ghost)
		sampled[i] = i%config.SampleStride == 0
	}

	return &Coalesce{
		brain:   brain,
		ghosts:  ghosts,
		sampled: sampled,
		config:  config,
	}
}

// Predictor returns the shared perceptron.
func (c *Coalesce) Predictor() *perceptron.Predictor {
	return c.brain
}

// Sampled reports whether a set trains the predictor and keeps a ghost
// record.
func (c *Coalesce) Sampled(setID int) bool {
	return c.sampled[setID]
}

// UpdateOnHit trains the predictor positively in sampled sets: the line was
// kept and proved useful.
func (c *Coalesce) UpdateOnHit(setID, way int, line sim.CacheLine) {
	if !c.sampled[setID] {
		return
	}

	vote := c.brain.Predict(line.PC, line.Sharers, line.State)
	c.brain.Train(line.PC, line.Sharers, line.State, true, vote)
}

// UpdateOnMiss checks the set's ghost buffer in sampled sets. A ghost hit
// means this exact block was evicted earlier and has now come back, which is
// a confirmed misprediction: the predictor trains positively several times
// with the features the block had when it was evicted, reinforcing the
// pattern that led to the mistake.
func (c *Coalesce) UpdateOnMiss(setID, way int, pc, tag uint64) {
	if !c.sampled[setID] {
		return
	}

	sharers, state, ok := c.ghosts[setID].Lookup(tag, pc)
	if !ok {
		return
	}

	vote := c.brain.Predict(pc, sharers, state)
	for k := 0; k < c.config.GhostTrainingRounds; k++ {
		c.brain.Train(pc, sharers, state, true, vote)
	}
}

// FindVictim scores every valid way by its keep vote, adds coherence-cost
// protection unless the raw vote is at or below the veto-override floor, and
// selects the minimum-score way; the lowest way index wins ties. In sampled
// sets the victim's full feature vector goes into the ghost buffer. No
// negative training happens here: either the block never returns, which
// silently confirms the eviction, or a later ghost hit corrects it.
func (c *Coalesce) FindVictim(
	setID int,
	set []sim.CacheLine,
	pc uint64,
	sharers int,
	state coherence.State,
) int {
	victim := -1
	minScore := math.MaxInt

	for w, line := range set {
		if !line.Valid {
			return w
		}

		raw := c.brain.Predict(line.PC, line.Sharers, line.State)
		score := raw

		if raw > c.config.VetoOverride {
			if line.State == coherence.Modified {
				score += c.config.ModifiedProtection
			}
			if line.Sharers >= 2 {
				score += c.config.SharerProtection
			}
		}

		if score < minScore {
			minScore = score
			victim = w
		}
	}

	if c.sampled[setID] && victim >= 0 {
		v := set[victim]
		c.ghosts[setID].Insert(v.Tag, v.PC, v.Sharers, v.State)
	}

	return victim
}

// Name identifies the policy.
func (c *Coalesce) Name() string {
	return "COALESCE"
}
