// Package perceptron implements a dual hashed-weight perceptron that votes
// on whether a cache line is worth keeping. The two weight tables are indexed
// by different hashes of the line's features so that aliasing in one table is
// decorrelated from the other; this is collision mitigation, not an ensemble.
package perceptron

import (
	"github.com/HarshRaj797864/COALESCE-Hashed-Perceptron-Cache-Replacement-Policy/coherence"
)

// Hash-mixing constants for the two tables. They must differ so the tables
// alias independently.
const (
	hashMix0 = 0x9e3779b9
	hashMix1 = 0x85ebca6b
)

// Config holds configuration for the predictor.
type Config struct {
	// TableSize is the number of weights per table. Default is 2048.
	TableSize int
	// MaxWeight and MinWeight bound every weight. Updates that would
	// leave [MinWeight, MaxWeight] are dropped. Defaults are 127 and -128.
	MaxWeight int
	MinWeight int
	// Threshold is the confidence band around zero within which training
	// fires even without a misprediction. Default is 35.
	Threshold int
}

// DefaultConfig returns a default predictor configuration. Two tables of
// 2048 signed-byte-range weights keep the total budget under 5KB.
func DefaultConfig() Config {
	return Config{
		TableSize: 2048,
		MaxWeight: 127,
		MinWeight: -128,
		Threshold: 35,
	}
}

// Stats holds running predictor statistics.
type Stats struct {
	// Predictions is the total number of Predict calls.
	Predictions uint64
	// Trainings is the number of Train calls that moved weights.
	Trainings uint64
	// SaturatedUpdates is the number of single-weight updates dropped
	// because they would have left the weight bounds.
	SaturatedUpdates uint64
}

// Predictor is the dual hashed-weight perceptron. Table 0 captures the
// coherence context (pc, state); table 1 captures the sharing context
// (pc, sharers). The keep vote is the sum of the two indexed weights.
type Predictor struct {
	table0 []int
	table1 []int

	tableSize int
	maxWeight int
	minWeight int
	threshold int

	stats Stats
}

// New creates a predictor with the given configuration.
//
// The tables are deliberately not zero-initialized: small deterministic
// values in [-5, +5] break symmetry and lean negative on average, so a
// never-seen program counter starts out looking like streaming data.
func New(config Config) *Predictor {
	if config.TableSize == 0 {
		config.TableSize = 2048
	}
	if config.MaxWeight == 0 {
		config.MaxWeight = 127
	}
	if config.MinWeight == 0 {
		config.MinWeight = -128
	}
	if config.Threshold == 0 {
		config.Threshold = 35
	}

	p := &Predictor{
		table0:    make([]int, config.TableSize),
		table1:    make([]int, config.TableSize),
		tableSize: config.TableSize,
		maxWeight: config.MaxWeight,
		minWeight: config.MinWeight,
		threshold: config.Threshold,
	}

	for i := 0; i < config.TableSize; i++ {
		p.table0[i] = -5 + (i % 11)
		p.table1[i] = -5 + ((i * 7) % 11)
	}

	return p
}

// hash0 indexes table 0 by the coherence context.
func (p *Predictor) hash0(pc uint64, state coherence.State) int {
	h := pc ^ hashMix0
	h ^= uint64(state) << 8
	return int(h % uint64(p.tableSize))
}

// hash1 indexes table 1 by the sharing context.
func (p *Predictor) hash1(pc uint64, sharers int) int {
	h := pc ^ hashMix1
	h ^= uint64(sharers) << 4
	return int(h % uint64(p.tableSize))
}

// Predict returns the keep vote for a line with the given features. Positive
// means reuse is likely; negative means the line is probably dead. It has no
// side effects beyond statistics and is deterministic given table contents.
func (p *Predictor) Predict(pc uint64, sharers int, state coherence.State) int {
	p.stats.Predictions++
	return p.table0[p.hash0(pc, state)] + p.table1[p.hash1(pc, sharers)]
}

// Train nudges both indexed weights toward keep (true) or evict (false).
//
// Training fires when the current vote disagrees with the label, or when the
// vote's magnitude is within the confidence threshold of zero. The second
// condition moves weights even when the prediction is already correct, which
// accelerates convergence for low-confidence keys. currentVote must be the
// vote the caller acted on, not a fresh prediction.
func (p *Predictor) Train(
	pc uint64,
	sharers int,
	state coherence.State,
	keep bool,
	currentVote int,
) {
	mispredicted := (keep && currentVote <= 0) || (!keep && currentVote > 0)
	lowConfidence := abs(currentVote) <= p.threshold

	if !mispredicted && !lowConfidence {
		return
	}
	p.stats.Trainings++

	direction := 1
	if !keep {
		direction = -1
	}

	h0 := p.hash0(pc, state)
	if v := p.table0[h0] + direction; v >= p.minWeight && v <= p.maxWeight {
		p.table0[h0] = v
	} else {
		p.stats.SaturatedUpdates++
	}

	h1 := p.hash1(pc, sharers)
	if v := p.table1[h1] + direction; v >= p.minWeight && v <= p.maxWeight {
		p.table1[h1] = v
	} else {
		p.stats.SaturatedUpdates++
	}
}

// Stats returns the predictor statistics.
func (p *Predictor) Stats() Stats {
	return p.stats
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
