package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the cache geometry and latency model for one simulation run.
// Values default to a 64-set, 16-way last-level cache slice.
type Config struct {
	// NumSets is the number of cache sets.
	NumSets int `json:"num_sets"`

	// Ways is the associativity (lines per set).
	Ways int `json:"ways"`

	// BlockSize is the cache line size in bytes, used only for set
	// indexing. The full request address serves as the tag.
	BlockSize int `json:"block_size"`

	// HitLatency is the cost of a cache hit, in cycles.
	HitLatency uint64 `json:"hit_latency"`

	// MissLatency is the cost of fetching from the backing store, in
	// cycles.
	MissLatency uint64 `json:"miss_latency"`

	// CoherencePenalty is the extra cost of evicting a Modified or
	// multi-sharer line: write-back plus invalidation traffic.
	CoherencePenalty uint64 `json:"coherence_penalty"`
}

// DefaultConfig returns a Config with the default cache parameters.
func DefaultConfig() *Config {
	return &Config{
		NumSets:          64,
		Ways:             16,
		BlockSize:        64,
		HitLatency:       15,
		MissLatency:      200,
		CoherencePenalty: 100,
	}
}

// LoadConfig loads a Config from a JSON file. Missing fields keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cache config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable cache.
func (c *Config) Validate() error {
	if c.NumSets <= 0 {
		return fmt.Errorf("num_sets must be > 0")
	}
	if c.Ways <= 0 {
		return fmt.Errorf("ways must be > 0")
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block_size must be > 0")
	}
	if c.HitLatency == 0 {
		return fmt.Errorf("hit_latency must be > 0")
	}
	if c.MissLatency == 0 {
		return fmt.Errorf("miss_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
