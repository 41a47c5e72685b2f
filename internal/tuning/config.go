// Package tuning holds the balance constants of the political simulation.
// Defaults match the shipped game balance; a YAML file can override them for
// scenario testing without recompiling.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable constant read by the core at runtime.
type Config struct {
	// Memory store.
	MemoryCapacity   int     `yaml:"memory_capacity"`    // per-advisor record bound
	MemoryForgetAt   float64 `yaml:"memory_forget_at"`   // reliability floor before eviction
	MemoryAccessBump float64 `yaml:"memory_access_bump"` // reliability gain on recall
	MinRecallReliability float64 `yaml:"min_recall_reliability"`

	// Relationship ledger.
	RelationshipDecayRate float64 `yaml:"relationship_decay_rate"` // trust relaxation per turn

	// Conspiracy detection and resolution.
	DetectionEdgeThreshold float64 `yaml:"detection_edge_threshold"` // conspiracy_level for graph edges
	AutoCoupStrength       float64 `yaml:"auto_coup_strength"`       // group strength gate
	AutoCoupMotivation     float64 `yaml:"auto_coup_motivation"`     // group motivation gate

	// Political temperature.
	TemperatureDecay      float64 `yaml:"temperature_decay"`
	HeatPerConspiracy     float64 `yaml:"heat_per_conspiracy"`
	HeatPerPropaganda     float64 `yaml:"heat_per_propaganda"`
	HeatPerCrisis         float64 `yaml:"heat_per_crisis"`

	// Reforms.
	ReformPassSupport float64 `yaml:"reform_pass_support"` // net support needed to pass
}

// Default returns the shipped balance.
func Default() Config {
	return Config{
		MemoryCapacity:       50,
		MemoryForgetAt:       0.01,
		MemoryAccessBump:     0.05,
		MinRecallReliability: 0.1,

		RelationshipDecayRate: 0.01,

		DetectionEdgeThreshold: 0.3,
		AutoCoupStrength:       0.6,
		AutoCoupMotivation:     0.7,

		TemperatureDecay:  0.05,
		HeatPerConspiracy: 0.1,
		HeatPerPropaganda: 0.05,
		HeatPerCrisis:     0.15,

		ReformPassSupport: 0.5,
	}
}

// Load reads a YAML override file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse tuning file: %w", err)
	}
	return cfg, nil
}
