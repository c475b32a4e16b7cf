package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the thresholds of the selector, the analyzer and the attack
// strategies. Any field left out of a tuning file keeps its default.
type Tuning struct {
	// Selector
	OpponentNodeLimit int       `yaml:"opponent_node_limit"`
	AttackTrigger     float64   `yaml:"attack_trigger"`
	DefensiveTrigger  float64   `yaml:"defensive_trigger"`
	SeedRatios        []float64 `yaml:"seed_ratios"`
	DefaultVisibility int       `yaml:"default_visibility"`

	// Attack strategies
	EdgeBattleFactor float64 `yaml:"edge_battle_factor"`
	EdgeBattleDepth  int     `yaml:"edge_battle_depth"`

	// Reflection
	BlockedThreshold  float64 `yaml:"blocked_threshold"`
	BlockedBufferStep float64 `yaml:"blocked_buffer_step"`
	DefensiveBandHigh float64 `yaml:"defensive_band_high"`
	DefensiveBandLow  float64 `yaml:"defensive_band_low"`
	BufferRaise       float64 `yaml:"buffer_raise"`
	BufferLower       float64 `yaml:"buffer_lower"`
	LowAggression     float64 `yaml:"low_aggression"`
	MidAggression     float64 `yaml:"mid_aggression"`
	RatioNudge        float64 `yaml:"ratio_nudge"`
}

// Defaults returns the thresholds the agent plays with unless overridden.
func Defaults() Tuning {
	return Tuning{
		OpponentNodeLimit: 5,
		AttackTrigger:     1.1,
		DefensiveTrigger:  1.5,
		SeedRatios:        []float64{0, 0, 0, 0, 1},
		DefaultVisibility: 2,

		EdgeBattleFactor: 1.1,
		EdgeBattleDepth:  2,

		BlockedThreshold:  0.3,
		BlockedBufferStep: 0.1,
		DefensiveBandHigh: 1.05,
		DefensiveBandLow:  0.95,
		BufferRaise:       0.1,
		BufferLower:       0.05,
		LowAggression:     1.0 / 8,
		MidAggression:     1.0 / 3,
		RatioNudge:        0.05,
	}
}

// LoadTuning overlays the YAML file at path on the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if len(t.SeedRatios) != RATIO_COUNT {
		return t, fmt.Errorf("%s: seed_ratios needs %d values, got %d", path, RATIO_COUNT, len(t.SeedRatios))
	}
	sum := 0.0
	for _, v := range t.SeedRatios {
		if v < 0 {
			return t, fmt.Errorf("%s: seed_ratios must not be negative", path)
		}
		sum += v
	}
	if sum > 1+1e-9 {
		return t, fmt.Errorf("%s: seed_ratios sum to %g, more than 1", path, sum)
	}
	return t, nil
}
