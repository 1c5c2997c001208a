// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for Same Animal.
package config

import "time"

// SameAnimalConfig contains all configuration for the Same Animal game.
type SameAnimalConfig struct {
	Stages  []int         `yaml:"stages"` // Tiles per stage, two per pair
	Kinds   []string      `yaml:"kinds"`
	Timing  TimingConfig  `yaml:"timing"`
	Layout  LayoutConfig  `yaml:"layout"`
	Rules   RulesConfig   `yaml:"rules"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// TimingConfig defines the countdown and display delays.
type TimingConfig struct {
	RoundSeconds int `yaml:"round_seconds"`
	PreviewMS    int `yaml:"preview_ms"`  // All tiles face up before the countdown
	MismatchMS   int `yaml:"mismatch_ms"` // Mismatched pair stays face up
}

// Preview returns the preview window as a duration.
func (t TimingConfig) Preview() time.Duration {
	return time.Duration(t.PreviewMS) * time.Millisecond
}

// Mismatch returns the mismatch display delay as a duration.
func (t TimingConfig) Mismatch() time.Duration {
	return time.Duration(t.MismatchMS) * time.Millisecond
}

// LayoutConfig defines tile geometry in terminal cells.
type LayoutConfig struct {
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
	Spacing    int `yaml:"spacing"`
}

// RulesConfig holds rule switches that differ between game variants.
type RulesConfig struct {
	// AllowDeselect lets a second click on a selected tile flip it back.
	// When false, face-up tiles ignore clicks until the pair resolves.
	AllowDeselect bool `yaml:"allow_deselect"`
}

// ScoringConfig defines points awarded during a run.
type ScoringConfig struct {
	PairPoints int `yaml:"pair_points"` // Multiplied by the stage index
	TimeBonus  int `yaml:"time_bonus"`  // Per second left on clear
}

// MaxPairs returns the largest pair count any stage can deal.
func (c SameAnimalConfig) MaxPairs() int {
	return len(c.Kinds)
}
