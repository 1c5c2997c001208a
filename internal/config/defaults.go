package config

import (
	_ "embed"
)

//go:embed defaults/sameanimal.yaml
var defaultSameAnimalYAML []byte

// DefaultSameAnimalConfig returns the default Same Animal configuration.
func DefaultSameAnimalConfig() SameAnimalConfig {
	return SameAnimalConfig{
		Stages: []int{4, 6, 12, 16, 20},
		Kinds: []string{
			"elephant", "fox", "giraffe", "koala", "panda",
			"puppy1", "puppy2", "tiger", "rabbit", "squirrel",
		},
		Timing: TimingConfig{
			RoundSeconds: 30,
			PreviewMS:    2000,
			MismatchMS:   1000,
		},
		Layout: LayoutConfig{
			TileWidth:  10,
			TileHeight: 3,
			Spacing:    1,
		},
		Rules: RulesConfig{
			AllowDeselect: true,
		},
		Scoring: ScoringConfig{
			PairPoints: 10,
			TimeBonus:  5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "sameanimal", "sameanimal_relaxed":
		return defaultSameAnimalYAML
	default:
		return nil
	}
}
