package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetTiming maps a preset to round seconds and preview milliseconds.
var presetTiming = map[DifficultyPreset]struct {
	roundSeconds int
	previewMS    int
}{
	DifficultyEasy:   {45, 3000},
	DifficultyNormal: {30, 2000},
	DifficultyHard:   {20, 1000},
}

// ParsePreset converts a flag value to a preset. An empty string yields
// DifficultyNormal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presetTiming[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SameAnimalConfig, preset DifficultyPreset) {
	t, ok := presetTiming[preset]
	if !ok {
		return
	}
	cfg.Timing.RoundSeconds = t.roundSeconds
	cfg.Timing.PreviewMS = t.previewMS

	// Hard mode also locks face-up tiles until the pair resolves.
	if preset == DifficultyHard {
		cfg.Rules.AllowDeselect = false
	}
}
