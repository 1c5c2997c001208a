package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every ValidationError.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError describes the first problem found in a config.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that the stage table can be dealt from the kinds and
// that every timing and layout value is usable.
func (c SameAnimalConfig) Validate() error {
	if len(c.Kinds) == 0 {
		return invalid("NO_KINDS", "at least one kind is required")
	}
	seen := make(map[string]bool, len(c.Kinds))
	for _, k := range c.Kinds {
		if k == "" {
			return invalid("EMPTY_KIND", "kind names must not be empty")
		}
		if seen[k] {
			return invalid("DUPLICATE_KIND", "kind %q listed twice", k)
		}
		seen[k] = true
	}

	if len(c.Stages) == 0 {
		return invalid("NO_STAGES", "at least one stage is required")
	}
	limit := 2 * len(c.Kinds)
	prev := 0
	for i, n := range c.Stages {
		stage := i + 1
		switch {
		case n <= 0:
			return invalid("STAGE_EMPTY", "stage %d has %d tiles", stage, n)
		case n%2 != 0:
			return invalid("STAGE_ODD", "stage %d has an odd tile count %d", stage, n)
		case n < prev:
			return invalid("STAGE_DECREASING", "stage %d has %d tiles, fewer than stage %d", stage, n, stage-1)
		case n > limit:
			return invalid("STAGE_TOO_LARGE", "stage %d needs %d tiles but %d kinds allow at most %d", stage, n, len(c.Kinds), limit)
		}
		prev = n
	}

	if c.Timing.RoundSeconds <= 0 {
		return invalid("BAD_TIMING", "round_seconds must be positive")
	}
	if c.Timing.PreviewMS < 0 || c.Timing.MismatchMS <= 0 {
		return invalid("BAD_TIMING", "preview_ms must be >= 0 and mismatch_ms > 0")
	}
	if c.Layout.TileWidth <= 0 || c.Layout.TileHeight <= 0 || c.Layout.Spacing < 0 {
		return invalid("BAD_LAYOUT", "tile size must be positive and spacing non-negative")
	}
	if c.Scoring.PairPoints < 0 || c.Scoring.TimeBonus < 0 {
		return invalid("BAD_SCORING", "scores must not be negative")
	}
	return nil
}
