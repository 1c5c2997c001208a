package core

import "errors"

var (
	// ErrInvalidStage is returned when a stage index is outside 1..MaxStages.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrAssetsNotReady is returned when play is requested before the
	// sprite assets have been loaded.
	ErrAssetsNotReady = errors.New("assets not ready")

	// ErrNoKinds is returned when a tile set has no animal kinds to deal.
	ErrNoKinds = errors.New("no tile kinds configured")
)
