// Package core implements the Same Animal tile-matching rules: tile
// generation and layout, pair selection, the round countdown, stage
// progression and the Session that ties them together.
//
// Nothing here draws, plays sound or reads input. The platform feeds
// clicks and ticks in, and receives frames, sounds and run results out.
package core

import (
	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

// Kind identifies the animal printed on a tile.
type Kind string

// TileState is the lifecycle of a single tile.
type TileState int

const (
	// TileHidden is face down and selectable.
	TileHidden TileState = iota
	// TileSelected is face up and held in the selection.
	TileSelected
	// TileRevealed is face up but not selectable: during the stage preview
	// or while a mismatched pair waits to flip back.
	TileRevealed
	// TileRemoved has been matched and takes no further part in the stage.
	TileRemoved
)

// String returns the state name.
func (s TileState) String() string {
	switch s {
	case TileHidden:
		return "hidden"
	case TileSelected:
		return "selected"
	case TileRevealed:
		return "revealed"
	case TileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Tile is one card of the current stage.
type Tile struct {
	ID     int
	Kind   Kind
	Slot   int               // Grid position index assigned by Layout
	Bounds platformcore.Rect // Assigned by Layout; not used by matching
	State  TileState
}

// FaceUp reports whether the animal is visible.
func (t *Tile) FaceUp() bool {
	return t.State == TileSelected || t.State == TileRevealed
}

// Live reports whether the tile is still part of the stage.
func (t *Tile) Live() bool {
	return t.State != TileRemoved
}
