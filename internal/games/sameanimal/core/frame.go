package core

import (
	"time"

	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

// Sound is a fire-and-forget audio cue.
type Sound int

const (
	SoundSelect Sound = iota
	SoundMatch
	SoundMismatch
	SoundClear
	SoundGameOver
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundSelect:
		return "select"
	case SoundMatch:
		return "match"
	case SoundMismatch:
		return "mismatch"
	case SoundClear:
		return "clear"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// AudioNotifier receives sound cues. Return values are never observed.
type AudioNotifier interface {
	Play(s Sound)
}

// Renderer receives a frame for display.
type Renderer interface {
	RenderFrame(f Frame)
}

// RunResult summarizes a finished run.
type RunResult struct {
	RunID        string
	GameID       string
	StageReached int // Last stage played
	Completed    bool
	Score        int
	Duration     time.Duration
}

// RunRecorder persists finished runs.
type RunRecorder interface {
	SaveRunResult(r RunResult) error
}

// TileView is a read-only copy of a tile for display.
type TileView struct {
	ID     int
	Kind   Kind
	Slot   int
	Bounds platformcore.Rect
	State  TileState
}

// Button is a clickable area on the surface.
type Button struct {
	Label  string
	Bounds platformcore.Rect
}

// SessionState is the externally visible progress of a session.
type SessionState struct {
	Stage         int
	TimeRemaining int
	Running       bool
}

// Frame is everything a renderer needs to draw one moment of the game.
type Frame struct {
	SessionState
	MaxStages  int
	Phase      Phase
	Timed      bool
	Previewing bool
	Score      int
	Message    string
	Tiles      []TileView // Live tiles, only while running
	Grid       Grid
	Button     *Button // START / NEXT STAGE, only while not running
	Mute       Button
	Muted      bool
	Loading    bool
}
