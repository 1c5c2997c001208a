package core

import "fmt"

// Phase is the state of the current stage attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseCleared
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCleared:
		return "cleared"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TransitionKind tells the session what a concluded stage means for the run.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	// TransitionNextStageReady: stage cleared, the next one waits for the
	// player to start it.
	TransitionNextStageReady
	// TransitionRunComplete: the final stage was cleared.
	TransitionRunComplete
	// TransitionRunOver: the stage failed and the run ended.
	TransitionRunOver
)

// FailureReason explains a TransitionRunOver.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonTimeExpired
)

// String returns the reason name.
func (r FailureReason) String() string {
	switch r {
	case ReasonTimeExpired:
		return "time_expired"
	default:
		return "none"
	}
}

// Transition describes how a stage attempt concluded.
type Transition struct {
	Kind   TransitionKind
	Stage  int // The stage that concluded
	Next   int // The stage the next attempt will play
	Reason FailureReason
}

// StageController tracks the stage index and the phase of the current
// attempt. Each attempt resolves at most once.
type StageController struct {
	stages  StageTable
	index   int
	phase   Phase
	attempt int
}

// NewStageController creates a controller at stage 1, idle.
func NewStageController(stages StageTable) *StageController {
	return &StageController{
		stages: stages,
		index:  1,
		phase:  PhaseIdle,
	}
}

// Index returns the current (or next to play) stage index.
func (c *StageController) Index() int {
	return c.index
}

// Phase returns the phase of the current attempt.
func (c *StageController) Phase() Phase {
	return c.phase
}

// MaxStages returns the number of stages in a run.
func (c *StageController) MaxStages() int {
	return c.stages.MaxStages()
}

// Attempt returns a counter that changes with every BeginStage.
func (c *StageController) Attempt() int {
	return c.attempt
}

// BeginStage starts an attempt at index. An attempt already in progress
// is superseded.
func (c *StageController) BeginStage(index int) (StageDefinition, error) {
	def, err := c.stages.Stage(index)
	if err != nil {
		return StageDefinition{}, fmt.Errorf("begin stage: %w", err)
	}
	c.index = index
	c.phase = PhaseInProgress
	c.attempt++
	return def, nil
}

// AllTilesRemoved concludes the attempt as cleared. The second return is
// false when no attempt is in progress, and the call is then ignored.
func (c *StageController) AllTilesRemoved() (Transition, bool) {
	if c.phase != PhaseInProgress {
		return Transition{}, false
	}

	cleared := c.index
	if c.index < c.stages.MaxStages() {
		c.phase = PhaseCleared
		c.index++
		return Transition{Kind: TransitionNextStageReady, Stage: cleared, Next: c.index}, true
	}

	c.phase = PhaseIdle
	c.index = 1
	return Transition{Kind: TransitionRunComplete, Stage: cleared, Next: 1}, true
}

// TimeExpired concludes the attempt as failed and sends the run back to
// stage 1. Ignored unless an attempt is in progress.
func (c *StageController) TimeExpired() (Transition, bool) {
	if c.phase != PhaseInProgress {
		return Transition{}, false
	}

	failed := c.index
	c.phase = PhaseFailed
	c.index = 1
	return Transition{Kind: TransitionRunOver, Stage: failed, Next: 1, Reason: ReasonTimeExpired}, true
}

// Reset abandons any attempt and returns to stage 1.
func (c *StageController) Reset() {
	c.phase = PhaseIdle
	c.index = 1
}
