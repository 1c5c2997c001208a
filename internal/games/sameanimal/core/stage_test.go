package core

import (
	"errors"
	"testing"
)

func TestStageControllerAdvance(t *testing.T) {
	c := NewStageController(StageTable{4, 6, 12})

	if c.Index() != 1 || c.Phase() != PhaseIdle {
		t.Fatalf("initial = %d/%v", c.Index(), c.Phase())
	}

	def, err := c.BeginStage(1)
	if err != nil {
		t.Fatal(err)
	}
	if def.Tiles != 4 || def.Pairs() != 2 {
		t.Errorf("stage 1 def = %+v", def)
	}

	tr, ok := c.AllTilesRemoved()
	if !ok {
		t.Fatal("AllTilesRemoved ignored while in progress")
	}
	if tr.Kind != TransitionNextStageReady || tr.Stage != 1 || tr.Next != 2 {
		t.Errorf("transition = %+v", tr)
	}
	if c.Index() != 2 || c.Phase() != PhaseCleared {
		t.Errorf("after clear = %d/%v", c.Index(), c.Phase())
	}
}

func TestStageControllerFinalStageResets(t *testing.T) {
	c := NewStageController(StageTable{4, 6})

	c.BeginStage(2)
	tr, ok := c.AllTilesRemoved()
	if !ok || tr.Kind != TransitionRunComplete {
		t.Fatalf("transition = %+v ok=%v, want run complete", tr, ok)
	}
	if c.Index() != 1 || c.Phase() != PhaseIdle {
		t.Errorf("after final clear = %d/%v", c.Index(), c.Phase())
	}
}

func TestStageControllerTimeExpired(t *testing.T) {
	c := NewStageController(StageTable{4, 6, 12})

	c.BeginStage(3)
	tr, ok := c.TimeExpired()
	if !ok {
		t.Fatal("TimeExpired ignored while in progress")
	}
	if tr.Kind != TransitionRunOver || tr.Reason != ReasonTimeExpired || tr.Stage != 3 {
		t.Errorf("transition = %+v", tr)
	}
	if c.Index() != 1 || c.Phase() != PhaseFailed {
		t.Errorf("after expiry = %d/%v", c.Index(), c.Phase())
	}
}

func TestStageControllerResolvesOnce(t *testing.T) {
	c := NewStageController(StageTable{4, 6})

	c.BeginStage(1)
	if _, ok := c.AllTilesRemoved(); !ok {
		t.Fatal("clear ignored")
	}
	if _, ok := c.TimeExpired(); ok {
		t.Error("expiry applied after clear")
	}
	if _, ok := c.AllTilesRemoved(); ok {
		t.Error("second clear applied")
	}
	if c.Index() != 2 {
		t.Errorf("index = %d, want 2", c.Index())
	}
}

func TestStageControllerInvalidStage(t *testing.T) {
	c := NewStageController(StageTable{4, 6})

	for _, idx := range []int{0, 3} {
		if _, err := c.BeginStage(idx); !errors.Is(err, ErrInvalidStage) {
			t.Errorf("BeginStage(%d) err = %v", idx, err)
		}
	}
	if c.Phase() != PhaseIdle || c.Index() != 1 {
		t.Errorf("invalid begin changed state: %d/%v", c.Index(), c.Phase())
	}
}

func TestStageControllerAttemptCounter(t *testing.T) {
	c := NewStageController(StageTable{4})

	c.BeginStage(1)
	first := c.Attempt()
	c.BeginStage(1)
	if c.Attempt() == first {
		t.Error("attempt counter unchanged on new attempt")
	}
}
