package core

import (
	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

// RoundTimer counts a stage attempt down one second at a time and calls
// onExpire exactly once when it reaches zero.
type RoundTimer struct {
	sched     platformcore.Scheduler
	onExpire  func()
	handle    platformcore.Handle
	remaining int
	running   bool
	gen       uint64 // Bumped on every Start/Stop so stale ticks are ignored
}

// NewRoundTimer creates a stopped timer.
func NewRoundTimer(sched platformcore.Scheduler, onExpire func()) *RoundTimer {
	return &RoundTimer{
		sched:    sched,
		onExpire: onExpire,
	}
}

// Start resets the countdown to seconds and begins ticking. Any previous
// countdown is cancelled first.
func (t *RoundTimer) Start(seconds int) {
	t.Reset(seconds)
	t.running = true

	gen := t.gen
	t.handle = t.sched.EverySecond(func() {
		if gen != t.gen {
			return
		}
		t.tick()
	})
}

// Reset stops the timer and sets the remaining time without ticking.
func (t *RoundTimer) Reset(seconds int) {
	t.Stop()
	t.remaining = max(seconds, 0)
}

// Stop cancels the countdown. It reports whether a countdown was running.
func (t *RoundTimer) Stop() bool {
	t.gen++
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	wasRunning := t.running
	t.running = false
	return wasRunning
}

// Remaining returns the seconds left.
func (t *RoundTimer) Remaining() int {
	return t.remaining
}

// Running reports whether the countdown is active.
func (t *RoundTimer) Running() bool {
	return t.running
}

func (t *RoundTimer) tick() {
	if !t.running {
		return
	}
	t.remaining--
	if t.remaining > 0 {
		return
	}

	t.remaining = 0
	t.Stop()
	if t.onExpire != nil {
		t.onExpire()
	}
}
