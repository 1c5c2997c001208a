package core

import "time"

// Handle is returned by a Scheduler for every registered callback.
type Handle interface {
	// Cancel prevents any future call of the callback. It reports whether
	// a call was actually prevented.
	Cancel() bool
}

// Scheduler defers work onto the single game execution stream.
// Callbacks never run concurrently with each other or with input handling.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	EverySecond(fn func()) Handle
}

// Clock is a virtual-time Scheduler. Time only moves when Advance is
// called, and due callbacks run synchronously inside Advance, ordered by
// due time and then by registration order.
//
// The platform advances the clock once per frame; tests advance it by
// hand, which makes every timed behavior deterministic.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers []*clockTimer
}

type clockTimer struct {
	clock  *Clock
	due    time.Duration
	seq    uint64
	period time.Duration // 0 for one-shot timers
	fn     func()
	active bool
}

// NewClock creates a clock at virtual time zero.
func NewClock() *Clock {
	return &Clock{}
}

var _ Scheduler = (*Clock)(nil)

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of callbacks still scheduled.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// After schedules fn to run once, d after the current virtual time.
func (c *Clock) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return c.add(d, 0, fn)
}

// Every schedules fn to run every period until cancelled.
func (c *Clock) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		panic("core: non-positive interval for Clock.Every")
	}
	return c.add(period, period, fn)
}

// EverySecond schedules fn to run once per virtual second.
func (c *Clock) EverySecond(fn func()) Handle {
	return c.Every(time.Second, fn)
}

// Advance moves virtual time forward by d and runs every callback that
// falls due, including ones scheduled by callbacks during this call.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := c.now + d

	for {
		t := c.next(target)
		if t == nil {
			break
		}
		c.now = t.due
		if t.period > 0 {
			c.seq++
			t.due += t.period
			t.seq = c.seq
		} else {
			c.remove(t)
		}
		t.fn()
	}

	c.now = target
}

func (c *Clock) add(delay, period time.Duration, fn func()) *clockTimer {
	c.seq++
	t := &clockTimer{
		clock:  c,
		due:    c.now + delay,
		seq:    c.seq,
		period: period,
		fn:     fn,
		active: true,
	}
	c.timers = append(c.timers, t)
	return t
}

// next returns the earliest timer due at or before target.
func (c *Clock) next(target time.Duration) *clockTimer {
	var best *clockTimer
	for _, t := range c.timers {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) remove(t *clockTimer) {
	t.active = false
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Cancel implements Handle.
func (t *clockTimer) Cancel() bool {
	if !t.active {
		return false
	}
	t.clock.remove(t)
	return true
}
