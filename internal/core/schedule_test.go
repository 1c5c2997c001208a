package core

import (
	"reflect"
	"testing"
	"time"
)

func TestClockAfterOrdering(t *testing.T) {
	c := NewClock()
	var got []string

	c.After(2*time.Second, func() { got = append(got, "b") })
	c.After(time.Second, func() { got = append(got, "a") })
	c.After(2*time.Second, func() { got = append(got, "c") })

	c.Advance(500 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("nothing should fire before its due time, got %v", got)
	}

	c.Advance(2 * time.Second)
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("fire order = %v, expected %v", got, expected)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after all one-shots fired", c.Pending())
	}
}

func TestClockCancel(t *testing.T) {
	c := NewClock()
	fired := false

	h := c.After(time.Second, func() { fired = true })
	if !h.Cancel() {
		t.Error("first Cancel should report a prevented call")
	}
	if h.Cancel() {
		t.Error("second Cancel should report nothing prevented")
	}

	c.Advance(5 * time.Second)
	if fired {
		t.Error("cancelled callback fired")
	}
}

func TestClockEverySecond(t *testing.T) {
	c := NewClock()
	ticks := 0

	h := c.EverySecond(func() { ticks++ })

	for i := 0; i < 10; i++ {
		c.Advance(time.Second)
	}
	if ticks != 10 {
		t.Errorf("ticks = %d after 10 seconds, expected 10", ticks)
	}

	c.Advance(3500 * time.Millisecond)
	if ticks != 13 {
		t.Errorf("ticks = %d after a 3.5s jump, expected 13", ticks)
	}

	if !h.Cancel() {
		t.Error("cancelling a running ticker should report true")
	}
	c.Advance(time.Minute)
	if ticks != 13 {
		t.Errorf("ticker kept firing after Cancel: %d", ticks)
	}
}

func TestClockCancelFromCallback(t *testing.T) {
	c := NewClock()
	ticks := 0

	var h Handle
	h = c.EverySecond(func() {
		ticks++
		if ticks == 3 {
			h.Cancel()
		}
	})

	c.Advance(10 * time.Second)
	if ticks != 3 {
		t.Errorf("ticks = %d, expected the ticker to stop itself at 3", ticks)
	}
}

func TestClockScheduleFromCallback(t *testing.T) {
	c := NewClock()
	var at []time.Duration

	c.After(time.Second, func() {
		at = append(at, c.Now())
		c.After(time.Second, func() { at = append(at, c.Now()) })
	})

	c.Advance(5 * time.Second)
	expected := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(at, expected) {
		t.Errorf("callback times = %v, expected %v", at, expected)
	}
	if c.Now() != 5*time.Second {
		t.Errorf("Now() = %v, expected 5s", c.Now())
	}
}
