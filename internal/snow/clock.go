// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import (
	"fmt"
	"time"
)

// MaxDelta caps a measured wall-clock step so a long stall (suspend,
// debugger, window drag) does not move every particle at once. Fixed steps
// are never capped.
const MaxDelta = 0.25

// ClockMode selects how the frame delta is produced.
type ClockMode string

const (
	// ClockWall measures the elapsed wall-clock time between frames, which
	// keeps the fall speed independent of the refresh rate.
	ClockWall ClockMode = "wall"

	// ClockFixed reports the same interval on every call, for hosts that drive
	// the animation from a fixed timer.
	ClockFixed ClockMode = "fixed"
)

// ParseClockMode accepts "wall" or "fixed"; the empty string means wall.
func ParseClockMode(s string) (ClockMode, error) {
	switch ClockMode(s) {
	case "", ClockWall:
		return ClockWall, nil
	case ClockFixed:
		return ClockFixed, nil
	}
	return "", fmt.Errorf("unknown clock mode %q", s)
}

// Clock hands out the seconds elapsed since its previous Delta call.
type Clock struct {
	mode     ClockMode
	interval time.Duration
	now      func() time.Time
	last     time.Time
	started  bool
}

// NewClock returns a clock for mode. interval is only used by ClockFixed.
func NewClock(mode ClockMode, interval time.Duration) *Clock {
	return &Clock{mode: mode, interval: interval, now: time.Now}
}

// Mode returns the clock's mode.
func (c *Clock) Mode() ClockMode { return c.mode }

// Interval returns the fixed step, or zero for a wall clock.
func (c *Clock) Interval() time.Duration {
	if c.mode != ClockFixed {
		return 0
	}
	return c.interval
}

// Delta returns the step for this frame in seconds. The first call after
// construction or Reset returns 0. Wall-clock steps are capped at MaxDelta.
func (c *Clock) Delta() float64 {
	if !c.started {
		c.started = true
		c.last = c.now()
		return 0
	}
	if c.mode == ClockFixed {
		return c.interval.Seconds()
	}

	now := c.now()
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	return min(d.Seconds(), MaxDelta)
}

// Reset forgets the previous frame so a resumed animation does not catch up
// on the time it spent paused.
func (c *Clock) Reset() {
	c.started = false
}
