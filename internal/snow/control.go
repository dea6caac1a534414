// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import "sync"

// Control carries requests from other goroutines (tray menu, hotkey) to the
// goroutine that ticks the particle set. Only the newest profile request is
// kept; the ticking goroutine picks it up between frames with Take.
type Control struct {
	mu      sync.Mutex
	pending *ShapeProfile
	paused  bool
	stopped bool
}

// Request asks for the field to be regenerated with p, replacing any request
// not yet taken.
func (c *Control) Request(p ShapeProfile) {
	c.mu.Lock()
	c.pending = &p
	c.mu.Unlock()
}

// Take returns and clears the pending profile request.
func (c *Control) Take() (ShapeProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ShapeProfile{}, false
	}
	p := *c.pending
	c.pending = nil
	return p, true
}

// SetPaused freezes or resumes the animation.
func (c *Control) SetPaused(paused bool) {
	c.mu.Lock()
	c.paused = paused
	c.mu.Unlock()
}

// TogglePause flips the paused flag and returns the new value.
func (c *Control) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether ticks should be skipped.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Stop asks the host loop to finish.
func (c *Control) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (c *Control) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
