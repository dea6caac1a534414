// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package console provides functionality for attaching, detaching, spawning, and managing console input and output streams.
// SnowFlake is built as a GUI program, so it has no console of its own; this package binds the process to the
// parent console for flag output, or allocates a new one when --verbose is given.
// The original standard IO streams are preserved and restored when the console is released.
// Console operations only have an effect on Windows; elsewhere every method succeeds without doing anything.
package console

import (
	"errors"
	"os"
)

var (
	// ErrBoundGuard is returned when an attempt is made to attach or spawn a console
	// while the Console instance is already bound to one.
	ErrBoundGuard = errors.New("console is already bound")

	// ErrNotBound is returned when an attempt is made to detach or operate on a console
	// that has not been attached or spawned yet.
	ErrNotBound = errors.New("console is not bound")
)

// ParentProcess selects the console of the process that launched SnowFlake.
const ParentProcess = ^uint32(0)

// Console represents a console bound to the current process.
type Console struct {
	stdin, stdout, stderr *os.File
	infile, outfile       *os.File
	bound, debug          bool
}

// New creates a Console and preserves the current standard IO streams.
// If debug is true, console operations are skipped so a debugger keeps its own streams.
func New(debug bool) *Console {
	return &Console{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		debug:  debug,
	}
}

// Bound reports whether the Console currently owns console streams.
func (c *Console) Bound() bool { return c.bound }

// Attach binds the Console to an existing console. If a PID is provided,
// it attaches to that process's console; otherwise, it attaches to the parent process console.
// Returns ErrBoundGuard if the Console is already bound.
func (c *Console) Attach(pid ...uint32) error {
	if c.debug || !supported {
		return nil
	}
	if c.bound {
		return ErrBoundGuard
	}

	procId := ParentProcess
	if len(pid) > 0 {
		procId = pid[0]
	}
	if err := attachConsole(procId); err != nil {
		return err
	}
	if err := c.launchConsole(); err != nil {
		return err
	}

	_, _ = os.Stdout.WriteString("\r\033[K") // clear line
	return nil
}

// Detach restores the original standard IO streams, closes the console files,
// and frees the console. Returns ErrNotBound if no console is attached.
func (c *Console) Detach() error {
	if c.debug || !supported {
		return nil
	}
	if !c.bound {
		return ErrNotBound
	}

	os.Stdin, os.Stdout, os.Stderr = c.stdin, c.stdout, c.stderr

	_ = c.infile.Close()
	_ = c.outfile.Close()

	c.infile, c.outfile = nil, nil
	c.bound = false

	return c.Free()
}

// Free detaches the process from its console without restoring IO streams.
func (c *Console) Free() error {
	if c.debug || !supported {
		return nil
	}
	return freeConsole()
}

// Spawn allocates a new console window and binds the Console instance to it.
// Returns ErrBoundGuard if the Console is already bound.
func (c *Console) Spawn() error {
	if c.debug || !supported {
		return nil
	}
	if c.bound {
		return ErrBoundGuard
	}
	if err := allocConsole(); err != nil {
		return err
	}

	return c.launchConsole()
}
