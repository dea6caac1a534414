// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build !windows

package console

// Processes started from a terminal already own one.
const supported = false

func attachConsole(uint32) error { return nil }

func allocConsole() error { return nil }

func freeConsole() error { return nil }

func (c *Console) launchConsole() error { return nil }
