// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build !windows

package overlay

import "github.com/hajimehoshi/ebiten/v2"

// desktopBounds covers the primary monitor; ebiten does not expose monitor
// positions, so a multi-monitor span is only available on Windows.
func desktopBounds() (x, y, w, h int) {
	w, h = ebiten.Monitor().Size()
	if w <= 0 || h <= 0 {
		return 0, 0, 1920, 1080
	}
	return 0, 0, w, h
}
