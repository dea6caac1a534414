// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

//go:build windows

package overlay

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sys/windows"
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

func systemMetric(index uintptr) int {
	r1, _, _ := procGetSystemMetrics.Call(index)
	return int(int32(r1))
}

// desktopBounds returns the virtual screen (the bounding box of every
// monitor) in device-independent pixels.
func desktopBounds() (x, y, w, h int) {
	x = systemMetric(smXVirtualScreen)
	y = systemMetric(smYVirtualScreen)
	w = systemMetric(smCXVirtualScreen)
	h = systemMetric(smCYVirtualScreen)
	if w <= 0 || h <= 0 {
		w, h = ebiten.Monitor().Size()
		return 0, 0, w, h
	}

	s := ebiten.Monitor().DeviceScaleFactor()
	if !(s > 0) {
		return x, y, w, h
	}
	return int(math.Floor(float64(x) / s)), int(math.Floor(float64(y) / s)),
		int(math.Ceil(float64(w) / s)), int(math.Ceil(float64(h) / s))
}
