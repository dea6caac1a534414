// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import "math"

const (
	// ReferenceHeight is the logical screen height particles were tuned on.
	ReferenceHeight = 1080.0

	// ReferenceDPI is the dots-per-inch value of a 100% scaled display.
	ReferenceDPI = 96.0

	scaleFloor = 0.25
	scaleCeil  = 8.0
)

// ScaleFactor combines the display's device scale (1.0 at 96 DPI) with the
// ratio of its logical height to 1080p. Unusable inputs count as 1.
func ScaleFactor(deviceScale, logicalHeight float64) float64 {
	if !finitePositive(deviceScale) {
		deviceScale = 1
	}
	ratio := 1.0
	if finitePositive(logicalHeight) {
		ratio = logicalHeight / ReferenceHeight
	}
	return math.Min(scaleCeil, math.Max(scaleFloor, deviceScale*ratio))
}

// DeviceScale converts a DPI reading into a device scale factor.
func DeviceScale(dpi float64) float64 {
	if !finitePositive(dpi) {
		return 1
	}
	return dpi / ReferenceDPI
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
