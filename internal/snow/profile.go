// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package snow implements the particle field behind the falling snow overlay.
// It owns the particles, advances them once per frame, respawns the ones that
// leave the bottom of the container and regenerates the whole field when the
// user picks another shape. It never touches a rendering API: every particle
// carries an opaque handle supplied by the host, and the host reads the numeric
// transform fields back when it draws.
package snow

import "fmt"

// Shape identifies the outline a profile is drawn with.
type Shape int

const (
	ShapeDot Shape = iota
	ShapeFlake
	ShapeCrystal
	ShapeStar
)

func (s Shape) String() string {
	switch s {
	case ShapeDot:
		return "dot"
	case ShapeFlake:
		return "flake"
	case ShapeCrystal:
		return "crystal"
	case ShapeStar:
		return "star"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ShapeProfile is a named size configuration for one shape. Offset is the
// visual height padding applied to a particle of MaxScale size; smaller
// particles receive a proportional share of it.
type ShapeProfile struct {
	Index    int
	Name     string
	Shape    Shape
	Offset   float64
	MaxScale float64
}

// Profiles lists the selectable shape profiles in menu order.
var Profiles = []ShapeProfile{
	{Index: 0, Name: "Dot", Shape: ShapeDot, Offset: 0, MaxScale: 15},
	{Index: 1, Name: "Snowflake", Shape: ShapeFlake, Offset: 4, MaxScale: 20},
	{Index: 2, Name: "Crystal", Shape: ShapeCrystal, Offset: 6, MaxScale: 24},
	{Index: 3, Name: "Star", Shape: ShapeStar, Offset: 3, MaxScale: 18},
}

// Lookup returns the profile stored at index i. Out-of-range indices report
// false together with the first profile so callers always have something to
// draw.
func Lookup(i int) (ShapeProfile, bool) {
	if i < 0 || i >= len(Profiles) {
		return Profiles[0], false
	}
	return Profiles[i], true
}

// LookupName finds a profile by case-sensitive name or shape identifier.
func LookupName(name string) (ShapeProfile, bool) {
	for _, p := range Profiles {
		if p.Name == name || p.Shape.String() == name {
			return p, true
		}
	}
	return Profiles[0], false
}
