// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import "math"

// Segment is a stroked line in unit coordinates. Width is relative to the
// particle size.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
}

// Dot is a filled circle in unit coordinates.
type Dot struct {
	X, Y, R float64
}

// Outline describes a shape inside the unit square with (0.5, 0.5) at its
// center. Hosts scale it by the particle size when rasterizing.
type Outline struct {
	Segments []Segment
	Dots     []Dot
}

// OutlineOf returns the drawing primitives for shape. Unknown shapes draw as
// dots.
func OutlineOf(shape Shape) Outline {
	switch shape {
	case ShapeFlake:
		return flakeOutline()
	case ShapeCrystal:
		return crystalOutline()
	case ShapeStar:
		return starOutline()
	}
	return Outline{Dots: []Dot{{X: 0.5, Y: 0.5, R: 0.5}}}
}

func polar(r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return 0.5 + r*math.Cos(rad), 0.5 + r*math.Sin(rad)
}

// flakeOutline is six arms with a pair of branches on each.
func flakeOutline() Outline {
	var o Outline
	for i := range 6 {
		a := float64(i) * 60
		x, y := polar(0.48, a)
		o.Segments = append(o.Segments, Segment{X0: 0.5, Y0: 0.5, X1: x, Y1: y, Width: 0.08})

		bx, by := polar(0.28, a)
		for _, side := range []float64{-40, 40} {
			rad := (a + side) * math.Pi / 180
			o.Segments = append(o.Segments, Segment{
				X0: bx, Y0: by,
				X1: bx + 0.14*math.Cos(rad), Y1: by + 0.14*math.Sin(rad),
				Width: 0.06,
			})
		}
	}
	return o
}

// crystalOutline is six arms joined by a hexagon, with a solid core.
func crystalOutline() Outline {
	var o Outline
	for i := range 6 {
		a := float64(i) * 60
		x, y := polar(0.48, a)
		o.Segments = append(o.Segments, Segment{X0: 0.5, Y0: 0.5, X1: x, Y1: y, Width: 0.07})

		hx0, hy0 := polar(0.3, a)
		hx1, hy1 := polar(0.3, a+60)
		o.Segments = append(o.Segments, Segment{X0: hx0, Y0: hy0, X1: hx1, Y1: hy1, Width: 0.05})
	}
	o.Dots = []Dot{{X: 0.5, Y: 0.5, R: 0.1}}
	return o
}

// starOutline is a closed five-pointed star.
func starOutline() Outline {
	var o Outline
	const points = 5
	for i := range points * 2 {
		r0, r1 := 0.48, 0.2
		if i%2 == 1 {
			r0, r1 = r1, r0
		}
		step := 180.0 / points
		x0, y0 := polar(r0, float64(i)*step-90)
		x1, y1 := polar(r1, float64(i+1)*step-90)
		o.Segments = append(o.Segments, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Width: 0.06})
	}
	return o
}
