// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package overlay

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kamaranl/snowflake/internal/snow"
)

var snowWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type spriteKey struct {
	shape snow.Shape
	edge  int
}

// spriteCache rasterizes each (shape, pixel size) once. Particles share the
// images as their handles, so regenerating the field allocates nothing new
// after the first few profile switches.
type spriteCache struct {
	images map[spriteKey]*ebiten.Image
}

func newSpriteCache() *spriteCache {
	return &spriteCache{images: map[spriteKey]*ebiten.Image{}}
}

// handle satisfies snow.HandleFunc.
func (c *spriteCache) handle(profile snow.ShapeProfile, size float64) any {
	edge := max(int(math.Ceil(size)), 1)
	key := spriteKey{shape: profile.Shape, edge: edge}
	if img, ok := c.images[key]; ok {
		return img
	}

	img := ebiten.NewImage(edge, edge)
	drawOutline(img, snow.OutlineOf(profile.Shape), float32(edge))
	c.images[key] = img
	return img
}

func drawOutline(dst *ebiten.Image, o snow.Outline, s float32) {
	for _, seg := range o.Segments {
		w := max(float32(seg.Width)*s, 1)
		vector.StrokeLine(dst,
			float32(seg.X0)*s, float32(seg.Y0)*s,
			float32(seg.X1)*s, float32(seg.Y1)*s,
			w, snowWhite, true)
	}
	for _, d := range o.Dots {
		vector.DrawFilledCircle(dst, float32(d.X)*s, float32(d.Y)*s, float32(d.R)*s, snowWhite, true)
	}
}
