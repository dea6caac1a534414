// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package icon draws the tray icon from the same snowflake outline the overlay
// animates, so no binary assets ship with the application.
package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/kamaranl/snowflake/internal/snow"
	"golang.org/x/image/vector"
)

// Size is the edge length of the tray icon in pixels.
const Size = 32

var (
	// Light is used on dark taskbars.
	Light = color.RGBA{R: 0xf5, G: 0xf8, B: 0xff, A: 0xff}
	// Slate is used on light taskbars.
	Slate = color.RGBA{R: 0x2f, G: 0x3b, B: 0x4c, A: 0xff}
)

// Render draws a flake of size×size pixels, light on dark themes and slate on
// light ones.
func Render(size int, dark bool) *image.RGBA {
	c := Slate
	if dark {
		c = Light
	}
	return Draw(snow.OutlineOf(snow.ShapeFlake), size, c)
}

// Draw rasterizes o into a transparent size×size image.
func Draw(o snow.Outline, size int, c color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return dst
	}

	s := float32(size)
	z := vector.NewRasterizer(size, size)
	for _, seg := range o.Segments {
		strokeSegment(z, seg, s)
	}
	for _, d := range o.Dots {
		fillDot(z, d, s)
	}

	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}

func strokeSegment(z *vector.Rasterizer, seg snow.Segment, s float32) {
	x0, y0 := float32(seg.X0)*s, float32(seg.Y0)*s
	x1, y1 := float32(seg.X1)*s, float32(seg.Y1)*s
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	w := float32(math.Max(seg.Width*float64(s), 1)) / 2
	nx, ny := -dy/l*w, dx/l*w

	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func fillDot(z *vector.Rasterizer, d snow.Dot, s float32) {
	const steps = 24
	cx, cy, r := d.X*float64(s), d.Y*float64(s), d.R*float64(s)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / steps
		x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// PNG encodes img.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ICO wraps img in a single-image ICO container holding a PNG payload, which
// Windows Vista and later accept for tray icons.
func ICO(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dx() > 256 || b.Dy() <= 0 || b.Dy() > 256 {
		return nil, fmt.Errorf("icon size %dx%d out of range 1-256", b.Dx(), b.Dy())
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	payload, err := PNG(rgba)
	if err != nil {
		return nil, err
	}

	const headerLen = 6 + 16
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	// ICONDIR: reserved, type 1 (icon), one entry.
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY: 256 is stored as 0.
	buf.WriteByte(byte(b.Dx() % 256))
	buf.WriteByte(byte(b.Dy() % 256))
	buf.WriteByte(0) // palette size
	buf.WriteByte(0) // reserved
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // color planes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerLen))
	buf.Write(payload)

	return buf.Bytes(), nil
}

// Tray returns the tray icon bytes in the format the platform's tray expects.
func Tray(dark bool) ([]byte, error) {
	return encodeTray(Render(Size, dark))
}
