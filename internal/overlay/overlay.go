// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package overlay hosts the particle field in a borderless, transparent,
// click-through window that floats above every other window and spans the
// whole desktop. It is an ebiten game: Layout reports the container size,
// Update advances the field once per frame and Draw pushes the particle
// transforms to the screen.
package overlay

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamaranl/snowflake/internal/snow"
	"github.com/sirupsen/logrus"
)

// Options configures an Overlay.
type Options struct {
	Title    string
	Count    int
	Profile  snow.ShapeProfile
	Clock    snow.ClockMode
	Interval time.Duration
	Opacity  float64
	// Seed fixes the particle layout; zero picks a random one.
	Seed uint64
}

// Overlay is the snow window. Create it with New and start it with Run on
// the main goroutine; every other method may be called from anywhere.
type Overlay struct {
	opts    Options
	log     logrus.FieldLogger
	ctl     snow.Control
	clock   *snow.Clock
	sprites *spriteCache

	// Owned by the game goroutine.
	set    *snow.ParticleSet
	bounds snow.Bounds
	scale  float64
	op     ebiten.DrawImageOptions
}

// New prepares an overlay. Nothing is created until Run.
func New(opts Options, log logrus.FieldLogger) *Overlay {
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = 1
	}
	return &Overlay{
		opts:    opts,
		log:     log,
		clock:   snow.NewClock(opts.Clock, opts.Interval),
		sprites: newSpriteCache(),
	}
}

// SetProfile regenerates the field with p before the next frame.
func (o *Overlay) SetProfile(p snow.ShapeProfile) {
	o.ctl.Request(p)
}

// TogglePause freezes or resumes the snowfall and returns true when paused.
func (o *Overlay) TogglePause() bool {
	return o.ctl.TogglePause()
}

// Paused reports whether the snowfall is frozen.
func (o *Overlay) Paused() bool {
	return o.ctl.Paused()
}

// Stop closes the window at the next frame; Run then returns.
func (o *Overlay) Stop() {
	o.ctl.Stop()
}

// Run configures the window and blocks until Stop is called or the window is
// closed.
func (o *Overlay) Run() error {
	x, y, w, h := desktopBounds()
	o.log.Debugf("Covering desktop at (%d,%d) %dx%d", x, y, w, h)

	ebiten.SetWindowTitle(o.opts.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(x, y)

	if o.clock.Mode() == snow.ClockFixed && o.clock.Interval() > 0 {
		tps := int(math.Round(float64(time.Second) / float64(o.clock.Interval())))
		ebiten.SetTPS(max(tps, 1))
		o.log.Debugf("Fixed clock at %d updates per second", tps)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	err := ebiten.RunGameWithOptions(o, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update applies pending requests and advances the field by the time elapsed
// since the previous frame.
func (o *Overlay) Update() error {
	if o.ctl.Stopped() {
		return ebiten.Termination
	}
	if o.set == nil {
		if !o.bounds.Valid() {
			return nil
		}
		o.start()
	}

	if p, ok := o.ctl.Take(); ok {
		o.set.Reconfigure(p, o.scale)
		o.log.Infof("Shape changed to %s", p.Name)
	}

	if o.ctl.Paused() {
		o.clock.Reset()
		return nil
	}

	o.set.Tick(o.clock.Delta(), o.bounds)
	return nil
}

// start creates the field once the window exists and its monitor is known.
func (o *Overlay) start() {
	m := ebiten.Monitor()
	_, mh := m.Size()
	o.scale = snow.ScaleFactor(m.DeviceScaleFactor(), float64(mh))

	var rng *rand.Rand
	if o.opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(o.opts.Seed, o.opts.Seed))
	}

	o.set = snow.Initialize(o.opts.Profile, o.opts.Count, o.scale, o.bounds, rng, snow.WithHandles(o.sprites.handle))
	o.log.WithFields(logrus.Fields{
		"count":  o.opts.Count,
		"shape":  o.opts.Profile.Name,
		"scale":  o.scale,
		"width":  o.bounds.Width,
		"height": o.bounds.Height,
	}).Info("Snowfall started")
}

// Draw renders every particle sprite rotated around its center.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.set == nil {
		return
	}

	o.op.ColorScale.Reset()
	o.op.ColorScale.ScaleAlpha(float32(o.opts.Opacity))
	o.op.Filter = ebiten.FilterLinear

	o.set.Range(func(_ int, p snow.Particle) {
		img, ok := p.Handle.(*ebiten.Image)
		if !ok {
			return
		}
		w := float64(img.Bounds().Dx())
		if w == 0 {
			return
		}
		half := p.Size / 2

		o.op.GeoM.Reset()
		o.op.GeoM.Scale(p.Size/w, p.Size/w)
		o.op.GeoM.Translate(-half, -half)
		o.op.GeoM.Rotate(p.Angle * math.Pi / 180)
		o.op.GeoM.Translate(p.Left+half, p.Top+p.VerticalOffset+half)
		screen.DrawImage(img, &o.op)
	})
}

// Layout reports the container in device pixels so particle sizes map to
// physical pixels on high-DPI displays.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := ebiten.Monitor().DeviceScaleFactor()
	if !(s > 0) {
		s = 1
	}
	w := int(math.Ceil(float64(outsideWidth) * s))
	h := int(math.Ceil(float64(outsideHeight) * s))
	o.bounds = snow.Bounds{Width: float64(w), Height: float64(h)}
	return max(w, 1), max(h, 1)
}
