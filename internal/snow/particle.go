// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import (
	"math"
	"math/rand/v2"
	"sync"
)

const (
	// MinSize is the smallest particle edge before scaling.
	MinSize = 5.0

	minSpeed = 1.0
	maxSpeed = 2.5

	// baseRate is the update rate the velocities were tuned for. Every delta
	// is expressed in frames of this rate.
	baseRate = 60.0
)

// Bounds is the size of the container the particles fall through.
type Bounds struct {
	Width, Height float64
}

// Valid reports whether both dimensions are finite and positive.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0 && !math.IsInf(b.Width, 0) && !math.IsInf(b.Height, 0)
}

// HandleFunc attaches an opaque rendering resource to a particle of the given
// size. The animator stores the result and never inspects it.
type HandleFunc func(profile ShapeProfile, size float64) any

// Particle is one falling shape. Height equals Size; VerticalOffset is only
// a drawing hint.
type Particle struct {
	Handle         any
	Top            float64
	Left           float64
	Size           float64
	VerticalOffset float64
	Velocity       float64
	RotationSpeed  float64
	Angle          float64
}

// Height returns the vertical extent used for respawn placement.
func (p *Particle) Height() float64 { return p.Size }

// Width returns the horizontal extent used for respawn placement.
func (p *Particle) Width() float64 { return p.Size }

// ParticleSet is a fixed-size batch of particles sharing one profile. All
// methods are safe for concurrent use; Tick and Reconfigure never interleave.
type ParticleSet struct {
	mu        sync.Mutex
	profile   ShapeProfile
	count     int
	scale     float64
	bounds    Bounds
	rng       *rand.Rand
	handle    HandleFunc
	particles []Particle
}

// Option customizes a ParticleSet.
type Option func(*ParticleSet)

// WithHandles makes the set call fn for every particle it creates.
func WithHandles(fn HandleFunc) Option {
	return func(s *ParticleSet) { s.handle = fn }
}

// Initialize creates count particles for profile, placed just above the
// container described by bounds. A nil rng falls back to a randomly seeded
// generator.
func Initialize(profile ShapeProfile, count int, scale float64, bounds Bounds, rng *rand.Rand, opts ...Option) *ParticleSet {
	if count < 0 {
		count = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &ParticleSet{
		count:  count,
		bounds: bounds,
		rng:    rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.populate(profile, scale)
	return s
}

// Reconfigure discards every particle and regenerates a full batch with the
// new profile and scale.
func (s *ParticleSet) Reconfigure(profile ShapeProfile, scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.populate(profile, scale)
}

// Tick advances every particle by dt seconds inside bounds. Invalid bounds or
// a non-positive delta leave the set untouched.
func (s *ParticleSet) Tick(dt float64, bounds Bounds) {
	if !bounds.Valid() || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	step := dt * baseRate

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bounds = bounds
	for i := range s.particles {
		p := &s.particles[i]

		top := p.Top + p.Velocity*step
		if top > bounds.Height {
			p.Top = -p.Height()
			p.Left = s.uniform(0, bounds.Width-p.Width())
		} else {
			p.Top = top
		}

		p.Angle = wrapAngle(p.Angle + p.RotationSpeed*step)
	}
}

// Range calls fn with a copy of every particle in order. fn must not call
// back into the set.
func (s *ParticleSet) Range(fn func(i int, p Particle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.particles {
		fn(i, p)
	}
}

// Particles returns a copy of the current particles.
func (s *ParticleSet) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Len returns the number of live particles.
func (s *ParticleSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.particles)
}

// Profile returns the profile the current batch was generated from.
func (s *ParticleSet) Profile() ShapeProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Scale returns the scale factor of the current batch.
func (s *ParticleSet) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// populate must be called with mu held, or before the set is shared.
func (s *ParticleSet) populate(profile ShapeProfile, scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	maxScale := profile.MaxScale
	if !(maxScale >= MinSize) {
		maxScale = MinSize
	}
	slow := math.Sqrt(scale)

	s.profile = profile
	s.scale = scale
	if cap(s.particles) < s.count {
		s.particles = make([]Particle, 0, s.count)
	}
	s.particles = s.particles[:0]

	for range s.count {
		size := s.uniform(MinSize, maxScale) * scale
		p := Particle{
			Size:           size,
			VerticalOffset: size / maxScale * profile.Offset,
			Left:           s.uniform(0, s.bounds.Width-size),
			Top:            -size,
			Velocity:       s.uniform(minSpeed, maxSpeed) / slow,
			RotationSpeed:  s.uniform(minSpeed, maxSpeed) / slow,
		}
		if s.handle != nil {
			p.Handle = s.handle(profile, size)
		}
		s.particles = append(s.particles, p)
	}
}

// uniform draws from [lo, hi). An empty or inverted range yields lo.
func (s *ParticleSet) uniform(lo, hi float64) float64 {
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		return 0
	}
	if !(hi > lo) || math.IsInf(hi, 0) {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

func wrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
