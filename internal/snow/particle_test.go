// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var fullHD = Bounds{Width: 1920, Height: 1080}

func TestInitializeRanges(t *testing.T) {
	tests := []struct {
		name    string
		profile ShapeProfile
		scale   float64
	}{
		{"dot at 1x", Profiles[0], 1},
		{"flake at 1.5x", Profiles[1], 1.5},
		{"crystal at 2x", Profiles[2], 2},
		{"star at 0.75x", Profiles[3], 0.75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Initialize(tc.profile, 100, tc.scale, fullHD, seeded(7))
			require.Equal(t, 100, s.Len())

			slow := math.Sqrt(tc.scale)
			for _, p := range s.Particles() {
				assert.GreaterOrEqual(t, p.Size, MinSize*tc.scale)
				assert.LessOrEqual(t, p.Size, tc.profile.MaxScale*tc.scale)
				assert.GreaterOrEqual(t, p.Left, 0.0)
				assert.LessOrEqual(t, p.Left, fullHD.Width-p.Size)
				assert.Equal(t, -p.Size, p.Top)
				assert.Equal(t, 0.0, p.Angle)
				assert.InDelta(t, p.Size/tc.profile.MaxScale*tc.profile.Offset, p.VerticalOffset, 1e-12)
				assert.GreaterOrEqual(t, p.Velocity, minSpeed/slow)
				assert.LessOrEqual(t, p.Velocity, maxSpeed/slow)
				assert.GreaterOrEqual(t, p.RotationSpeed, minSpeed/slow)
				assert.LessOrEqual(t, p.RotationSpeed, maxSpeed/slow)
			}
		})
	}
}

func TestFirstTickScenario(t *testing.T) {
	profile := ShapeProfile{Name: "plain", MaxScale: 20, Offset: 0}
	s := Initialize(profile, 5, 1.0, fullHD, seeded(42))
	require.Equal(t, 5, s.Len())

	before := s.Particles()
	for _, p := range before {
		require.Equal(t, -p.Size, p.Top)
	}

	s.Tick(1.0/60, fullHD)

	after := s.Particles()
	require.Len(t, after, 5)
	for i, p := range after {
		assert.InDelta(t, -before[i].Size+before[i].Velocity, p.Top, 1e-9)
		assert.Equal(t, before[i].Left, p.Left)
		assert.InDelta(t, before[i].RotationSpeed, p.Angle, 1e-9)
	}
}

func TestTickRespawnsPastBottom(t *testing.T) {
	s := Initialize(Profiles[1], 10, 1, fullHD, seeded(3))
	for i := range s.particles {
		s.particles[i].Top = fullHD.Height - 0.5
	}

	s.Tick(1.0/60, fullHD)

	for _, p := range s.Particles() {
		assert.Equal(t, -p.Height(), p.Top, "top must reset exactly, not keep the overshoot")
		assert.GreaterOrEqual(t, p.Left, 0.0)
		assert.LessOrEqual(t, p.Left, fullHD.Width-p.Width())
	}
}

func TestTickKeepsParticleAboveBottom(t *testing.T) {
	s := Initialize(Profiles[0], 1, 1, fullHD, seeded(11))
	p := &s.particles[0]
	p.Top = fullHD.Height - p.Velocity - 0.5

	s.Tick(1.0/60, fullHD)

	assert.InDelta(t, fullHD.Height-0.5, s.Particles()[0].Top, 1e-9)
}

func TestRotationStaysInRange(t *testing.T) {
	s := Initialize(Profiles[2], 3, 1, fullHD, seeded(5))
	for i := range s.particles {
		s.particles[i].RotationSpeed = 7.3
	}

	for range 10000 {
		s.Tick(1.0/60, fullHD)
		for _, p := range s.Particles() {
			require.GreaterOrEqual(t, p.Angle, 0.0)
			require.Less(t, p.Angle, 360.0)
		}
	}
}

func TestTopStaysWithinContainer(t *testing.T) {
	profile := Profiles[2]
	s := Initialize(profile, 50, 1, fullHD, seeded(9))
	maxSize := profile.MaxScale

	for range 5000 {
		s.Tick(1.0/30, fullHD)
		for _, p := range s.Particles() {
			require.GreaterOrEqual(t, p.Top, -maxSize)
			require.LessOrEqual(t, p.Top, fullHD.Height)
		}
	}
}

func TestTickIgnoresUnusableInput(t *testing.T) {
	tests := []struct {
		name   string
		dt     float64
		bounds Bounds
	}{
		{"zero height", 1.0 / 60, Bounds{Width: 1920, Height: 0}},
		{"zero width", 1.0 / 60, Bounds{Width: 0, Height: 1080}},
		{"negative size", 1.0 / 60, Bounds{Width: -5, Height: -5}},
		{"nan height", 1.0 / 60, Bounds{Width: 1920, Height: math.NaN()}},
		{"infinite width", 1.0 / 60, Bounds{Width: math.Inf(1), Height: 1080}},
		{"zero delta", 0, fullHD},
		{"negative delta", -1, fullHD},
		{"nan delta", math.NaN(), fullHD},
		{"infinite delta", math.Inf(1), fullHD},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Initialize(Profiles[1], 8, 1, fullHD, seeded(1))
			before := s.Particles()

			require.NotPanics(t, func() { s.Tick(tc.dt, tc.bounds) })

			after := s.Particles()
			assert.Equal(t, before, after)
			for _, p := range after {
				assert.False(t, math.IsNaN(p.Top))
				assert.False(t, math.IsNaN(p.Left))
				assert.False(t, math.IsNaN(p.Angle))
			}
		})
	}
}

func TestTickAppliesLargeDeltaInFull(t *testing.T) {
	tall := Bounds{Width: 1920, Height: 100000}
	s := Initialize(Profiles[0], 1, 1, tall, seeded(2))
	p := s.Particles()[0]

	s.Tick(30, tall)

	assert.InDelta(t, p.Top+p.Velocity*30*baseRate, s.Particles()[0].Top, 1e-9)
}

func TestTickWithSlowFixedClock(t *testing.T) {
	tall := Bounds{Width: 1920, Height: 100000}
	s := Initialize(Profiles[1], 1, 1, tall, seeded(3))
	p := s.Particles()[0]

	c := NewClock(ClockFixed, 500*time.Millisecond)
	s.Tick(c.Delta(), tall)
	require.Equal(t, p.Top, s.Particles()[0].Top)

	s.Tick(c.Delta(), tall)
	s.Tick(c.Delta(), tall)

	assert.InDelta(t, p.Top+p.Velocity*2*0.5*baseRate, s.Particles()[0].Top, 1e-9)
}

func TestTickWithStalledWallClock(t *testing.T) {
	tall := Bounds{Width: 1920, Height: 100000}
	s := Initialize(Profiles[0], 1, 1, tall, seeded(2))
	p := s.Particles()[0]

	now := time.Date(2025, 12, 24, 20, 0, 0, 0, time.UTC)
	c := NewClock(ClockWall, 0)
	c.now = func() time.Time { return now }
	c.Delta()

	now = now.Add(30 * time.Second)
	s.Tick(c.Delta(), tall)

	assert.InDelta(t, p.Top+p.Velocity*MaxDelta*baseRate, s.Particles()[0].Top, 1e-9)
}

func TestInitializeDegenerateInput(t *testing.T) {
	tests := []struct {
		name    string
		profile ShapeProfile
		scale   float64
		bounds  Bounds
	}{
		{"zero max scale", ShapeProfile{MaxScale: 0, Offset: 3}, 1, fullHD},
		{"max below minimum", ShapeProfile{MaxScale: 2, Offset: 3}, 1, fullHD},
		{"nan scale", Profiles[1], math.NaN(), fullHD},
		{"zero scale", Profiles[1], 0, fullHD},
		{"zero container", Profiles[1], 1, Bounds{}},
		{"container narrower than particles", Profiles[2], 4, Bounds{Width: 10, Height: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Initialize(tc.profile, 20, tc.scale, tc.bounds, seeded(4))
			require.Equal(t, 20, s.Len())
			for _, p := range s.Particles() {
				for _, v := range []float64{p.Size, p.Left, p.Top, p.VerticalOffset, p.Velocity, p.RotationSpeed} {
					assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				}
				assert.GreaterOrEqual(t, p.Left, 0.0)
			}
		})
	}
}

func TestInitializeNegativeCount(t *testing.T) {
	s := Initialize(Profiles[0], -3, 1, fullHD, seeded(1))
	assert.Equal(t, 0, s.Len())
	assert.NotPanics(t, func() { s.Tick(1.0/60, fullHD) })
}

func TestReconfigureKeepsCount(t *testing.T) {
	a := Initialize(Profiles[0], 60, 1, fullHD, seeded(99))
	b := Initialize(Profiles[0], 60, 1, fullHD, seeded(99))

	for range 2 {
		a.Reconfigure(Profiles[1], 1.25)
		b.Reconfigure(Profiles[1], 1.25)
		require.Equal(t, 60, a.Len())
		require.Equal(t, 60, b.Len())
	}

	assert.Equal(t, a.Particles(), b.Particles())
	assert.Equal(t, Profiles[1], a.Profile())
	assert.Equal(t, 1.25, a.Scale())
	for _, p := range a.Particles() {
		assert.LessOrEqual(t, p.Size, Profiles[1].MaxScale*1.25)
		assert.Equal(t, -p.Size, p.Top)
	}
}

func TestReconfigureUsesLastSeenWidth(t *testing.T) {
	s := Initialize(Profiles[0], 40, 1, Bounds{}, seeded(8))
	for _, p := range s.Particles() {
		require.Equal(t, 0.0, p.Left)
	}

	narrow := Bounds{Width: 300, Height: 200}
	s.Tick(1.0/60, narrow)
	s.Reconfigure(Profiles[3], 1)

	for _, p := range s.Particles() {
		assert.LessOrEqual(t, p.Left, narrow.Width-p.Size)
	}
}

func TestHandlesAttachedPerParticle(t *testing.T) {
	var calls int
	fn := func(profile ShapeProfile, size float64) any {
		calls++
		return profile.Name
	}

	s := Initialize(Profiles[1], 12, 1, fullHD, seeded(6), WithHandles(fn))
	assert.Equal(t, 12, calls)
	s.Range(func(_ int, p Particle) { assert.Equal(t, "Snowflake", p.Handle) })

	s.Reconfigure(Profiles[3], 1)
	assert.Equal(t, 24, calls)
	s.Range(func(_ int, p Particle) { assert.Equal(t, "Star", p.Handle) })
}

func TestReconfigureDuringTicks(t *testing.T) {
	s := Initialize(Profiles[0], 80, 1, fullHD, seeded(12))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 500 {
			s.Tick(1.0/60, fullHD)
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 50 {
			s.Reconfigure(Profiles[i%len(Profiles)], 1)
		}
	}()
	wg.Wait()

	profile := s.Profile()
	require.Equal(t, 80, s.Len())
	for _, p := range s.Particles() {
		assert.LessOrEqual(t, p.Size, profile.MaxScale)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-30, 330},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, wrapAngle(tc.in), 1e-9, "wrapAngle(%v)", tc.in)
	}
}
