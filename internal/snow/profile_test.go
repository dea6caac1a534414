// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package snow

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesAreIndexed(t *testing.T) {
	for i, p := range Profiles {
		assert.Equal(t, i, p.Index, p.Name)
		assert.GreaterOrEqual(t, p.MaxScale, MinSize, p.Name)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		want   string
		wantOK bool
	}{
		{"first", 0, "Dot", true},
		{"last", len(Profiles) - 1, "Star", true},
		{"negative", -1, "Dot", false},
		{"past end", len(Profiles), "Dot", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := Lookup(tc.index)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, p.Name)
		})
	}
}

func TestLookupName(t *testing.T) {
	p, ok := LookupName("Crystal")
	require.True(t, ok)
	assert.Equal(t, ShapeCrystal, p.Shape)

	p, ok = LookupName("flake")
	require.True(t, ok)
	assert.Equal(t, "Snowflake", p.Name)

	_, ok = LookupName("hail")
	assert.False(t, ok)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "star", ShapeStar.String())
	assert.Equal(t, "shape(42)", Shape(42).String())
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name           string
		device, height float64
		want           float64
	}{
		{"1080p at 100%", 1, 1080, 1},
		{"4k at 200%", 2, 1080, 2},
		{"4k at 100%", 1, 2160, 2},
		{"1440p at 100%", 1, 1440, 1440.0 / 1080},
		{"720p at 100%", 1, 720, 720.0 / 1080},
		{"unknown device scale", 0, 1080, 1},
		{"unknown height", 1.5, 0, 1.5},
		{"nan everywhere", math.NaN(), math.NaN(), 1},
		{"clamped low", 0.1, 100, 0.25},
		{"clamped high", 4, 10000, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScaleFactor(tc.device, tc.height), 1e-12)
		})
	}
}

func TestDeviceScale(t *testing.T) {
	assert.Equal(t, 1.0, DeviceScale(96))
	assert.Equal(t, 1.5, DeviceScale(144))
	assert.Equal(t, 1.0, DeviceScale(0))
	assert.Equal(t, 1.0, DeviceScale(math.Inf(1)))
}

func TestParseClockMode(t *testing.T) {
	m, err := ParseClockMode("")
	require.NoError(t, err)
	assert.Equal(t, ClockWall, m)

	m, err = ParseClockMode("fixed")
	require.NoError(t, err)
	assert.Equal(t, ClockFixed, m)

	_, err = ParseClockMode("sundial")
	assert.Error(t, err)
}

func TestWallClock(t *testing.T) {
	base := time.Date(2025, 12, 24, 20, 0, 0, 0, time.UTC)
	now := base
	c := NewClock(ClockWall, 0)
	c.now = func() time.Time { return now }

	assert.Equal(t, 0.0, c.Delta())

	now = now.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, c.Delta(), 1e-12)

	now = now.Add(50 * time.Millisecond)
	assert.InDelta(t, 0.05, c.Delta(), 1e-12)

	now = now.Add(-time.Second)
	assert.Equal(t, 0.0, c.Delta())

	now = now.Add(5 * time.Second)
	assert.Equal(t, MaxDelta, c.Delta())

	c.Reset()
	now = now.Add(10 * time.Second)
	assert.Equal(t, 0.0, c.Delta())
	assert.Equal(t, time.Duration(0), c.Interval())
}

func TestFixedClock(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     float64
	}{
		{20 * time.Millisecond, 0.02},
		{500 * time.Millisecond, 0.5},
		{time.Second, 1},
	}

	for _, tc := range tests {
		t.Run(tc.interval.String(), func(t *testing.T) {
			c := NewClock(ClockFixed, tc.interval)
			assert.Equal(t, 0.0, c.Delta())
			for range 3 {
				assert.InDelta(t, tc.want, c.Delta(), 1e-12)
			}
			assert.Equal(t, ClockFixed, c.Mode())
			assert.Equal(t, tc.interval, c.Interval())
		})
	}
}

func TestOutlinesFitUnitSquare(t *testing.T) {
	for _, p := range Profiles {
		t.Run(p.Name, func(t *testing.T) {
			o := OutlineOf(p.Shape)
			require.NotZero(t, len(o.Segments)+len(o.Dots))

			for _, s := range o.Segments {
				for _, v := range []float64{s.X0, s.Y0, s.X1, s.Y1} {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 1.0)
				}
				assert.Greater(t, s.Width, 0.0)
			}
			for _, d := range o.Dots {
				assert.LessOrEqual(t, d.X+d.R, 1.0+1e-12)
				assert.GreaterOrEqual(t, d.X-d.R, -1e-12)
			}
		})
	}
}

func TestUnknownShapeDrawsDot(t *testing.T) {
	o := OutlineOf(Shape(99))
	assert.Empty(t, o.Segments)
	assert.Len(t, o.Dots, 1)
}
