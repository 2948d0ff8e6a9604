package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestCylinder_Misses(t *testing.T) {
	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"On the surface, along y", ray(1, 0, 0, 0, 1, 0)},
		{"Inside, along y", ray(0, 0, 0, 0, 1, 0)},
		{"Skew", ray(0, 0, -5, 1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.ray.Origin, tt.ray.Direction.Normalize())
			assert.Empty(t, NewCylinder().LocalIntersect(r))
		})
	}
}

func TestCylinder_Hits(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected []float64
	}{
		{"Tangent", ray(1, 0, -5, 0, 0, 1), []float64{5, 5}},
		{"Through the axis", ray(0, 0, -5, 0, 0, 1), []float64{4, 6}},
		{"At an angle", ray(0.5, 0, -5, 0.1, 1, 1), []float64{6.80798, 7.08872}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.ray.Origin, tt.ray.Direction.Normalize())
			assertTs(t, tt.expected, NewCylinder().LocalIntersect(r))
		})
	}
}

func TestCylinder_NormalAt(t *testing.T) {
	c := NewCylinder()
	assertVec(t, core.NewVec3(1, 0, 0), c.LocalNormalAt(core.NewVec3(1, 0, 0)))
	assertVec(t, core.NewVec3(0, 0, -1), c.LocalNormalAt(core.NewVec3(0, 5, -1)))
	assertVec(t, core.NewVec3(0, 0, 1), c.LocalNormalAt(core.NewVec3(0, -2, 1)))
	assertVec(t, core.NewVec3(-1, 0, 0), c.LocalNormalAt(core.NewVec3(-1, 1, 0)))
}

func TestCylinder_DefaultsAreInfinite(t *testing.T) {
	c := NewCylinder()
	assert.True(t, math.IsInf(c.Minimum, -1))
	assert.True(t, math.IsInf(c.Maximum, 1))
	assert.False(t, c.Closed)
}

func TestCylinder_Truncated(t *testing.T) {
	c := NewTruncatedCylinder(1, 2, false)

	tests := []struct {
		name  string
		ray   core.Ray
		count int
	}{
		{"Escapes through the open top", ray(0, 1.5, 0, 0.1, 1, 0), 0},
		{"Above", ray(0, 3, -5, 0, 0, 1), 0},
		{"Below", ray(0, 0, -5, 0, 0, 1), 0},
		{"At the maximum", ray(0, 2, -5, 0, 0, 1), 0},
		{"At the minimum", ray(0, 1, -5, 0, 0, 1), 0},
		{"Through the middle", ray(0, 1.5, -2, 0, 0, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.ray.Origin, tt.ray.Direction.Normalize())
			assert.Len(t, c.LocalIntersect(r), tt.count)
		})
	}
}

func TestCylinder_Caps(t *testing.T) {
	c := NewTruncatedCylinder(1, 2, true)

	// Directions are left unnormalized so the cap edges are hit exactly
	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"Straight down the axis", ray(0, 3, 0, 0, -1, 0)},
		{"Top cap and side", ray(0, 3, -2, 0, -1, 2)},
		{"Through the top corner", ray(0, 4, -2, 0, -1, 1)},
		{"Bottom cap and side", ray(0, 0, -2, 0, 1, 2)},
		{"Through the bottom corner", ray(0, -1, -2, 0, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, c.LocalIntersect(tt.ray), 2)
		})
	}
}

func TestCylinder_CapNormals(t *testing.T) {
	c := NewTruncatedCylinder(1, 2, true)

	tests := []struct {
		point, normal core.Vec3
	}{
		{core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)},
		{core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0)},
		{core.NewVec3(0, 1, 0.5), core.NewVec3(0, -1, 0)},
		{core.NewVec3(0, 2, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0.5, 2, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 2, 0.5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		assertVec(t, tt.normal, c.LocalNormalAt(tt.point), "point %v", tt.point)
	}
}

func TestCylinder_Bounds(t *testing.T) {
	b := NewTruncatedCylinder(-5, 3, false).LocalBounds()
	assert.Equal(t, core.NewVec3(-1, -5, -1), b.Min)
	assert.Equal(t, core.NewVec3(1, 3, 1), b.Max)
}
