package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestCone_LocalIntersect(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected []float64
	}{
		{"Through the apex", ray(0, 0, -5, 0, 0, 1), []float64{5, 5}},
		{"Diagonal through the apex", ray(0, 0, -5, 1, 1, 1), []float64{8.66025, 8.66025}},
		{"Both nappes", ray(1, 1, -5, -0.5, -1, 1), []float64{4.55006, 49.44994}},
		{"Parallel to one nappe", ray(0, 0, -1, 0, 1, 1), []float64{0.35355}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.ray.Origin, tt.ray.Direction.Normalize())
			assertTs(t, tt.expected, NewCone().LocalIntersect(r))
		})
	}
}

func TestCone_Caps(t *testing.T) {
	c := NewTruncatedCone(-0.5, 0.5, true)

	tests := []struct {
		name  string
		ray   core.Ray
		count int
	}{
		{"Parallel to the axis outside", ray(0, 0, -5, 0, 1, 0), 0},
		{"Cap and body", ray(0, 0, -0.25, 0, 1, 1), 2},
		{"Both caps and both nappes", ray(0, 0, -0.25, 0, 1, 0), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(tt.ray.Origin, tt.ray.Direction.Normalize())
			assert.Len(t, c.LocalIntersect(r), tt.count)
		})
	}
}

func TestCone_LocalNormalAt(t *testing.T) {
	c := NewCone()
	assertVec(t, core.NewVec3(0, 0, 0), c.LocalNormalAt(core.NewVec3(0, 0, 0)))
	assertVec(t, core.NewVec3(1, -math.Sqrt2, 1), c.LocalNormalAt(core.NewVec3(1, 1, 1)))
	assertVec(t, core.NewVec3(-1, 1, 0), c.LocalNormalAt(core.NewVec3(-1, -1, 0)))

	capped := NewTruncatedCone(-1, 2, true)
	assertVec(t, core.NewVec3(0, 1, 0), capped.LocalNormalAt(core.NewVec3(0.5, 2, 0)))
	assertVec(t, core.NewVec3(0, -1, 0), capped.LocalNormalAt(core.NewVec3(0, -1, 0.5)))
}

func TestCone_Bounds(t *testing.T) {
	b := NewTruncatedCone(-5, 3, false).LocalBounds()
	assert.Equal(t, core.NewVec3(-5, -5, -5), b.Min)
	assert.Equal(t, core.NewVec3(5, 3, 5), b.Max)

	inf := NewCone().LocalBounds()
	assert.True(t, math.IsInf(inf.Min.X, -1))
	assert.True(t, math.IsInf(inf.Max.Y, 1))
}
