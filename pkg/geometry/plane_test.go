package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestPlane_LocalIntersect(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected []float64
	}{
		{"Parallel", ray(0, 10, 0, 0, 0, 1), nil},
		{"Coplanar", ray(0, 0, 0, 0, 0, 1), nil},
		{"From above", ray(0, 1, 0, 0, -1, 0), []float64{1}},
		{"From below", ray(0, -1, 0, 0, 1, 0), []float64{1}},
		{"Behind the origin", ray(0, 2, 0, 0, 1, 0), []float64{-2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTs(t, tt.expected, NewPlane().LocalIntersect(tt.ray))
		})
	}
}

func TestScaledUpPrimitives(t *testing.T) {
	g := NewGraph()
	floor := g.Add(NewPlane())
	g.SetTransform(floor, core.Scaling(1e9, 1e9, 1e9))
	assertTs(t, []float64{5}, tsOf(g.Intersect(floor, ray(0, 5, 0, 0, -1, 0))))

	cube := g.Add(NewCube())
	g.SetTransform(cube, core.Scaling(1e9, 1e9, 1e9))
	xs := g.Intersect(cube, ray(0.5e9, 0, -2e9, 0, 0, 1))
	if assert.Len(t, xs, 2) {
		assert.InEpsilon(t, 1e9, xs[0].T, 1e-9)
		assert.InEpsilon(t, 3e9, xs[1].T, 1e-9)
	}

	cylinder := g.Add(NewTruncatedCylinder(-1, 1, true))
	g.SetTransform(cylinder, core.Scaling(1e9, 1e9, 1e9))
	xs = g.Intersect(cylinder, ray(0, 5e9, 0, 0, -1, 0))
	if assert.Len(t, xs, 2) {
		assert.InEpsilon(t, 4e9, xs[0].T, 1e-9)
		assert.InEpsilon(t, 6e9, xs[1].T, 1e-9)
	}
}

func TestPlane_NormalIsConstant(t *testing.T) {
	p := NewPlane()
	for _, point := range []core.Vec3{{}, core.NewVec3(10, 0, -10), core.NewVec3(-5, 0, 150)} {
		assert.Equal(t, core.NewVec3(0, 1, 0), p.LocalNormalAt(point))
	}
}

func TestPlane_Bounds(t *testing.T) {
	b := NewPlane().LocalBounds()
	assert.True(t, math.IsInf(b.Min.X, -1))
	assert.True(t, math.IsInf(b.Max.Z, 1))
	assert.Equal(t, 0.0, b.Min.Y)
	assert.Equal(t, 0.0, b.Max.Y)
}
