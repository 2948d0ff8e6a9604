package geometry

import (
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func assertVec(t *testing.T, expected, actual core.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tolerance, msgAndArgs...)
	assert.InDelta(t, expected.Y, actual.Y, tolerance, msgAndArgs...)
	assert.InDelta(t, expected.Z, actual.Z, tolerance, msgAndArgs...)
}

func assertTs(t *testing.T, expected, actual []float64) {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return
	}
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], tolerance, "t[%d]", i)
	}
}

func tsOf(xs []Intersection) []float64 {
	ts := make([]float64, len(xs))
	for i, x := range xs {
		ts[i] = x.T
	}
	return ts
}

func ray(ox, oy, oz, dx, dy, dz float64) core.Ray {
	return core.NewRay(core.NewVec3(ox, oy, oz), core.NewVec3(dx, dy, dz))
}
