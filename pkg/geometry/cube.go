package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Cube is the axis-aligned box from (-1,-1,-1) to (1,1,1) in object space
type Cube struct{}

// NewCube creates a unit cube
func NewCube() Cube {
	return Cube{}
}

// LocalIntersect clips the ray against the three slabs of the cube
func (Cube) LocalIntersect(ray core.Ray) []float64 {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	length := ray.Direction.Length()
	for axis := 0; axis < 3; axis++ {
		t0, t1 := slab(ray.Origin.Component(axis), ray.Direction.Component(axis), length, -1, 1)
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return nil
		}
	}
	return []float64{tMin, tMax}
}

// slab returns the entry and exit parameters of the ray along one axis
func slab(origin, direction, length, min, max float64) (float64, float64) {
	if core.Parallel(direction, length) {
		// Parallel: either always inside the slab or never
		if origin < min || origin > max {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	t0 := (min - origin) / direction
	t1 := (max - origin) / direction
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1
}

// LocalNormalAt picks the face whose axis has the largest coordinate magnitude
func (Cube) LocalNormalAt(point core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.NewVec3(point.X, 0, 0)
	case ay:
		return core.NewVec3(0, point.Y, 0)
	default:
		return core.NewVec3(0, 0, point.Z)
	}
}

// LocalBounds is the cube itself
func (Cube) LocalBounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}
