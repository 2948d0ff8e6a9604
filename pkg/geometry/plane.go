package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Plane is the infinite xz plane through the object-space origin
type Plane struct{}

// NewPlane creates an xz plane
func NewPlane() Plane {
	return Plane{}
}

// LocalIntersect finds where the ray crosses y = 0
func (Plane) LocalIntersect(ray core.Ray) []float64 {
	// A ray parallel to the plane, including one lying in it, never crosses it
	if core.Parallel(ray.Direction.Y, ray.Direction.Length()) {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// LocalNormalAt is constant
func (Plane) LocalNormalAt(core.Vec3) core.Vec3 {
	return core.NewVec3(0, 1, 0)
}

// LocalBounds is infinite in x and z and flat in y
func (Plane) LocalBounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.NewVec3(-inf, 0, -inf), core.NewVec3(inf, 0, inf))
}
