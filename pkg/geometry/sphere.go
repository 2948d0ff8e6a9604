package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Sphere is the unit sphere centered at the object-space origin.
// Position and size come from the shape's transform.
type Sphere struct{}

// NewSphere creates a unit sphere
func NewSphere() Sphere {
	return Sphere{}
}

// LocalIntersect solves |o + td|² = 1 for t
func (Sphere) LocalIntersect(ray core.Ray) []float64 {
	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil
	}
	halfB := ray.Origin.Dot(ray.Direction)
	c := ray.Origin.Dot(ray.Origin) - 1

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}

	// A tangent ray yields two equal roots
	sqrtD := math.Sqrt(discriminant)
	return []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a}
}

// LocalNormalAt points from the center to the surface point
func (Sphere) LocalNormalAt(point core.Vec3) core.Vec3 {
	return point
}

// LocalBounds returns the cube enclosing the unit sphere
func (Sphere) LocalBounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}
