package geometry

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// Primitive is a concrete shape kind working purely in its own object space.
//
// The graph moves rays and points in and out of object space; a Primitive never
// sees world coordinates. LocalIntersect returns every parameter t where the ray
// crosses the surface, including negative ones, in any order.
type Primitive interface {
	LocalIntersect(ray core.Ray) []float64
	LocalNormalAt(point core.Vec3) core.Vec3
	LocalBounds() core.AABB
}

// primitiveEqualer lets a Primitive with non-comparable state define its own equality
type primitiveEqualer interface {
	Equal(other Primitive) bool
}
