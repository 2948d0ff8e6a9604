package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Cylinder is a radius-1 cylinder around the object-space y axis, optionally
// truncated to Minimum < y < Maximum and capped at both ends
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates an infinite open cylinder
func NewCylinder() Cylinder {
	return Cylinder{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder spanning min < y < max
func NewTruncatedCylinder(min, max float64, closed bool) Cylinder {
	return Cylinder{Minimum: min, Maximum: max, Closed: closed}
}

// LocalIntersect returns the crossings with the side wall and, when closed, the caps
func (c Cylinder) LocalIntersect(ray core.Ray) []float64 {
	var xs []float64
	o, d := ray.Origin, ray.Direction

	// Quadratic in x and z only: at² + bt + cc = 0
	a := d.X*d.X + d.Z*d.Z
	if !core.Parallel(a, d.LengthSquared()) {
		b := 2 * (o.X*d.X + o.Z*d.Z)
		cc := o.X*o.X + o.Z*o.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		for _, t := range []float64{t0, t1} {
			y := o.Y + t*d.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, t)
			}
		}
	}

	xs = c.intersectCaps(ray, xs)
	sort.Float64s(xs)
	return xs
}

func (c Cylinder) intersectCaps(ray core.Ray, xs []float64) []float64 {
	if !c.Closed || core.Parallel(ray.Direction.Y, ray.Direction.Length()) {
		return xs
	}
	for _, y := range []float64{c.Minimum, c.Maximum} {
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if withinCap(ray, t, 1) {
			xs = append(xs, t)
		}
	}
	return xs
}

// withinCap reports whether the ray at t lies inside a disk of the given radius
// around the y axis
func withinCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

// LocalNormalAt returns the cap normal near an end and the radial normal elsewhere
func (c Cylinder) LocalNormalAt(point core.Vec3) core.Vec3 {
	dist := point.X*point.X + point.Z*point.Z
	if dist < 1 && point.Y >= c.Maximum-HitEpsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+HitEpsilon {
		return core.NewVec3(0, -1, 0)
	}
	return core.NewVec3(point.X, 0, point.Z)
}

// LocalBounds spans the radius in x and z and the truncation range in y
func (c Cylinder) LocalBounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, c.Minimum, -1), core.NewVec3(1, c.Maximum, 1))
}
