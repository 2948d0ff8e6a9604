package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-raytracer-core/pkg/core"
)

const grazingEpsilon = 1e-9

// Cone is the double-napped cone x² + z² = y² around the object-space y axis,
// optionally truncated to Minimum < y < Maximum and capped at both ends
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates an infinite open double cone
func NewCone() Cone {
	return Cone{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCone creates a cone spanning min < y < max
func NewTruncatedCone(min, max float64, closed bool) Cone {
	return Cone{Minimum: min, Maximum: max, Closed: closed}
}

// LocalIntersect returns the crossings with the cone body and, when closed, the caps
func (c Cone) LocalIntersect(ray core.Ray) []float64 {
	var xs []float64
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2 * (o.X*d.X - o.Y*d.Y + o.Z*d.Z)
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	if core.Parallel(a, d.LengthSquared()) {
		// Ray parallel to one of the nappes crosses the other at most once
		if !core.Parallel(b, d.Length()) {
			xs = c.appendInRange(ray, xs, -cc/(2*b))
		}
	} else {
		discriminant := b*b - 4*a*cc
		if discriminant < 0 && discriminant > -grazingEpsilon {
			// Rays through the apex land here through rounding alone
			discriminant = 0
		}
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			xs = c.appendInRange(ray, xs, (-b-sqrtD)/(2*a))
			xs = c.appendInRange(ray, xs, (-b+sqrtD)/(2*a))
		}
	}

	xs = c.intersectCaps(ray, xs)
	sort.Float64s(xs)
	return xs
}

func (c Cone) appendInRange(ray core.Ray, xs []float64, t float64) []float64 {
	y := ray.Origin.Y + t*ray.Direction.Y
	if c.Minimum < y && y < c.Maximum {
		return append(xs, t)
	}
	return xs
}

func (c Cone) intersectCaps(ray core.Ray, xs []float64) []float64 {
	if !c.Closed || core.Parallel(ray.Direction.Y, ray.Direction.Length()) {
		return xs
	}
	// Each cap's radius equals the magnitude of its y value
	for _, y := range []float64{c.Minimum, c.Maximum} {
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if withinCap(ray, t, math.Abs(y)) {
			xs = append(xs, t)
		}
	}
	return xs
}

// LocalNormalAt returns the cap normal near an end and the body normal elsewhere
func (c Cone) LocalNormalAt(point core.Vec3) core.Vec3 {
	dist := point.X*point.X + point.Z*point.Z
	if dist < c.Maximum*c.Maximum && point.Y >= c.Maximum-HitEpsilon {
		return core.NewVec3(0, 1, 0)
	}
	if dist < c.Minimum*c.Minimum && point.Y <= c.Minimum+HitEpsilon {
		return core.NewVec3(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVec3(point.X, y, point.Z)
}

// LocalBounds is widest at whichever end is farther from the apex
func (c Cone) LocalBounds() core.AABB {
	limit := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewAABB(core.NewVec3(-limit, c.Minimum, -limit), core.NewVec3(limit, c.Maximum, limit))
}
