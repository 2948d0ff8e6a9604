package geometry

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// Triangle is a flat triangle given directly in object-space coordinates
type Triangle struct {
	P1, P2, P3 core.Vec3 // The three vertices
	E1, E2     core.Vec3 // Edges P2-P1 and P3-P1
	Normal     core.Vec3 // Cached unit normal, counter-clockwise winding faces outward
}

// NewTriangle creates a triangle and precomputes its edges and normal
func NewTriangle(p1, p2, p3 core.Vec3) Triangle {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	return Triangle{
		P1:     p1,
		P2:     p2,
		P3:     p3,
		E1:     e1,
		E2:     e2,
		Normal: e1.Cross(e2).Normalize(),
	}
}

// IsDegenerate reports whether the vertices are collinear
func (t Triangle) IsDegenerate() bool {
	return t.Normal.LengthSquared() == 0
}

// LocalIntersect uses the Möller-Trumbore algorithm
func (t Triangle) LocalIntersect(ray core.Ray) []float64 {
	h := ray.Direction.Cross(t.E2)
	det := t.E1.Dot(h)

	// det is |d|·|E1×E2| times the cosine between the ray and the normal,
	// so near zero the ray lies in the plane of the triangle
	if core.Parallel(det, ray.Direction.Length()*t.E1.Cross(t.E2).Length()) {
		return nil
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.P1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil
	}

	q := s.Cross(t.E1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil
	}

	return []float64{f * t.E2.Dot(q)}
}

// LocalNormalAt is the face normal everywhere on the triangle
func (t Triangle) LocalNormalAt(core.Vec3) core.Vec3 {
	return t.Normal
}

// LocalBounds encloses the three vertices
func (t Triangle) LocalBounds() core.AABB {
	return core.NewAABBFromPoints(t.P1, t.P2, t.P3)
}
